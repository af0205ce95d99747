// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config reads the environment-variable configuration described in
// §6 of the design notes. There is deliberately no configuration file or
// flag parser: the server takes no positional arguments, and a single
// integer port plus a handful of ambient knobs does not warrant pulling in
// a structured config library (see DESIGN.md for the considered
// alternative).
package config

import (
	"encoding/binary"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wrk15440/remotefs/internal/bo"
)

const (
	// DefaultPort matches the original source's server-side default. The
	// client shim's own default (15440) is a known, preserved mismatch —
	// see §9 of the design notes.
	DefaultPort = 15400

	// portEnvVar is, confusingly, named after the client's default rather
	// than the server's. This is intentional wire context carried over from
	// the original source, not a mistake in this implementation.
	portEnvVar = "serverport15440"

	defaultMaxSessions = 4096
	defaultMaxPayload  = 64 << 20
)

// Config holds every environment-derived server setting.
type Config struct {
	Port         int
	MaxSessions  int
	MaxPayload   int
	IdleTimeout  time.Duration
	MetricsAddr  string
	LogLevel     logrus.Level
}

// Load reads Config from the process environment, applying the defaults
// documented in §6 of the design notes.
func Load() (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		MaxSessions: defaultMaxSessions,
		MaxPayload:  defaultMaxPayload,
		LogLevel:    logrus.InfoLevel,
	}

	if v := os.Getenv(portEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, &ErrInvalidEnv{Var: portEnvVar, Value: v, Err: err}
		}
		cfg.Port = n
	}

	if v := os.Getenv("REMOTEFS_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, &ErrInvalidEnv{Var: "REMOTEFS_MAX_SESSIONS", Value: v, Err: err}
		}
		cfg.MaxSessions = n
	}

	if v := os.Getenv("REMOTEFS_MAX_PAYLOAD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, &ErrInvalidEnv{Var: "REMOTEFS_MAX_PAYLOAD", Value: v, Err: err}
		}
		cfg.MaxPayload = n
	}

	if v := os.Getenv("REMOTEFS_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, &ErrInvalidEnv{Var: "REMOTEFS_IDLE_TIMEOUT", Value: v, Err: err}
		}
		cfg.IdleTimeout = d
	}

	cfg.MetricsAddr = os.Getenv("REMOTEFS_METRICS_ADDR")

	if v := os.Getenv("REMOTEFS_LOG_LEVEL"); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, &ErrInvalidEnv{Var: "REMOTEFS_LOG_LEVEL", Value: v, Err: err}
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

// WarnIfStatBlobAmbiguous logs a one-time warning when this host's native
// byte order is not little-endian, since the raw stat blob returned by the
// stat operation carries the host's native layout while every other wire
// integer is forced little-endian (see internal/bo's doc comment).
func WarnIfStatBlobAmbiguous(log *logrus.Logger) {
	if bo.Native() != binary.LittleEndian {
		log.Warn("remotefs: host is not little-endian; stat blobs will not match a little-endian client's expectations")
	}
}

// ErrInvalidEnv reports a malformed environment variable value.
type ErrInvalidEnv struct {
	Var   string
	Value string
	Err   error
}

func (e *ErrInvalidEnv) Error() string {
	return "config: invalid " + e.Var + "=" + e.Value + ": " + e.Err.Error()
}

func (e *ErrInvalidEnv) Unwrap() error { return e.Err }
