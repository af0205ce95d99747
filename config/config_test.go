// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wrk15440/remotefs/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != config.DefaultPort {
		t.Fatalf("Port = %d, want %d", cfg.Port, config.DefaultPort)
	}
	if cfg.MaxSessions != 4096 {
		t.Fatalf("MaxSessions = %d, want 4096", cfg.MaxSessions)
	}
	if cfg.MaxPayload != 64<<20 {
		t.Fatalf("MaxPayload = %d, want %d", cfg.MaxPayload, 64<<20)
	}
	if cfg.IdleTimeout != 0 {
		t.Fatalf("IdleTimeout = %v, want 0", cfg.IdleTimeout)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Fatalf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("serverport15440", "15500")
	t.Setenv("REMOTEFS_MAX_SESSIONS", "10")
	t.Setenv("REMOTEFS_IDLE_TIMEOUT", "5m")
	t.Setenv("REMOTEFS_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 15500 {
		t.Fatalf("Port = %d, want 15500", cfg.Port)
	}
	if cfg.MaxSessions != 10 {
		t.Fatalf("MaxSessions = %d, want 10", cfg.MaxSessions)
	}
	if cfg.IdleTimeout != 5*time.Minute {
		t.Fatalf("IdleTimeout = %v, want 5m", cfg.IdleTimeout)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Fatalf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidPortReturnsErrInvalidEnv(t *testing.T) {
	t.Setenv("serverport15440", "not-a-number")

	_, err := config.Load()
	if err == nil {
		t.Fatal("Load: want error, got nil")
	}
	var invalidEnv *config.ErrInvalidEnv
	if !errors.As(err, &invalidEnv) {
		t.Fatalf("err = %v, want *ErrInvalidEnv", err)
	}
	if invalidEnv.Var != "serverport15440" {
		t.Fatalf("Var = %q, want serverport15440", invalidEnv.Var)
	}
}
