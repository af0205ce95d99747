// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session_test

import (
	"context"
	"encoding/binary"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/wrk15440/remotefs"
	"github.com/wrk15440/remotefs/config"
	"github.com/wrk15440/remotefs/internal/testclient"
	"github.com/wrk15440/remotefs/metrics"
	"github.com/wrk15440/remotefs/session"
)

func waitForAddr(t *testing.T, ln *session.Listener) net.Addr {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if addr := ln.Addr(); addr != nil {
			return addr
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("listener never bound an address")
	return nil
}

func TestListener_ServesOneSessionEndToEnd(t *testing.T) {
	cfg := config.Config{Port: 0, MaxSessions: 4, MaxPayload: 1 << 20, LogLevel: logrus.ErrorLevel}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.ErrorLevel)
	reg := metrics.New()

	ln := session.NewListener(cfg, log, reg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- ln.Run(ctx) }()

	addr := waitForAddr(t, ln)

	nc, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer nc.Close()

	cl := testclient.New(nc)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")

	openReply, err := cl.Call(remotefs.OpOpen, testclient.BuildOpenPayload(unix.O_CREAT|unix.O_RDWR, 0o644, path))
	if err != nil {
		t.Fatalf("Call(open): %v", err)
	}
	fd := int32(binary.LittleEndian.Uint32(openReply[0:4]))
	if fd < 0 {
		t.Fatalf("open fd = %d, want >= 0", fd)
	}
	if _, err := cl.Call(remotefs.OpClose, testclient.BuildClosePayload(fd)); err != nil {
		t.Fatalf("Call(close): %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestListener_AcceptingReflectsLifecycle(t *testing.T) {
	cfg := config.Config{Port: 0, MaxSessions: 1, LogLevel: logrus.ErrorLevel}
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	ln := session.NewListener(cfg, log, nil)
	if ln.Accepting() {
		t.Fatal("Accepting() before Run: want false")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ln.Run(ctx) }()

	waitForAddr(t, ln)
	if !ln.Accepting() {
		t.Fatal("Accepting() after bind: want true")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
	if ln.Accepting() {
		t.Fatal("Accepting() after shutdown: want false")
	}
}
