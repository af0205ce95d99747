// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/wrk15440/remotefs"
	"github.com/wrk15440/remotefs/config"
	"github.com/wrk15440/remotefs/metrics"
)

// Listener accepts connections on one TCP port and hands each to its own
// Handler goroutine, per §4.4 of the design notes.
type Listener struct {
	cfg config.Config
	log *logrus.Logger
	reg *metrics.Registry

	sem       *semaphore.Weighted
	accepting atomic.Bool
	addr      atomic.Pointer[net.Addr]
}

// NewListener builds a Listener from cfg. reg may be nil when metrics are
// disabled.
func NewListener(cfg config.Config, log *logrus.Logger, reg *metrics.Registry) *Listener {
	maxSessions := int64(cfg.MaxSessions)
	if maxSessions <= 0 {
		maxSessions = 1
	}
	return &Listener{
		cfg: cfg,
		log: log,
		reg: reg,
		sem: semaphore.NewWeighted(maxSessions),
	}
}

// Accepting reports whether the listener is currently in its accept loop,
// backing the metrics package's /healthz probe.
func (l *Listener) Accepting() bool { return l.accepting.Load() }

// Addr returns the address Run bound to, or nil if Run has not yet
// completed its bind. Chiefly useful in tests that configure cfg.Port = 0
// to ask the OS for an ephemeral port and then need to learn which one it
// picked.
func (l *Listener) Addr() net.Addr {
	if p := l.addr.Load(); p != nil {
		return *p
	}
	return nil
}

// Run binds cfg.Port and accepts connections until ctx is canceled. On
// cancellation it stops accepting and sets every open session's read
// deadline to the current time, so the session's pending or next read fails
// and the session ends; a request that was already read is still answered.
// A session with an idle timeout that starts a new header wait after that
// point rearms its own deadline and ends when the idle timeout elapses. Run
// returns once every session has ended.
func (l *Listener) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf("0.0.0.0:%d", l.cfg.Port))
	if err != nil {
		return fmt.Errorf("session: listen: %w", err)
	}
	addr := ln.Addr()
	l.addr.Store(&addr)
	l.accepting.Store(true)
	defer l.accepting.Store(false)

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		<-gctx.Done()
		l.accepting.Store(false)
		return ln.Close()
	})

	grp.Go(func() error {
		for {
			nc, err := ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("session: accept: %w", err)
			}
			if err := l.sem.Acquire(gctx, 1); err != nil {
				_ = nc.Close()
				return nil
			}
			if l.reg != nil {
				l.reg.ActiveSessions.Inc()
			}
			grp.Go(func() error {
				defer l.sem.Release(1)
				defer func() {
					if l.reg != nil {
						l.reg.ActiveSessions.Dec()
					}
				}()
				stop := context.AfterFunc(gctx, func() { _ = nc.SetReadDeadline(time.Now()) })
				defer stop()
				l.serveOne(nc)
				return nil
			})
		}
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (l *Listener) serveOne(nc net.Conn) {
	defer func() { _ = nc.Close() }()

	var opts []remotefs.Option
	if l.cfg.MaxPayload > 0 {
		opts = append(opts, remotefs.WithMaxPayload(l.cfg.MaxPayload))
	}
	if l.cfg.IdleTimeout > 0 {
		opts = append(opts, remotefs.WithIdleTimeout(l.cfg.IdleTimeout))
	}

	h, err := NewHandler(nc, l.log, l.reg, opts...)
	if err != nil {
		l.log.WithError(err).Warn("remotefs: failed to start session")
		return
	}
	if err := h.Serve(); err != nil {
		l.log.WithError(err).WithField("remote", nc.RemoteAddr()).Warn("remotefs: session ended with error")
	}
}
