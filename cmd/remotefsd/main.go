// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command remotefsd runs the remote filesystem RPC server described in
// SPEC_FULL.md: it binds a TCP port and forwards open/close/write/read/
// lseek/stat/unlink/getdirentries/getdirtree requests to local syscalls. It
// takes no positional arguments or flags; every setting is read from the
// environment (see package config).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wrk15440/remotefs/config"
	"github.com/wrk15440/remotefs/metrics"
	"github.com/wrk15440/remotefs/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("remotefs: invalid configuration")
		return 1
	}
	log.SetLevel(cfg.LogLevel)
	config.WarnIfStatBlobAmbiguous(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := metrics.New()
	ln := session.NewListener(cfg, log, reg)

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return ln.Run(gctx) })

	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, reg, ln.Accepting)
		grp.Go(func() error { return srv.Serve(gctx) })
	}

	log.WithField("port", cfg.Port).Info("remotefs: listening")
	if err := grp.Wait(); err != nil {
		log.WithError(err).Error("remotefs: server exited with error")
		return 1
	}
	return 0
}
