/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package cli

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/oklog/run"
	"github.com/traas-stack/statsdump/pkg/logger"
	"github.com/traas-stack/statsdump/pkg/pipeline"
)

// runGroup runs p until it stops by itself or SIGINT/SIGTERM arrives. Both are a normal exit.
func runGroup(ctx context.Context, p *pipeline.Pipeline) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	g.Add(func() error {
		return p.Run(ctx)
	}, func(error) {
		cancel()
	})
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	err := g.Run()
	var se run.SignalError
	switch {
	case errors.As(err, &se):
		logger.Infof("[cli] receive signal %s, exit", se.Signal)
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	}
	return err
}
