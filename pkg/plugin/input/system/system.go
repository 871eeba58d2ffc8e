/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package system

import (
	"github.com/pkg/errors"
	"github.com/traas-stack/statsdump/pkg/model"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	"go.uber.org/multierr"
)

type (
	systemInput struct {
		id  string
		src source
	}
)

func newSystemInput(id string, src source) *systemInput {
	return &systemInput{id: id, src: src}
}

// Collect always returns exactly one sample. A failed counter group leaves its fields absent
// and is reported in the returned error.
func (i *systemInput) Collect(ctx *input.CollectContext) ([]model.Record, error) {
	s := &model.SystemSample{
		ID:     i.id,
		TimeMS: ctx.TimeMS,
	}

	var errs error
	if mi, err := i.src.meminfo(); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "load meminfo"))
	} else {
		s.MemTotal = model.Some(mi.total)
		s.MemFree = model.Some(mi.free)
		s.MemBuffers = model.Some(mi.buffers)
		s.MemCached = model.Some(mi.cached)
	}

	if la, err := i.src.loadAvg(); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "load load avg"))
	} else {
		s.LoadAvg1 = model.Some(float32(la.load1))
		s.LoadAvg5 = model.Some(float32(la.load5))
		s.LoadAvg15 = model.Some(float32(la.load15))
	}

	return []model.Record{s}, errs
}

// HeaderScope is per lifetime: system samples are written one at a time to a single sink.
func (i *systemInput) HeaderScope() input.HeaderScope {
	return input.HeaderPerLifetime
}
