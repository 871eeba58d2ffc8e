/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package input

import "github.com/traas-stack/statsdump/pkg/model"

type (
	// CollectContext carries what every record of one tick shares.
	CollectContext struct {
		// TimeMS is absent when the clock could not be read
		TimeMS model.Opt[int64]
	}

	// HeaderScope tells the pipeline how often column headers are written.
	HeaderScope uint8

	// Input samples one information domain.
	// Calls to Collect are serial; each call re-reads its sources from scratch.
	Input interface {
		// Collect returns the records of one tick together with the diagnostics met on the way.
		// Records may be non-empty while err is non-nil: err then describes degraded fields.
		// When no record could be produced at all, records is empty.
		Collect(ctx *CollectContext) ([]model.Record, error)

		HeaderScope() HeaderScope
	}

	BaseInput struct{}
)

const (
	// HeaderPerTick writes headers at the start of every non-empty batch
	HeaderPerTick HeaderScope = iota
	// HeaderPerLifetime writes headers once, with the first successful write
	HeaderPerLifetime
)

func (*BaseInput) HeaderScope() HeaderScope {
	return HeaderPerTick
}

func (s HeaderScope) String() string {
	switch s {
	case HeaderPerLifetime:
		return "lifetime"
	default:
		return "tick"
	}
}
