/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package pipeline drives one input: collect, write, sleep, repeat.
package pipeline

import (
	"context"
	"time"

	"github.com/traas-stack/statsdump/pkg/logger"
	"github.com/traas-stack/statsdump/pkg/model"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	"github.com/traas-stack/statsdump/pkg/plugin/output"
	"github.com/traas-stack/statsdump/pkg/util"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type (
	Phase uint8

	// LoopState is everything carried from one tick to the next.
	LoopState struct {
		Phase Phase
		// HeadersWritten is set by the first successful non-empty write
		HeadersWritten bool
		Tick           uint64
	}

	Pipeline struct {
		inputType string
		in        input.Input
		out       output.Output
		interval  time.Duration
		now       func() time.Time
	}
)

const (
	Running Phase = iota
	// Terminated is entered when nobody reads the output anymore
	Terminated
)

func (p Phase) String() string {
	if p == Terminated {
		return "terminated"
	}
	return "running"
}

func NewPipeline(inputType string, in input.Input, out output.Output, interval time.Duration) *Pipeline {
	return &Pipeline{
		inputType: inputType,
		in:        in,
		out:       out,
		interval:  interval,
		now:       time.Now,
	}
}

func (p *Pipeline) Interval() time.Duration {
	return p.interval
}

// Step runs one tick and returns the next state and the records handed to the output.
// Collection and write failures are logged and never stop the loop, except a broken pipe.
func (p *Pipeline) Step(st LoopState) (LoopState, []model.Record) {
	if st.Phase == Terminated {
		return st, nil
	}
	st.Tick++

	timeMS, err := util.TimestampMS(p.now())
	if err != nil {
		logger.Warnz("[pipeline] read clock error", zap.String("input", p.inputType), zap.Error(err))
	}

	var records []model.Record
	util.WithRecover(func() {
		var collectErr error
		records, collectErr = p.in.Collect(&input.CollectContext{TimeMS: timeMS})
		for _, e := range multierr.Errors(collectErr) {
			logger.Warnz("[pipeline] collect error", zap.String("input", p.inputType), zap.Error(e))
		}
	}, func(r interface{}, stack []byte) {
		logger.Errorf("[pipeline] [%s] collect panic: %v\n%s", p.inputType, r, string(stack))
		records = nil
	})

	logger.Debugz("[pipeline] emit",
		zap.String("input", p.inputType),
		zap.Uint64("tick", st.Tick),
		zap.Int("records", len(records)))

	if len(records) == 0 {
		return st, nil
	}

	withHeaders := p.in.HeaderScope() == input.HeaderPerTick || !st.HeadersWritten
	if err := p.out.Write(records, withHeaders); err != nil {
		if util.IsBrokenPipe(err) {
			logger.Infoz("[pipeline] output closed, stop", zap.String("input", p.inputType))
			st.Phase = Terminated
		}
		return st, records
	}
	if withHeaders {
		st.HeadersWritten = true
	}
	return st, records
}

// Run ticks until the output is closed or ctx is done. The interval is slept after every tick,
// so a slow tick delays the following ones.
func (p *Pipeline) Run(ctx context.Context) error {
	logger.Infoz("[pipeline] start",
		zap.String("input", p.inputType),
		zap.Stringer("headerScope", p.in.HeaderScope()),
		zap.Duration("interval", p.interval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	st := LoopState{Phase: Running}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			st, _ = p.Step(st)
			if st.Phase == Terminated {
				return nil
			}
			timer.Reset(p.interval)
		}
	}
}
