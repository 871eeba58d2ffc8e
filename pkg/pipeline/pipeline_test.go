/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traas-stack/statsdump/pkg/logger"
	"github.com/traas-stack/statsdump/pkg/model"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	"github.com/traas-stack/statsdump/pkg/plugin/output/console"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"strings"
	"syscall"
	"testing"
	"time"
)

type (
	fakeInput struct {
		scope   input.HeaderScope
		collect func(ctx *input.CollectContext) ([]model.Record, error)
		calls   int
	}
	writeCall struct {
		records     []model.Record
		withHeaders bool
	}
	fakeOutput struct {
		calls []writeCall
		errs  []error
	}
)

func (f *fakeInput) Collect(ctx *input.CollectContext) ([]model.Record, error) {
	f.calls++
	return f.collect(ctx)
}

func (f *fakeInput) HeaderScope() input.HeaderScope {
	return f.scope
}

func (f *fakeOutput) Write(records []model.Record, withHeaders bool) error {
	f.calls = append(f.calls, writeCall{records: records, withHeaders: withHeaders})
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return err
	}
	return nil
}

func swapRecords(ctx *input.CollectContext) ([]model.Record, error) {
	return []model.Record{&model.SwapSample{TimeMS: ctx.TimeMS, Source: "/dev/sdb2"}}, nil
}

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.ReplaceCore(core))
	return logs
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestStep_HeadersOncePerLifetime(t *testing.T) {
	in := &fakeInput{scope: input.HeaderPerLifetime, collect: swapRecords}
	out := &fakeOutput{}
	p := NewPipeline("sys", in, out, time.Second)

	st := LoopState{}
	for i := 0; i < 4; i++ {
		st, _ = p.Step(st)
	}
	require.Len(t, out.calls, 4)
	assert.True(t, out.calls[0].withHeaders)
	for _, c := range out.calls[1:] {
		assert.False(t, c.withHeaders)
	}
	assert.Equal(t, uint64(4), st.Tick)
	assert.Equal(t, Running, st.Phase)
}

func TestStep_HeadersEveryTick(t *testing.T) {
	in := &fakeInput{scope: input.HeaderPerTick, collect: swapRecords}
	out := &fakeOutput{}
	p := NewPipeline("proc", in, out, time.Second)

	st := LoopState{}
	for i := 0; i < 3; i++ {
		st, _ = p.Step(st)
	}
	require.Len(t, out.calls, 3)
	for _, c := range out.calls {
		assert.True(t, c.withHeaders)
	}
}

func TestStep_LifetimeHeaderWaitsForFirstSuccessfulWrite(t *testing.T) {
	observe(t)
	in := &fakeInput{scope: input.HeaderPerLifetime, collect: swapRecords}
	out := &fakeOutput{errs: []error{errors.New("disk full")}}
	p := NewPipeline("sys", in, out, time.Second)

	st, _ := p.Step(LoopState{})
	assert.False(t, st.HeadersWritten)
	assert.Equal(t, Running, st.Phase)

	st, _ = p.Step(st)
	assert.True(t, st.HeadersWritten)
	st, _ = p.Step(st)

	require.Len(t, out.calls, 3)
	assert.True(t, out.calls[0].withHeaders)
	assert.True(t, out.calls[1].withHeaders)
	assert.False(t, out.calls[2].withHeaders)
}

func TestStep_EmptyBatchWritesNothing(t *testing.T) {
	in := &fakeInput{scope: input.HeaderPerLifetime, collect: func(ctx *input.CollectContext) ([]model.Record, error) {
		return nil, nil
	}}
	out := &fakeOutput{}
	p := NewPipeline("swap", in, out, time.Second)

	st, records := p.Step(LoopState{})
	assert.Empty(t, records)
	assert.Empty(t, out.calls)
	assert.False(t, st.HeadersWritten)
}

func TestStep_BrokenPipeTerminates(t *testing.T) {
	observe(t)
	in := &fakeInput{scope: input.HeaderPerTick, collect: swapRecords}
	out := &fakeOutput{errs: []error{syscall.EPIPE}}
	p := NewPipeline("mount", in, out, time.Second)

	st, _ := p.Step(LoopState{})
	assert.Equal(t, Terminated, st.Phase)

	st, records := p.Step(st)
	assert.Equal(t, Terminated, st.Phase)
	assert.Nil(t, records)
	assert.Equal(t, 1, in.calls)
	assert.Len(t, out.calls, 1)
}

func TestStep_CollectErrorsAreLoggedAndRowsKept(t *testing.T) {
	logs := observe(t)
	in := &fakeInput{scope: input.HeaderPerTick, collect: func(ctx *input.CollectContext) ([]model.Record, error) {
		records, _ := swapRecords(ctx)
		return records, multierr.Combine(errors.New("statfs /a"), errors.New("statfs /b"))
	}}
	out := &fakeOutput{}
	p := NewPipeline("mount", in, out, time.Second)

	_, records := p.Step(LoopState{})
	assert.Len(t, records, 1)
	assert.Len(t, out.calls, 1)
	assert.Equal(t, 2, logs.FilterMessage("[pipeline] collect error").Len())
}

func TestStep_PanicIsRecovered(t *testing.T) {
	logs := observe(t)
	first := true
	in := &fakeInput{scope: input.HeaderPerTick, collect: func(ctx *input.CollectContext) ([]model.Record, error) {
		if first {
			first = false
			panic("boom")
		}
		return swapRecords(ctx)
	}}
	out := &fakeOutput{}
	p := NewPipeline("proc", in, out, time.Second)

	st, records := p.Step(LoopState{})
	assert.Empty(t, records)
	assert.Equal(t, Running, st.Phase)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	_, records = p.Step(st)
	assert.Len(t, records, 1)
}

func TestStep_Timestamp(t *testing.T) {
	logs := observe(t)
	in := &fakeInput{scope: input.HeaderPerTick, collect: swapRecords}
	p := NewPipeline("swap", in, &fakeOutput{}, time.Second)

	p.now = fixedClock(1700000000123)
	_, records := p.Step(LoopState{})
	require.Len(t, records, 1)
	assert.Equal(t, "1700000000123", records[0].Row()[0])

	p.now = func() time.Time { return time.Unix(-10, 0) }
	_, records = p.Step(LoopState{})
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Row()[0])
	assert.Equal(t, 1, logs.FilterMessage("[pipeline] read clock error").Len())
}

func TestStep_ConsoleHeaderLines(t *testing.T) {
	buf := &bytes.Buffer{}
	sys := &fakeInput{scope: input.HeaderPerLifetime, collect: func(ctx *input.CollectContext) ([]model.Record, error) {
		return []model.Record{&model.SystemSample{ID: "localhost", TimeMS: ctx.TimeMS}}, nil
	}}
	p := NewPipeline("sys", sys, console.NewConsoleOutput(buf), time.Second)
	p.now = fixedClock(1000)

	st := LoopState{}
	for i := 0; i < 3; i++ {
		st, _ = p.Step(st)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "id,time_ms,"))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))

	buf.Reset()
	proc := &fakeInput{scope: input.HeaderPerTick, collect: func(ctx *input.CollectContext) ([]model.Record, error) {
		return []model.Record{
			&model.ProcessSample{TimeMS: ctx.TimeMS, Pid: 1, Cmdline: "init"},
			&model.ProcessSample{TimeMS: ctx.TimeMS, Pid: 2, Cmdline: "sh"},
		}, nil
	}}
	p = NewPipeline("proc", proc, console.NewConsoleOutput(buf), time.Second)
	p.now = fixedClock(1000)
	st = LoopState{}
	for i := 0; i < 3; i++ {
		st, _ = p.Step(st)
	}
	assert.Equal(t, 3, strings.Count(buf.String(), "time_ms,pid,"))
	assert.Equal(t, 9, strings.Count(buf.String(), "\n"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	in := &fakeInput{scope: input.HeaderPerTick, collect: swapRecords}
	p := NewPipeline("swap", in, &fakeOutput{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRun_StopsOnBrokenPipe(t *testing.T) {
	observe(t)
	in := &fakeInput{scope: input.HeaderPerTick, collect: swapRecords}
	out := &fakeOutput{errs: []error{nil, nil, syscall.EPIPE}}
	p := NewPipeline("swap", in, out, time.Millisecond)

	err := p.Run(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out.calls, 3)
}
