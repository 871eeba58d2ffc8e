/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package cli

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traas-stack/statsdump/pkg/logger"
	"github.com/traas-stack/statsdump/pkg/pipeline"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

type brokenPipeWriter struct {
	written bytes.Buffer
}

func (w *brokenPipeWriter) Write(p []byte) (int, error) {
	w.written.Write(p)
	return 0, syscall.EPIPE
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"STATSDUMP_ID", "STATSDUMP_INTERVAL_SECS", "HOST_PROC", "DEBUG"} {
		t.Setenv(k, "")
	}
}

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.ReplaceCore(core))
	return logs
}

// stepOnce replaces the endless loop with a single tick
func stepOnce(intervals *[]time.Duration) func(ctx context.Context, p *pipeline.Pipeline) error {
	return func(ctx context.Context, p *pipeline.Pipeline) error {
		*intervals = append(*intervals, p.Interval())
		p.Step(pipeline.LoopState{})
		return nil
	}
}

func writeProcRoot(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "swaps"), []byte("Filename Type Size Used Priority\n/dev/sdb2 partition 8388604 0 -2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "mounts"), []byte("tmpfs /nonexistent/statsdump tmpfs rw,nosuid 0 0\n"), 0644))
	return root
}

func TestRoot_NothingToDo(t *testing.T) {
	for _, args := range [][]string{{}, {"bogus"}, {"-s", "5"}, {"--id", "web-1", "--interval-secs", "abc"}} {
		logs := observe(t)
		buf := &bytes.Buffer{}
		r := NewRootCommand(buf)
		r.Command().SetArgs(args)
		assert.NoError(t, r.Execute(), "args %v", args)
		entries := logs.FilterMessage("nothing to do").All()
		require.Len(t, entries, 1, "args %v", args)
		assert.Equal(t, []interface{}{"mount", "proc", "swap", "sys"}, entries[0].ContextMap()["inputs"])
		assert.Equal(t, 0, buf.Len())
	}
}

func TestSwap_Flags(t *testing.T) {
	clearEnv(t)
	observe(t)
	root := writeProcRoot(t)

	var intervals []time.Duration
	buf := &bytes.Buffer{}
	r := NewRootCommand(buf)
	r.run = stepOnce(&intervals)
	r.Command().SetArgs([]string{"swap", "--proc-root", root, "-s", "2"})
	require.NoError(t, r.Execute())

	assert.Equal(t, []time.Duration{2 * time.Second}, intervals)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "time_ms,source,kind,size,used,priority", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",/dev/sdb2,partition,8388604,0,-2"))
}

func TestMount_FailedQueryRow(t *testing.T) {
	clearEnv(t)
	observe(t)
	root := writeProcRoot(t)

	var intervals []time.Duration
	buf := &bytes.Buffer{}
	r := NewRootCommand(buf)
	r.run = stepOnce(&intervals)
	r.Command().SetArgs([]string{"mount", "--proc-root", root})
	require.NoError(t, r.Execute())

	assert.Equal(t, []time.Duration{5 * time.Second}, intervals)
	assert.Contains(t, buf.String(), ",tmpfs,/nonexistent/statsdump,tmpfs,rw;nosuid,0,0,0,0,0,100\n")
}

func TestInvalidIntervalFallsBack(t *testing.T) {
	clearEnv(t)
	logs := observe(t)

	var intervals []time.Duration
	r := NewRootCommand(&bytes.Buffer{})
	r.run = stepOnce(&intervals)
	r.Command().SetArgs([]string{"swap", "--proc-root", writeProcRoot(t), "--interval-secs", "abc"})
	require.NoError(t, r.Execute())

	assert.Equal(t, []time.Duration{5 * time.Second}, intervals)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("using default of 5 seconds").Len())
}

func TestSys_ID(t *testing.T) {
	clearEnv(t)
	observe(t)

	var intervals []time.Duration
	buf := &bytes.Buffer{}
	r := NewRootCommand(buf)
	r.run = stepOnce(&intervals)
	r.Command().SetArgs([]string{"sys", "-i", "web-1", "-s", "1"})
	require.NoError(t, r.Execute())

	assert.Equal(t, []time.Duration{time.Second}, intervals)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,time_ms,mem_total,"))
	assert.True(t, strings.HasPrefix(lines[1], "web-1,"))
}

func TestIDOnlyOnSys(t *testing.T) {
	clearEnv(t)
	observe(t)
	r := NewRootCommand(&bytes.Buffer{})
	r.Command().SetArgs([]string{"proc", "--id", "x"})
	assert.Error(t, r.Execute())
}

func TestBrokenPipeExitsCleanly(t *testing.T) {
	clearEnv(t)
	observe(t)
	w := &brokenPipeWriter{}
	r := NewRootCommand(w)
	r.Command().SetArgs([]string{"swap", "--proc-root", writeProcRoot(t), "-s", "1"})

	done := make(chan error, 1)
	go func() { done <- r.Execute() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("pipeline did not stop on broken pipe")
	}
}

func TestUnsupportedConfigPath(t *testing.T) {
	clearEnv(t)
	observe(t)
	r := NewRootCommand(&bytes.Buffer{})
	r.Command().SetArgs([]string{"swap", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, r.Execute())
}
