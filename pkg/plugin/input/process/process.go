/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package process

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
	"github.com/traas-stack/statsdump/pkg/logger"
	"github.com/traas-stack/statsdump/pkg/model"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	"go.uber.org/zap"
)

type (
	processInput struct {
		input.BaseInput
		root string
	}
)

func newProcessInput(root string) *processInput {
	return &processInput{root: root}
}

// Collect enumerates processes from scratch, in the order procfs lists them.
// A process that exits before its stat or owner is read is skipped.
func (i *processInput) Collect(ctx *input.CollectContext) ([]model.Record, error) {
	fs, err := procfs.NewFS(i.root)
	if err != nil {
		return nil, errors.Wrapf(err, "open procfs %s", i.root)
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return nil, errors.Wrap(err, "list processes")
	}

	records := make([]model.Record, 0, len(procs))
	for _, p := range procs {
		s, err := i.sample(ctx.TimeMS, p)
		if err != nil {
			logger.Debugz("[input] [proc] skip process", zap.Int("pid", p.PID), zap.Error(err))
			continue
		}
		records = append(records, s)
	}
	return records, nil
}

func (i *processInput) sample(timeMS model.Opt[int64], p procfs.Proc) (*model.ProcessSample, error) {
	stat, err := p.Stat()
	if err != nil {
		return nil, err
	}
	owner, err := i.owner(p.PID)
	if err != nil {
		return nil, err
	}

	openFdCount := model.OpenFdCountUnknown
	if n, err := p.FileDescriptorsLen(); err == nil {
		openFdCount = int64(n)
	}

	cmdline := model.CmdlinePlaceholder
	if args, err := p.CmdLine(); err == nil {
		if joined := strings.Join(args, " "); joined != "" {
			cmdline = joined
		}
	}

	return &model.ProcessSample{
		TimeMS:      timeMS,
		Pid:         stat.PID,
		Owner:       owner,
		OpenFdCount: openFdCount,
		NumThreads:  int64(stat.NumThreads),
		Starttime:   stat.Starttime,
		Utime:       uint64(stat.UTime),
		Stime:       uint64(stat.STime),
		Cmdline:     cmdline,
	}, nil
}

// owner is the uid owning /proc/<pid>, the effective uid of the process
func (i *processInput) owner(pid int) (uint32, error) {
	return statOwner(filepath.Join(i.root, strconv.Itoa(pid)))
}
