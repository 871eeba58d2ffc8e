/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package mount

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/traas-stack/statsdump/pkg/model"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	"go.uber.org/multierr"
)

type (
	mountInput struct {
		input.BaseInput
		table  string
		statfs statfsFunc
	}
)

func newMountInput(procRoot string) *mountInput {
	return &mountInput{
		table:  filepath.Join(procRoot, "mounts"),
		statfs: unixStatfs,
	}
}

// Collect emits one sample per mount table entry, in table order.
// When the table can not be read no rows are emitted for this tick.
func (i *mountInput) Collect(ctx *input.CollectContext) ([]model.Record, error) {
	entries, errs := readMountTable(i.table)
	if len(entries) == 0 && errs != nil {
		return nil, errs
	}

	records := make([]model.Record, 0, len(entries))
	for _, e := range entries {
		u, err := queryUsage(i.statfs, e.dest)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "statfs %s", e.dest))
		}
		records = append(records, &model.MountSample{
			TimeMS:    ctx.TimeMS,
			Source:    e.source,
			Dest:      e.dest,
			FsType:    e.fstype,
			Options:   e.options,
			Dump:      e.dump,
			Pass:      e.pass,
			Used:      u.used,
			Available: u.available,
			Total:     u.total,
			UsePc:     u.usePc,
		})
	}
	return records, errs
}
