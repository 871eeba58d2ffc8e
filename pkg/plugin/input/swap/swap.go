/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package swap

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/traas-stack/statsdump/pkg/model"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	"github.com/traas-stack/statsdump/pkg/util"
	"go.uber.org/multierr"
)

type (
	swapInput struct {
		input.BaseInput
		table string
	}
)

func newSwapInput(procRoot string) *swapInput {
	return &swapInput{table: filepath.Join(procRoot, "swaps")}
}

// Collect emits one sample per active swap area. The table header line is skipped.
func (i *swapInput) Collect(ctx *input.CollectContext) ([]model.Record, error) {
	rows, err := util.ReadFieldsTable(i.table, 1)
	if err != nil {
		return nil, errors.Wrapf(err, "read swap table %s", i.table)
	}

	records := make([]model.Record, 0, len(rows))
	var errs error
	for _, fields := range rows {
		s, err := parseSwapEntry(fields)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "skip swap entry %q", strings.Join(fields, " ")))
			continue
		}
		s.TimeMS = ctx.TimeMS
		records = append(records, s)
	}
	return records, errs
}

// Filename Type Size Used Priority
func parseSwapEntry(fields []string) (*model.SwapSample, error) {
	if len(fields) < 5 {
		return nil, fmt.Errorf("expect 5 fields, got %d", len(fields))
	}
	size, err := cast.ToUint64E(fields[2])
	if err != nil {
		return nil, errors.Wrap(err, "parse size")
	}
	used, err := cast.ToUint64E(fields[3])
	if err != nil {
		return nil, errors.Wrap(err, "parse used")
	}
	priority, err := cast.ToIntE(fields[4])
	if err != nil {
		return nil, errors.Wrap(err, "parse priority")
	}
	return &model.SwapSample{
		Source:   util.UnescapeOctal(fields[0]),
		Kind:     fields[1],
		Size:     size,
		Used:     used,
		Priority: priority,
	}, nil
}
