/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package console

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/traas-stack/statsdump/pkg/logger"
	"github.com/traas-stack/statsdump/pkg/model"
	"github.com/traas-stack/statsdump/pkg/plugin/output"
	"github.com/traas-stack/statsdump/pkg/util"
	"go.uber.org/zap"
)

type (
	// ConsoleOutput writes records as RFC 4180 CSV, one line per record.
	ConsoleOutput struct {
		w io.Writer
	}
)

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

// Write takes the header from the first record. Each line is handed to the sink on its own,
// so a failed row is logged and the remaining rows are still attempted. A broken pipe or a
// failed header ends the batch.
func (c *ConsoleOutput) Write(records []model.Record, hasHeaders bool) error {
	if len(records) == 0 {
		return nil
	}
	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)

	if hasHeaders {
		if err := c.writeLine(cw, buf, records[0].Header()); err != nil {
			logger.Errorz("[output] [console] write header error", zap.Error(err))
			return errors.Wrap(err, "write header")
		}
	}

	var firstErr error
	failed := 0
	for _, r := range records {
		err := c.writeLine(cw, buf, r.Row())
		if err == nil {
			continue
		}
		failed++
		if firstErr == nil {
			firstErr = errors.Wrap(err, "write row")
		}
		if util.IsBrokenPipe(err) {
			break
		}
	}
	if firstErr != nil {
		logger.Errorz("[output] [console] write row error", zap.Int("failed", failed), zap.Int("rows", len(records)), zap.Error(firstErr))
	}
	return firstErr
}

// writeLine encodes one line into buf, which never fails, then writes it to the sink.
func (c *ConsoleOutput) writeLine(cw *csv.Writer, buf *bytes.Buffer, fields []string) error {
	buf.Reset()
	if err := cw.Write(fields); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := c.w.Write(buf.Bytes())
	return err
}

var _ output.Output = (*ConsoleOutput)(nil)
