/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package console

import (
	"io"

	"github.com/traas-stack/statsdump/pkg/plugin/output"
)

func init() {
	output.Register(output.ConsoleType, func(w io.Writer) (output.Output, error) {
		return NewConsoleOutput(w), nil
	})
}
