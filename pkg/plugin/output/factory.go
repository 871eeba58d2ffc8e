/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package output

import (
	"errors"
	"io"

	"github.com/traas-stack/statsdump/pkg/logger"
)

const (
	ConsoleType = "console"
)

type (
	Factory func(w io.Writer) (Output, error)
)

var factories = make(map[string]Factory)

func Register(outputType string, factory Factory) {
	if _, exist := factories[outputType]; exist {
		logger.Warnf("[plugin] register output factory %+v already exist, cover it", outputType)
	}
	factories[outputType] = factory
}

// Parse creates an output of the given type writing to w. An empty type means console.
func Parse(outputType string, w io.Writer) (Output, error) {
	if outputType == "" {
		outputType = ConsoleType
	}
	if f, ok := factories[outputType]; ok {
		return f(w)
	}
	return nil, errors.New("unsupported output type " + outputType)
}
