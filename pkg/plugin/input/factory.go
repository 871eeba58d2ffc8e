/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package input

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/traas-stack/statsdump/pkg/appconfig"
	"github.com/traas-stack/statsdump/pkg/logger"
)

type (
	Factory func(*appconfig.AgentConfig) (Input, error)
)

var factories = make(map[string]Factory)

func Register(inputType string, factory Factory) {
	if _, exist := factories[inputType]; exist {
		logger.Warnf("[plugin] register input factory %+v already exist, cover it", inputType)
	}
	factories[inputType] = factory
}

// Types returns the registered input types, sorted.
func Types() []string {
	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func Parse(inputType string, config *appconfig.AgentConfig) (_ Input, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			logger.Errorf("[plugin] create input %s panic: %v\n%s", inputType, r, buf)

			retErr = fmt.Errorf("parse error %+v", r)
		}
	}()

	if f, ok := factories[inputType]; ok {
		return f(config)
	}
	return nil, errors.New("unsupported input type " + inputType)
}
