/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package system

import (
	"github.com/traas-stack/statsdump/pkg/appconfig"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
	"os"
)

func init() {
	input.Register("sys", func(config *appconfig.AgentConfig) (input.Input, error) {
		if config.ProcRoot != "" && config.ProcRoot != appconfig.DefaultProcRoot {
			// gopsutil resolves procfs through HOST_PROC
			if err := os.Setenv("HOST_PROC", config.ProcRoot); err != nil {
				return nil, err
			}
		}
		return newSystemInput(config.ID, gopsutilSource{}), nil
	})
}
