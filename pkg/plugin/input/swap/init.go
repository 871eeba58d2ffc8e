/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package swap

import (
	"github.com/traas-stack/statsdump/pkg/appconfig"
	"github.com/traas-stack/statsdump/pkg/plugin/input"
)

func init() {
	input.Register("swap", func(config *appconfig.AgentConfig) (input.Input, error) {
		return newSwapInput(config.ProcRoot), nil
	})
}
