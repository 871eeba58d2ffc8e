/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package appconfig

import (
	"fmt"
	"runtime"
)

// set by -ldflags "-X github.com/traas-stack/statsdump/pkg/appconfig.agentVersion=..."
var agentVersion string
var agentBuildTime string
var gitcommit string

// Version describes the running binary.
func Version() string {
	v := agentVersion
	if v == "" {
		v = "dev"
	}
	return fmt.Sprintf("%s (commit=%s buildTime=%s go=%s)", v, gitcommit, agentBuildTime, runtime.Version())
}
