/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package all

import (
	_ "github.com/traas-stack/statsdump/pkg/plugin/input/mount"
	_ "github.com/traas-stack/statsdump/pkg/plugin/input/process"
	_ "github.com/traas-stack/statsdump/pkg/plugin/input/swap"
	_ "github.com/traas-stack/statsdump/pkg/plugin/input/system"
)
