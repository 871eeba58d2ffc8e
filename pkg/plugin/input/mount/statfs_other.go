//go:build !linux

/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package mount

import (
	"errors"
	"runtime"
)

func unixStatfs(path string) (fsStats, error) {
	return fsStats{}, errors.New("statfs is not supported on " + runtime.GOOS)
}
