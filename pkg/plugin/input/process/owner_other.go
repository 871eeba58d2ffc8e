//go:build !linux

/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package process

import (
	"errors"
	"runtime"
)

func statOwner(path string) (uint32, error) {
	return 0, errors.New("process owner is not supported on " + runtime.GOOS)
}
