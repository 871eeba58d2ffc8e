/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package util

import (
	"os/signal"
	"syscall"
)

// ResetSigpipe restores the default disposition of SIGPIPE, so a write to a closed stdout
// terminates the process instead of looping forever. Call it once at startup.
func ResetSigpipe() {
	signal.Reset(syscall.SIGPIPE)
}
