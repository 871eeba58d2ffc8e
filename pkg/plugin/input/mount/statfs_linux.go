//go:build linux

/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package mount

import (
	"golang.org/x/sys/unix"
)

func unixStatfs(path string) (fsStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return fsStats{}, err
	}
	frsize := uint64(st.Frsize)
	if frsize == 0 {
		frsize = uint64(st.Bsize)
	}
	return fsStats{
		blocks: st.Blocks,
		bfree:  st.Bfree,
		bavail: st.Bavail,
		frsize: frsize,
	}, nil
}
