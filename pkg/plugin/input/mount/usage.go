/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package mount

import (
	"math"
)

type (
	// usage values are in kB
	usage struct {
		used      uint64
		available uint64
		total     uint64
		usePc     uint32
	}
	// fsStats are raw statvfs block counts, in units of frsize bytes
	fsStats struct {
		blocks uint64
		bfree  uint64
		bavail uint64
		frsize uint64
	}
	statfsFunc func(path string) (fsStats, error)
)

// failedUsage reads as full so that a broken query is visible rather than looking healthy
var failedUsage = usage{usePc: 100}

// computeUsage derives kB capacities from statvfs block counts.
// usePc is relative to the capacity available to unprivileged users (used+available).
func computeUsage(st fsStats) usage {
	total := st.blocks * st.frsize / 1024
	available := st.bavail * st.frsize / 1024
	free := st.bfree * st.frsize / 1024

	var used uint64
	if total > free {
		used = total - free
	}

	var pct uint32
	if nonRootTotal := used + available; nonRootTotal > 0 {
		pct = uint32(math.Round(float64(used) * 100 / float64(nonRootTotal)))
	}
	return usage{
		used:      used,
		available: available,
		total:     total,
		usePc:     pct,
	}
}

func queryUsage(statfs statfsFunc, path string) (usage, error) {
	st, err := statfs(path)
	if err != nil {
		return failedUsage, err
	}
	return computeUsage(st), nil
}
