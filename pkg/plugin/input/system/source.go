/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package system

import (
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

type (
	// memInfo values are in kB
	memInfo struct {
		total   uint64
		free    uint64
		buffers uint64
		cached  uint64
	}
	loadAvg struct {
		load1  float64
		load5  float64
		load15 float64
	}
	// source reads the two counter groups independently
	source interface {
		meminfo() (*memInfo, error)
		loadAvg() (*loadAvg, error)
	}
	gopsutilSource struct{}
)

func (gopsutilSource) meminfo() (*memInfo, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}
	// gopsutil folds SReclaimable into Cached, report the raw Cached line
	cached := vm.Cached
	if cached >= vm.Sreclaimable {
		cached -= vm.Sreclaimable
	}
	return &memInfo{
		total:   vm.Total / 1024,
		free:    vm.Free / 1024,
		buffers: vm.Buffers / 1024,
		cached:  cached / 1024,
	}, nil
}

func (gopsutilSource) loadAvg() (*loadAvg, error) {
	avg, err := load.Avg()
	if err != nil {
		return nil, err
	}
	return &loadAvg{
		load1:  avg.Load1,
		load5:  avg.Load5,
		load15: avg.Load15,
	}, nil
}
