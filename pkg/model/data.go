/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package model

import (
	"strconv"
)

type (
	// Record is one row of a self-describing table.
	// Header and Row must have the same length and a fixed order for a given record shape.
	Record interface {
		Header() []string
		Row() []string
	}

	// SystemSample holds host memory (kB) and load average counters.
	// Memory fields are present or absent as a group, and so are load fields.
	SystemSample struct {
		ID         string
		TimeMS     Opt[int64]
		MemTotal   Opt[uint64]
		MemFree    Opt[uint64]
		MemBuffers Opt[uint64]
		MemCached  Opt[uint64]
		LoadAvg1   Opt[float32]
		LoadAvg5   Opt[float32]
		LoadAvg15  Opt[float32]
	}

	// ProcessSample holds resource counters of one process.
	ProcessSample struct {
		TimeMS Opt[int64]
		Pid    int
		Owner  uint32
		// OpenFdCount is -1 when the fd table can not be read
		OpenFdCount int64
		NumThreads  int64
		// Starttime, Utime and Stime are clock ticks from process accounting
		Starttime uint64
		Utime     uint64
		Stime     uint64
		// Cmdline is "?" when unreadable or empty
		Cmdline string
	}

	// MountSample holds one mount table entry and the usage (kB) of its filesystem.
	MountSample struct {
		TimeMS    Opt[int64]
		Source    string
		Dest      string
		FsType    string
		Options   string
		Dump      int
		Pass      int
		Used      uint64
		Available uint64
		Total     uint64
		UsePc     uint32
	}

	// SwapSample holds one swap table entry. Size and Used are in kB.
	SwapSample struct {
		TimeMS   Opt[int64]
		Source   string
		Kind     string
		Size     uint64
		Used     uint64
		Priority int
	}
)

const (
	// CmdlinePlaceholder replaces a missing or empty command line
	CmdlinePlaceholder = "?"
	// OpenFdCountUnknown replaces an unreadable fd count
	OpenFdCountUnknown int64 = -1
)

var (
	systemHeader  = []string{"id", "time_ms", "mem_total", "mem_free", "mem_buffers", "mem_cached", "load_avg_1", "load_avg_5", "load_avg_15"}
	processHeader = []string{"time_ms", "pid", "owner", "open_fd_count", "num_threads", "starttime", "utime", "stime", "cmdline"}
	mountHeader   = []string{"time_ms", "source", "dest", "fstype", "options", "dump", "pass", "used", "available", "total", "use_pc"}
	swapHeader    = []string{"time_ms", "source", "kind", "size", "used", "priority"}
)

func (s *SystemSample) Header() []string {
	return systemHeader
}

func (s *SystemSample) Row() []string {
	return []string{
		s.ID,
		formatOpt(s.TimeMS, formatInt64),
		formatOpt(s.MemTotal, formatUint64),
		formatOpt(s.MemFree, formatUint64),
		formatOpt(s.MemBuffers, formatUint64),
		formatOpt(s.MemCached, formatUint64),
		formatOpt(s.LoadAvg1, formatFloat32),
		formatOpt(s.LoadAvg5, formatFloat32),
		formatOpt(s.LoadAvg15, formatFloat32),
	}
}

func (s *ProcessSample) Header() []string {
	return processHeader
}

func (s *ProcessSample) Row() []string {
	return []string{
		formatOpt(s.TimeMS, formatInt64),
		strconv.Itoa(s.Pid),
		strconv.FormatUint(uint64(s.Owner), 10),
		formatInt64(s.OpenFdCount),
		formatInt64(s.NumThreads),
		formatUint64(s.Starttime),
		formatUint64(s.Utime),
		formatUint64(s.Stime),
		s.Cmdline,
	}
}

func (s *MountSample) Header() []string {
	return mountHeader
}

func (s *MountSample) Row() []string {
	return []string{
		formatOpt(s.TimeMS, formatInt64),
		s.Source,
		s.Dest,
		s.FsType,
		s.Options,
		strconv.Itoa(s.Dump),
		strconv.Itoa(s.Pass),
		formatUint64(s.Used),
		formatUint64(s.Available),
		formatUint64(s.Total),
		strconv.FormatUint(uint64(s.UsePc), 10),
	}
}

func (s *SwapSample) Header() []string {
	return swapHeader
}

func (s *SwapSample) Row() []string {
	return []string{
		formatOpt(s.TimeMS, formatInt64),
		s.Source,
		s.Kind,
		formatUint64(s.Size),
		formatUint64(s.Used),
		strconv.Itoa(s.Priority),
	}
}

func formatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
