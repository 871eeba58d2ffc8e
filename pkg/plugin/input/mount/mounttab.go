/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package mount

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/traas-stack/statsdump/pkg/util"
	"go.uber.org/multierr"
)

type (
	mountEntry struct {
		source  string
		dest    string
		fstype  string
		options string
		dump    int
		pass    int
	}
)

// readMountTable parses a fstab(5) formatted table such as /proc/mounts.
// A read failure fails the whole table. A malformed line is reported and skipped.
func readMountTable(path string) ([]mountEntry, error) {
	rows, err := util.ReadFieldsTable(path, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "read mount table %s", path)
	}

	entries := make([]mountEntry, 0, len(rows))
	var errs error
	for _, fields := range rows {
		e, err := parseMountEntry(fields)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "skip mount entry %q", strings.Join(fields, " ")))
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

func parseMountEntry(fields []string) (mountEntry, error) {
	if len(fields) < 4 {
		return mountEntry{}, fmt.Errorf("expect at least 4 fields, got %d", len(fields))
	}
	e := mountEntry{
		source:  util.UnescapeOctal(fields[0]),
		dest:    util.UnescapeOctal(fields[1]),
		fstype:  fields[2],
		options: strings.Join(strings.Split(fields[3], ","), ";"),
	}
	// dump and pass are optional in fstab and default to 0
	if len(fields) > 4 {
		dump, err := cast.ToIntE(fields[4])
		if err != nil {
			return mountEntry{}, errors.Wrap(err, "parse dump")
		}
		e.dump = dump
	}
	if len(fields) > 5 {
		pass, err := cast.ToIntE(fields[5])
		if err != nil {
			return mountEntry{}, errors.Wrap(err, "parse pass")
		}
		e.pass = pass
	}
	return e, nil
}
