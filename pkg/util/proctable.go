/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package util

import (
	"bufio"
	"os"
	"strings"
)

// ReadFieldsTable reads a whitespace separated table such as /proc/mounts or /proc/swaps.
// The first skip lines are dropped, blank lines are ignored.
func ReadFieldsTable(path string, skip int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanLines)
	line := 0
	for scanner.Scan() {
		line++
		if line <= skip {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
