/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package util

import (
	"strings"
)

// UnescapeOctal decodes the \ooo escapes the kernel uses for blanks and backslashes
// in /proc/mounts and /proc/swaps, for example "\040" for a space.
// Malformed escapes are kept verbatim.
func UnescapeOctal(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	sb := strings.Builder{}
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			v := (s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0')
			sb.WriteByte(v)
			i += 3
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
