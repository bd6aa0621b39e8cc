// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package enrich

import (
	"fmt"
	"regexp"
	"strconv"
)

// isoDurationPattern matches the ISO-8601-style duration strings the
// metadata service reports, e.g. "PT1H5M30S". Any component may be
// absent and defaults to 0.
var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts a structured duration string into
// fractional minutes: hours*60 + minutes + seconds/60.
func ParseISODuration(s string) (float64, error) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("malformed duration string %q", s)
	}

	hours := atoiOrZero(m[1])
	minutes := atoiOrZero(m[2])
	seconds := atoiOrZero(m[3])

	return float64(hours)*60 + float64(minutes) + float64(seconds)/60, nil
}

// atoiOrZero converts a captured digit group, treating the empty
// (absent) group as 0.
func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s) // the pattern guarantees digits
	return n
}
