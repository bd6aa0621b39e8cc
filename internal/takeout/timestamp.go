// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package takeout

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the canonical machine-readable form of a history
// timestamp after locale normalization, e.g. "2024. 3. 5. PM 11:22:33".
const TimestampLayout = "2006. 1. 2. PM 3:04:05"

// tzSuffix is the timezone annotation the export appends to every
// timestamp. It is stripped, not interpreted: parsed times are
// timezone-naive, matching the chronology of the export itself.
const tzSuffix = "KST"

// meridiemReplacer rewrites the Korean AM/PM marker words to their
// machine-readable forms. The export localizes only these two tokens;
// digits and punctuation are locale-independent.
var meridiemReplacer = strings.NewReplacer(
	"오전", "AM",
	"오후", "PM",
)

// ParseTimestamp parses the free-form timestamp text of a history entry,
// e.g. "2024. 3. 5. 오후 11:22:33 KST". It normalizes the AM/PM marker,
// strips the timezone suffix, and parses the remainder against
// TimestampLayout. Known limitation, preserved from the export format
// this was built against: only the Korean locale markers and the KST
// suffix are recognized.
func ParseTimestamp(text string) (time.Time, error) {
	normalized := meridiemReplacer.Replace(text)
	normalized = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(normalized), tzSuffix))

	ts, err := time.Parse(TimestampLayout, normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q does not match expected pattern: %w", text, err)
	}
	return ts, nil
}

// FormatTimestamp renders a parsed time back into the canonical
// normalized form. ParseTimestamp and FormatTimestamp round-trip at
// second precision.
func FormatTimestamp(ts time.Time) string {
	return ts.Format(TimestampLayout)
}
