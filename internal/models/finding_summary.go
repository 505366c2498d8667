// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"slices"
)

// SeverityCount is one entry in a FindingSummary.
type SeverityCount struct {
	Severity Severity
	Count    int64
}

// FindingSummary contains the number of findings per severity from the latest
// completed scan of an image. The order of entries is significant: it is the
// order in which they are rendered into notifications.
//
// A severity that does not appear in the summary has a count of 0.
type FindingSummary []SeverityCount

// FindingSummaryFromCounts converts the severity counts reported by the
// registry into a FindingSummary. Since the input carries no order, entries are
// sorted from most to least severe.
func FindingSummaryFromCounts(counts map[string]int32) FindingSummary {
	result := make(FindingSummary, 0, len(counts))
	for sev, count := range counts {
		result = append(result, SeverityCount{Severity(sev), int64(count)})
	}
	slices.SortFunc(result, func(lhs, rhs SeverityCount) int {
		return compareSeverities(lhs.Severity, rhs.Severity)
	})
	return result
}

// Get returns the number of findings with the given severity.
func (s FindingSummary) Get(sev Severity) int64 {
	for _, entry := range s {
		if entry.Severity == sev {
			return entry.Count
		}
	}
	return 0
}

// IsEmpty returns whether the summary contains no entries at all.
func (s FindingSummary) IsEmpty() bool {
	return len(s) == 0
}

// Filter returns a copy of this summary that only contains the severities
// included by the given filter. The order of the remaining entries is kept.
func (s FindingSummary) Filter(f SeverityFilter) FindingSummary {
	result := make(FindingSummary, 0, len(s))
	for _, entry := range s {
		if f.Includes(entry.Severity) {
			result = append(result, entry)
		}
	}
	return result
}
