// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package models

// Severity enumerates the severity levels reported by the registry's image
// scanner. The set is open-ended: values not listed here are passed through as-is.
type Severity string

const (
	// CriticalSeverity is a Severity.
	CriticalSeverity Severity = "CRITICAL"
	// HighSeverity is a Severity.
	HighSeverity Severity = "HIGH"
	// MediumSeverity is a Severity.
	MediumSeverity Severity = "MEDIUM"
	// LowSeverity is a Severity.
	LowSeverity Severity = "LOW"
	// InformationalSeverity is a Severity.
	InformationalSeverity Severity = "INFORMATIONAL"
	// UndefinedSeverity is a Severity. The scanner uses this for findings
	// without an assigned severity.
	UndefinedSeverity Severity = "UNDEFINED"
)

var sevRank = map[Severity]int{
	CriticalSeverity:      0,
	HighSeverity:          1,
	MediumSeverity:        2,
	LowSeverity:           3,
	InformationalSeverity: 4,
	UndefinedSeverity:     5,
}

// compareSeverities orders known severities from most to least severe, and
// unknown severities after all known ones in lexicographic order.
func compareSeverities(lhs, rhs Severity) int {
	lrank, lknown := sevRank[lhs]
	rrank, rknown := sevRank[rhs]
	switch {
	case lknown && rknown:
		return lrank - rrank
	case lknown:
		return -1
	case rknown:
		return 1
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}
