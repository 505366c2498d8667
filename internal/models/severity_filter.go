// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"slices"
	"strings"
	"unicode"
)

// SeverityFilter is the set of severities that shall be reported. The empty
// filter includes every severity.
type SeverityFilter struct {
	levels map[Severity]struct{}
}

// ParseSeverityFilter parses the value of the RISK_LEVELS variable. Severities
// may be separated by commas and/or whitespace, and may be wrapped into list
// syntax, so all of the following are equivalent:
//
//	HIGH,CRITICAL
//	HIGH CRITICAL
//	["HIGH", "CRITICAL"]
//	['HIGH', 'CRITICAL']
//
// Names are matched case-insensitively against the upper-case names reported
// by the registry.
func ParseSeverityFilter(input string) SeverityFilter {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`,[]"'`, r)
	})

	f := SeverityFilter{levels: make(map[Severity]struct{}, len(fields))}
	for _, field := range fields {
		f.levels[Severity(strings.ToUpper(field))] = struct{}{}
	}
	return f
}

// NewSeverityFilter builds a filter that includes exactly the given severities.
func NewSeverityFilter(sevs ...Severity) SeverityFilter {
	f := SeverityFilter{levels: make(map[Severity]struct{}, len(sevs))}
	for _, sev := range sevs {
		f.levels[sev] = struct{}{}
	}
	return f
}

// IsEmpty returns whether no severities were configured, i.e. whether this
// filter includes everything.
func (f SeverityFilter) IsEmpty() bool {
	return len(f.levels) == 0
}

// Includes returns whether findings with the given severity shall be reported.
func (f SeverityFilter) Includes(sev Severity) bool {
	if f.IsEmpty() {
		return true
	}
	_, ok := f.levels[sev]
	return ok
}

// String returns a representation of this filter for log messages.
func (f SeverityFilter) String() string {
	if f.IsEmpty() {
		return "<all>"
	}
	names := make([]string, 0, len(f.levels))
	for sev := range f.levels {
		names = append(names, string(sev))
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}
