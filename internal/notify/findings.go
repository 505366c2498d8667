// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
)

// ImageFindings is an image that qualifies for a notification, together with
// the findings that shall be reported for it.
type ImageFindings struct {
	Tag      string
	Findings models.FindingSummary
}

// SelectImages decides which of the given images are reported, and which of
// their findings are included in the report.
//
// An image is skipped if it is untagged, if no scan has completed for it yet,
// or if none of its findings are included by the filter. None of these are
// error conditions: they just mean that there is nothing to report.
func SelectImages(images []models.Image, filter models.SeverityFilter) []ImageFindings {
	var result []ImageFindings
	for _, img := range images {
		tag, ok := img.DisplayTag().Unpack()
		if !ok {
			continue
		}
		summary, ok := img.Findings.Unpack()
		if !ok {
			logg.Debug("not reporting on %s: no completed scan", img.String())
			continue
		}
		summary = summary.Filter(filter)
		if summary.IsEmpty() {
			logg.Debug("not reporting on %s: no findings with severity %s", img.String(), filter.String())
			continue
		}
		result = append(result, ImageFindings{Tag: tag, Findings: summary})
	}
	return result
}
