// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"testing"

	"github.com/sapcc/go-bits/assert"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
)

func TestRenderSummary(t *testing.T) {
	summary := models.FindingSummary{
		{Severity: models.HighSeverity, Count: 21},
		{Severity: models.MediumSeverity, Count: 127},
		{Severity: models.InformationalSeverity, Count: 115},
	}
	assert.Equal(t, RenderSummary(summary), "HIGH 21, MEDIUM 127, INFORMATIONAL 115")

	// the order of the summary is kept as-is
	reversed := models.FindingSummary{summary[2], summary[1], summary[0]}
	assert.Equal(t, RenderSummary(reversed), "INFORMATIONAL 115, MEDIUM 127, HIGH 21")

	assert.Equal(t, RenderSummary(models.FindingSummary{{Severity: models.CriticalSeverity, Count: 0}}), "CRITICAL 0")
	assert.Equal(t, RenderSummary(nil), "")

	broken := models.FindingSummary{
		{Severity: models.HighSeverity, Count: 21},
		{Severity: models.MediumSeverity, Count: -1},
	}
	assert.Equal(t, RenderSummary(broken), RenderFailedMessage)
}

func TestFormatRepository(t *testing.T) {
	high := models.FindingSummary{{Severity: models.HighSeverity, Count: 2}}
	low := models.FindingSummary{{Severity: models.LowSeverity, Count: 5}}

	blocks := FormatRepository("foo", []ImageFindings{
		{Tag: "1.0.2", Findings: high},
		{Tag: "1.0.70", Findings: low},
	})
	assert.DeepEqual(t, "blocks", blocks, []Block{
		{RepositoryName: "foo", ImageTag: "1.0.70", Summary: "LOW 5"},
		{RepositoryName: "foo", ImageTag: "1.0.2", Summary: "HIGH 2"},
	})
	assert.Equal(t, blocks[0].Text(), "`foo:1.0.70` vulnerabilities: LOW 5")
	assert.Equal(t, blocks[1].Text(), "`foo:1.0.2` vulnerabilities: HIGH 2")

	// the sort is stable for equal tags
	blocks = FormatRepository("foo", []ImageFindings{
		{Tag: "latest", Findings: high},
		{Tag: "v2", Findings: high},
		{Tag: "latest", Findings: low},
	})
	assert.DeepEqual(t, "blocks", blocks, []Block{
		{RepositoryName: "foo", ImageTag: "v2", Summary: "HIGH 2"},
		{RepositoryName: "foo", ImageTag: "latest", Summary: "HIGH 2"},
		{RepositoryName: "foo", ImageTag: "latest", Summary: "LOW 5"},
	})

	// no images, no blocks
	assert.Equal(t, len(FormatRepository("foo", nil)), 0)
}

func TestFormatRepositoryDoesNotReorderInput(t *testing.T) {
	images := []ImageFindings{
		{Tag: "a", Findings: models.FindingSummary{{Severity: models.LowSeverity, Count: 1}}},
		{Tag: "b", Findings: models.FindingSummary{{Severity: models.LowSeverity, Count: 1}}},
	}
	FormatRepository("foo", images)
	assert.Equal(t, images[0].Tag, "a")
}
