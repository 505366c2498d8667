// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package notify renders scan findings into the blocks that go into a chat notification.
package notify

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
)

// RenderFailedMessage is shown instead of a rendered FindingSummary that does
// not contain valid counts.
const RenderFailedMessage = "Failed to retrieve repository scan results"

// Block is one line of a notification, describing the findings for one image.
type Block struct {
	RepositoryName string
	ImageTag       string
	Summary        string
}

// Text renders this block into a Markdown line.
func (b Block) Text() string {
	return fmt.Sprintf("`%s:%s` vulnerabilities: %s", b.RepositoryName, b.ImageTag, b.Summary)
}

// RenderSummary renders a FindingSummary like "HIGH 21, MEDIUM 127, INFORMATIONAL 115".
// Entries appear in the order of the summary. An empty summary renders into
// the empty string.
func RenderSummary(summary models.FindingSummary) string {
	fields := make([]string, 0, len(summary))
	for _, entry := range summary {
		if entry.Count < 0 {
			return RenderFailedMessage
		}
		fields = append(fields, string(entry.Severity)+" "+strconv.FormatInt(entry.Count, 10))
	}
	return strings.Join(fields, ", ")
}

// FormatRepository renders the blocks for all reported images in the given
// repository. Blocks are sorted by image tag in descending lexicographic
// order. Images with the same tag stay in the order in which they were given.
//
// If there are no images, no blocks are returned, and no notification shall be
// sent for this repository.
func FormatRepository(repoName string, images []ImageFindings) []Block {
	if len(images) == 0 {
		return nil
	}

	sorted := slices.Clone(images)
	slices.SortStableFunc(sorted, func(lhs, rhs ImageFindings) int {
		return strings.Compare(rhs.Tag, lhs.Tag)
	})

	blocks := make([]Block, len(sorted))
	for idx, img := range sorted {
		blocks[idx] = Block{
			RepositoryName: repoName,
			ImageTag:       img.Tag,
			Summary:        RenderSummary(img.Findings),
		}
	}
	return blocks
}
