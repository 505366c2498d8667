// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package models

import (
	. "github.com/majewsky/gg/option"
	"github.com/opencontainers/go-digest"
)

// Repository is a repository in the registry, as discovered during the current run.
type Repository struct {
	Name string
}

// Image is an image in a repository, as discovered during the current run.
type Image struct {
	RepositoryName string
	Digest         digest.Digest
	// Tags are in the order reported by the registry. May be empty.
	Tags []string
	// Findings is None if no scan has completed for this image yet, or if the
	// findings were not requested when listing images.
	Findings Option[FindingSummary]
}

// DisplayTag returns the tag that is shown for this image in notifications,
// or None if the image is untagged.
func (i Image) DisplayTag() Option[string] {
	if len(i.Tags) == 0 || i.Tags[0] == "" {
		return None[string]()
	}
	return Some(i.Tags[0])
}

// String returns a human-readable reference for this image, e.g. for log messages.
func (i Image) String() string {
	if tag, ok := i.DisplayTag().Unpack(); ok {
		return i.RepositoryName + ":" + tag
	}
	return i.RepositoryName + "@" + i.Digest.String()
}
