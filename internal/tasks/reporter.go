// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package tasks contains the scan-trigger and scan-notify jobs.
//
// Both jobs process one repository after the other. A failure that affects
// one repository or image is logged and does not stop the job from moving on
// to the next one.
package tasks

import (
	"context"

	"github.com/opencontainers/go-digest"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
	"github.com/sapcc/ecr-scan-reporter/internal/notify"
	"github.com/sapcc/ecr-scan-reporter/internal/registry"
	"github.com/sapcc/ecr-scan-reporter/internal/webhook"
)

// RegistryClient is the interface that the jobs use to talk to the registry.
// It is satisfied by *registry.Client.
type RegistryClient interface {
	ListRepositories(ctx context.Context) []models.Repository
	ListImages(ctx context.Context, repoName string, opts registry.ListImagesOpts) []models.Image
	StartImageScan(ctx context.Context, repoName string, dgst digest.Digest) error
}

// NotificationSender is the interface that the scan-notify job uses to deliver
// notifications. It is satisfied by *webhook.Sender.
type NotificationSender interface {
	Send(ctx context.Context, blocks []notify.Block) (webhook.DeliveryResult, error)
}

// ScanReporter contains the collaborators of the scan-trigger and scan-notify jobs.
type ScanReporter struct {
	registry RegistryClient
	sender   NotificationSender
	filter   models.SeverityFilter
}

// NewScanReporter creates a new ScanReporter. This is enough to set up
// ScanTriggerJob. For ScanNotifyJob, WithNotifications must be called as well.
func NewScanReporter(rc RegistryClient) *ScanReporter {
	return &ScanReporter{registry: rc}
}

// WithNotifications configures where ScanNotifyJob delivers its
// notifications, and which findings it reports.
func (r *ScanReporter) WithNotifications(ns NotificationSender, filter models.SeverityFilter) *ScanReporter {
	r.sender = ns
	r.filter = filter
	return r
}
