// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/errext"
	"github.com/sapcc/go-bits/jobloop"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/ecr-scan-reporter/internal/notify"
	"github.com/sapcc/ecr-scan-reporter/internal/registry"
)

// ScanNotifyJob is a job. Each task reads the latest scan results of all
// tagged images in the registry, and sends one notification per repository
// that has images with reportable findings. Repositories without such images
// do not get a notification at all.
func (r *ScanReporter) ScanNotifyJob(registerer prometheus.Registerer) jobloop.Job {
	if r.sender == nil {
		panic("ScanNotifyJob requires a ScanReporter with WithNotifications")
	}
	counter := registerCounter(registerer, newNotificationCounter(), outcomeDelivered, outcomeFailed)

	return (&jobloop.CronJob{
		Metadata: jobloop.JobMetadata{
			ReadableName: "scan notify",
			CounterOpts: prometheus.CounterOpts{
				Name: "ecr_scan_reporter_scan_notify_runs",
				Help: "Counter for runs of the job that reports image scan results.",
			},
		},
		Task: func(ctx context.Context, _ prometheus.Labels) error {
			return r.notifyFindings(ctx, counter)
		},
	}).Setup(registerer)
}

func (r *ScanReporter) notifyFindings(ctx context.Context, counter *prometheus.CounterVec) error {
	var (
		errs      errext.ErrorSet
		delivered int
	)

	repos := r.registry.ListRepositories(ctx)
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted after %d notifications: %w", delivered, err)
		}

		images := r.registry.ListImages(ctx, repo.Name, registry.ListImagesOpts{TaggedOnly: true, WithFindings: true})
		blocks := notify.FormatRepository(repo.Name, notify.SelectImages(images, r.filter))
		if len(blocks) == 0 {
			logg.Debug("nothing to report for repository %s", repo.Name)
			continue
		}

		err := r.deliver(ctx, repo.Name, blocks)
		if err != nil {
			logg.Error(err.Error())
			errs.Add(err)
			counter.WithLabelValues(outcomeFailed).Inc()
			continue
		}
		delivered++
		counter.WithLabelValues(outcomeDelivered).Inc()
	}

	logg.Info("sent %d notifications for %d repositories (%d failed)", delivered, len(repos), len(errs))
	if !errs.IsEmpty() {
		return fmt.Errorf("%d notifications could not be delivered: %s", len(errs), errs.Join(", "))
	}
	return nil
}

func (r *ScanReporter) deliver(ctx context.Context, repoName string, blocks []notify.Block) error {
	result, err := r.sender.Send(ctx, blocks)
	if err != nil {
		return fmt.Errorf("could not send notification for repository %s: %w", repoName, err)
	}
	if !result.IsSuccess() {
		texts := make([]string, len(blocks))
		for idx, b := range blocks {
			texts[idx] = b.Text()
		}
		logg.Error("notification for repository %s was not delivered, its contents were: %s", repoName, strings.Join(texts, " / "))
		return fmt.Errorf("could not send notification for repository %s: got status %d with response %q (headers: %q)",
			repoName, result.StatusCode, result.Body, result.Info)
	}
	logg.Debug("sent notification for repository %s with %d blocks", repoName, len(blocks))
	return nil
}
