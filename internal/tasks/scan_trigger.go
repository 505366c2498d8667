// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package tasks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/errext"
	"github.com/sapcc/go-bits/jobloop"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/ecr-scan-reporter/internal/registry"
)

// ScanTriggerJob is a job. Each task requests a vulnerability scan for every
// image in every repository of the registry, including untagged images.
//
// Scans are requested regardless of whether a recent scan result exists. If
// the repositories cannot be listed, nothing is requested and the task
// succeeds.
func (r *ScanReporter) ScanTriggerJob(registerer prometheus.Registerer) jobloop.Job {
	counter := registerCounter(registerer, newScanRequestCounter(), outcomeStarted, outcomeFailed)

	return (&jobloop.CronJob{
		Metadata: jobloop.JobMetadata{
			ReadableName: "scan trigger",
			CounterOpts: prometheus.CounterOpts{
				Name: "ecr_scan_reporter_scan_trigger_runs",
				Help: "Counter for runs of the job that requests image scans.",
			},
		},
		Task: func(ctx context.Context, _ prometheus.Labels) error {
			return r.triggerScans(ctx, counter)
		},
	}).Setup(registerer)
}

func (r *ScanReporter) triggerScans(ctx context.Context, counter *prometheus.CounterVec) error {
	var (
		errs      errext.ErrorSet
		requested int
	)

	repos := r.registry.ListRepositories(ctx)
	for _, repo := range repos {
		images := r.registry.ListImages(ctx, repo.Name, registry.ListImagesOpts{})
		for _, img := range images {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("interrupted after %d scan requests: %w", requested, err)
			}

			requested++
			err := r.registry.StartImageScan(ctx, repo.Name, img.Digest)
			if err != nil {
				logg.Error(err.Error())
				errs.Add(err)
				counter.WithLabelValues(outcomeFailed).Inc()
				continue
			}
			logg.Debug("requested scan for %s", img.String())
			counter.WithLabelValues(outcomeStarted).Inc()
		}
	}

	logg.Info("requested %d image scans in %d repositories (%d failed)", requested, len(repos), len(errs))
	if !errs.IsEmpty() {
		return fmt.Errorf("%d of %d scan requests failed", len(errs), requested)
	}
	return nil
}
