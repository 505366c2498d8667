// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package reporter

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/jobloop"
	"github.com/sapcc/go-bits/logg"
)

// RunOpts contains options for RunJob.
type RunOpts struct {
	// If true, the job runs once per Lambda invocation instead of once overall.
	Lambda bool
	// If not empty, metrics are written into this file after each run, in the
	// format of the node-exporter textfile collector.
	MetricsTextfile string
	// Where the metrics are read from. Required if MetricsTextfile is set.
	Gatherer prometheus.Gatherer
}

// RunJob runs the job once, or once per invocation when running in AWS Lambda.
//
// Errors from the job are logged, but not returned: Both jobs are best-effort,
// and the next scheduled run will try again.
func RunJob(ctx context.Context, job jobloop.Job, opts RunOpts) {
	if !opts.Lambda {
		runOnce(ctx, job, opts)
		return
	}

	// the event payload carries no information for us, it only tells us when to run
	lambda.StartWithOptions(func(ctx context.Context, _ json.RawMessage) error {
		runOnce(ctx, job, opts)
		return nil
	}, lambda.WithContext(ctx))
}

func runOnce(ctx context.Context, job jobloop.Job, opts RunOpts) {
	err := job.ProcessOne(ctx)
	if err != nil {
		logg.Error(err.Error())
	}

	if opts.MetricsTextfile != "" {
		err := prometheus.WriteToTextfile(opts.MetricsTextfile, opts.Gatherer)
		if err != nil {
			logg.Error("could not write metrics to %s: %s", opts.MetricsTextfile, err.Error())
		}
	}
}
