// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package scantriggercmd

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/httpext"
	"github.com/sapcc/go-bits/must"
	"github.com/spf13/cobra"

	"github.com/sapcc/ecr-scan-reporter/internal/reporter"
	"github.com/sapcc/ecr-scan-reporter/internal/tasks"
)

var longDesc = strings.TrimSpace(`
Requests a vulnerability scan for every image in every repository of the ECR
registry, including untagged images. Failed requests are logged and do not
stop the remaining requests. Configuration is read from environment variables
as described in README.md.
`)

var opts reporter.RunOpts

// AddCommandTo mounts this command into the command hierarchy.
func AddCommandTo(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "scan-trigger",
		Short: "Request image scans for all images in the ECR registry.",
		Long:  longDesc,
		Args:  cobra.NoArgs,
		Run:   run,
	}
	cmd.Flags().BoolVar(&opts.Lambda, "lambda", false, "Run once per invocation as an AWS Lambda function")
	cmd.Flags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics into this file after each run")
	parent.AddCommand(cmd)
}

func run(cmd *cobra.Command, args []string) {
	reporter.SetTaskName("scan-trigger")

	cfg := reporter.ParseConfiguration()
	ctx := httpext.ContextWithSIGINT(cmd.Context(), 0)
	rc := must.Return(reporter.NewRegistryClient(ctx, cfg))

	registry := prometheus.NewRegistry()
	opts.Gatherer = registry
	job := tasks.NewScanReporter(rc).ScanTriggerJob(registry)
	reporter.RunJob(ctx, job, opts)
}
