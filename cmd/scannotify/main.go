// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package scannotifycmd

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/httpext"
	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/must"
	"github.com/spf13/cobra"

	"github.com/sapcc/ecr-scan-reporter/internal/reporter"
	"github.com/sapcc/ecr-scan-reporter/internal/tasks"
	"github.com/sapcc/ecr-scan-reporter/internal/webhook"
)

var longDesc = strings.TrimSpace(`
Reads the latest scan results for all tagged images in the ECR registry, and
sends one Slack message per repository with reportable findings. Only the
severities listed in $RISK_LEVELS are reported, or all severities if
$RISK_LEVELS is empty. Configuration is read from environment variables as
described in README.md.
`)

var opts reporter.RunOpts

// AddCommandTo mounts this command into the command hierarchy.
func AddCommandTo(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "scan-notify",
		Short: "Report image scan results from the ECR registry to Slack.",
		Long:  longDesc,
		Args:  cobra.NoArgs,
		Run:   run,
	}
	cmd.Flags().BoolVar(&opts.Lambda, "lambda", false, "Run once per invocation as an AWS Lambda function")
	cmd.Flags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics into this file after each run")
	parent.AddCommand(cmd)
}

func run(cmd *cobra.Command, args []string) {
	reporter.SetTaskName("scan-notify")

	cfg := reporter.ParseConfiguration()
	ncfg := reporter.ParseNotifierConfiguration()
	logg.Info("reporting findings with severity %s to %s", ncfg.Filter.String(), ncfg.Webhook.Channel)

	ctx := httpext.ContextWithSIGINT(cmd.Context(), 0)
	rc := must.Return(reporter.NewRegistryClient(ctx, cfg))

	registry := prometheus.NewRegistry()
	opts.Gatherer = registry
	job := tasks.NewScanReporter(rc).
		WithNotifications(webhook.NewSender(ncfg.Webhook), ncfg.Filter).
		ScanNotifyJob(registry)
	reporter.RunJob(ctx, job, opts)
}
