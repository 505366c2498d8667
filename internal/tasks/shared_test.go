// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package tasks

import (
	"testing"

	. "github.com/majewsky/gg/option"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/must"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
	"github.com/sapcc/ecr-scan-reporter/internal/registry"
	"github.com/sapcc/ecr-scan-reporter/internal/test"
	"github.com/sapcc/ecr-scan-reporter/internal/webhook"
)

const slackHost = "hooks.slack.example.com"

type setupResult struct {
	ECR      *test.ECRDouble
	Slack    *test.SlackDouble
	Registry *prometheus.Registry
	Reporter *ScanReporter
}

// setup must be called within test.WithRoundTripper.
func setup(tt *test.RoundTripper, filter models.SeverityFilter) setupResult {
	ecr := test.NewECRDouble()
	ecr.PageSize = 2
	slackDouble := test.NewSlackDouble()
	tt.Handlers[slackHost] = slackDouble.Handler()

	sender := webhook.NewSender(webhook.Config{
		WebhookURL: "https://" + slackHost + "/services/T000/B000/XXXX",
		Channel:    "#security",
		Username:   "ECR Scan Reporter",
		Icon:       ":shield:",
	})
	rc := registry.NewClient(ecr, None[string]())

	return setupResult{
		ECR:      ecr,
		Slack:    slackDouble,
		Registry: prometheus.NewRegistry(),
		Reporter: NewScanReporter(rc).WithNotifications(sender, filter),
	}
}

// counterValue returns the value of the counter with the given name and label value.
func counterValue(t *testing.T, reg *prometheus.Registry, name, labelName, labelValue string) float64 {
	t.Helper()
	families := must.ReturnT(reg.Gather())(t)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == labelName && label.GetValue() == labelValue {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func expectError(t *testing.T, expected string, actual error) {
	t.Helper()
	if actual == nil {
		t.Errorf("expected err = %q, but got <nil>", expected)
	} else if expected != actual.Error() {
		t.Errorf("expected err = %q, but got %q", expected, actual.Error())
	}
}
