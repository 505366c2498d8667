// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package tasks

import "github.com/prometheus/client_golang/prometheus"

// values for the "outcome" label
const (
	outcomeStarted   = "started"
	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
)

func newScanRequestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecr_scan_reporter_scan_requests",
		Help: "Counter for image scan requests sent to ECR.",
	}, []string{"outcome"})
}

func newNotificationCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecr_scan_reporter_notifications",
		Help: "Counter for per-repository notifications sent to Slack.",
	}, []string{"outcome"})
}

// registerCounter registers the counter and initializes the given label
// values to 0, so that all time series are reported from the start.
func registerCounter(registerer prometheus.Registerer, counter *prometheus.CounterVec, outcomes ...string) *prometheus.CounterVec {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	registerer.MustRegister(counter)
	for _, outcome := range outcomes {
		counter.WithLabelValues(outcome).Add(0)
	}
	return counter
}
