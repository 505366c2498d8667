// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package reporter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/jobloop"
	"github.com/sapcc/go-bits/must"
)

func TestRunJobWritesMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	runCount := 0
	job := (&jobloop.CronJob{
		Metadata: jobloop.JobMetadata{
			ReadableName: "test",
			CounterOpts: prometheus.CounterOpts{
				Name: "ecr_scan_reporter_test_runs",
				Help: "Counter for test runs.",
			},
		},
		Task: func(_ context.Context, _ prometheus.Labels) error {
			runCount++
			if runCount > 1 {
				return errors.New("simulated failure")
			}
			return nil
		},
	}).Setup(registry)

	path := filepath.Join(t.TempDir(), "ecr-scan-reporter.prom")
	opts := RunOpts{MetricsTextfile: path, Gatherer: registry}

	RunJob(t.Context(), job, opts)
	assert.Equal(t, runCount, 1)
	buf := must.ReturnT(os.ReadFile(path))(t)
	assert.Equal(t, strings.Contains(string(buf), `ecr_scan_reporter_test_runs{task_outcome="success"} 1`), true)

	// a failing run is not fatal, and the file is updated
	RunJob(t.Context(), job, opts)
	assert.Equal(t, runCount, 2)
	buf = must.ReturnT(os.ReadFile(path))(t)
	assert.Equal(t, strings.Contains(string(buf), `ecr_scan_reporter_test_runs{task_outcome="failure"} 1`), true)
}
