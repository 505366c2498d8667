// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package reporter

import (
	"testing"

	. "github.com/majewsky/gg/option"
	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/must"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
	"github.com/sapcc/ecr-scan-reporter/internal/webhook"
)

func setNotifierEnv(t *testing.T) {
	t.Setenv("RISK_LEVELS", "")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.example.com/services/T000/B000/XXXX")
	t.Setenv("SLACK_CHANNEL", "#security")
	t.Setenv("SLACK_USERNAME", "ECR Scan Reporter")
	t.Setenv("SLACK_EMOJI", ":shield:")
}

func TestParseConfiguration(t *testing.T) {
	t.Setenv("ECR_REGISTRY_ID", "")
	assert.Equal(t, ParseConfiguration().RegistryID, None[string]())

	t.Setenv("ECR_REGISTRY_ID", "123456789012")
	assert.Equal(t, ParseConfiguration().RegistryID, Some("123456789012"))
}

func TestParseNotifierConfiguration(t *testing.T) {
	setNotifierEnv(t)
	cfg := must.ReturnT(parseNotifierConfiguration())(t)
	assert.Equal(t, cfg.Filter.IsEmpty(), true)
	assert.Equal(t, cfg.Webhook, webhook.Config{
		WebhookURL: "https://hooks.slack.example.com/services/T000/B000/XXXX",
		Channel:    "#security",
		Username:   "ECR Scan Reporter",
		Icon:       ":shield:",
	})

	t.Setenv("RISK_LEVELS", `["HIGH","CRITICAL"]`)
	cfg = must.ReturnT(parseNotifierConfiguration())(t)
	assert.Equal(t, cfg.Filter.String(), "CRITICAL,HIGH")
	assert.Equal(t, cfg.Filter.Includes(models.HighSeverity), true)
	assert.Equal(t, cfg.Filter.Includes(models.LowSeverity), false)
}

func TestParseNotifierConfigurationErrors(t *testing.T) {
	testCases := map[string]string{
		"":                   `environment variable "SLACK_WEBHOOK_URL" is not set`,
		"hooks.slack.com":    `malformed SLACK_WEBHOOK_URL: expected an http:// or https:// URL`,
		"ftp://example.com/": `malformed SLACK_WEBHOOK_URL: expected an http:// or https:// URL`,
		"https:///services":  `malformed SLACK_WEBHOOK_URL: missing hostname`,
	}
	for input, expected := range testCases {
		setNotifierEnv(t)
		t.Setenv("SLACK_WEBHOOK_URL", input)
		_, err := parseNotifierConfiguration()
		if err == nil {
			t.Errorf("expected error for SLACK_WEBHOOK_URL = %q, but got none", input)
			continue
		}
		assert.Equal(t, err.Error(), expected)
	}

	setNotifierEnv(t)
	t.Setenv("SLACK_EMOJI", "")
	_, err := parseNotifierConfiguration()
	if err == nil {
		t.Fatal("expected error for missing SLACK_EMOJI, but got none")
	}
	assert.Equal(t, err.Error(), `environment variable "SLACK_EMOJI" is not set`)
}
