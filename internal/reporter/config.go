// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package reporter contains the process-level setup that is shared by the
// scan-trigger and scan-notify commands.
package reporter

import (
	"fmt"
	"net/url"
	"os"

	. "github.com/majewsky/gg/option"
	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/osext"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
	"github.com/sapcc/ecr-scan-reporter/internal/webhook"
)

// Configuration contains the settings that both jobs need.
type Configuration struct {
	// None means the default registry of the authenticated AWS account.
	RegistryID Option[string]
}

// NotifierConfiguration contains the additional settings of the scan-notify job.
type NotifierConfiguration struct {
	Filter  models.SeverityFilter
	Webhook webhook.Config
}

// ParseConfiguration obtains a Configuration instance from the corresponding
// environment variables. Aborts on error.
func ParseConfiguration() Configuration {
	return Configuration{
		RegistryID: getenvOption("ECR_REGISTRY_ID"),
	}
}

// ParseNotifierConfiguration obtains a NotifierConfiguration instance from the
// corresponding environment variables. Aborts on error.
func ParseNotifierConfiguration() NotifierConfiguration {
	cfg, err := parseNotifierConfiguration()
	if err != nil {
		logg.Fatal(err.Error())
	}
	return cfg
}

func parseNotifierConfiguration() (NotifierConfiguration, error) {
	var cfg NotifierConfiguration
	cfg.Filter = models.ParseSeverityFilter(os.Getenv("RISK_LEVELS"))

	var err error
	cfg.Webhook.WebhookURL, err = needGetenvURL("SLACK_WEBHOOK_URL")
	if err != nil {
		return NotifierConfiguration{}, err
	}
	cfg.Webhook.Channel, err = osext.NeedGetenv("SLACK_CHANNEL")
	if err != nil {
		return NotifierConfiguration{}, err
	}
	cfg.Webhook.Username, err = osext.NeedGetenv("SLACK_USERNAME")
	if err != nil {
		return NotifierConfiguration{}, err
	}
	cfg.Webhook.Icon, err = osext.NeedGetenv("SLACK_EMOJI")
	if err != nil {
		return NotifierConfiguration{}, err
	}
	return cfg, nil
}

func getenvOption(key string) Option[string] {
	val := os.Getenv(key)
	if val == "" {
		return None[string]()
	}
	return Some(val)
}

func needGetenvURL(key string) (string, error) {
	val, err := osext.NeedGetenv(key)
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(val)
	if err != nil {
		return "", fmt.Errorf("malformed %s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("malformed %s: expected an http:// or https:// URL", key)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("malformed %s: missing hostname", key)
	}
	return val, nil
}
