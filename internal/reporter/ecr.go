// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package reporter

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/sapcc/go-api-declarations/bininfo"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/ecr-scan-reporter/internal/registry"
)

// NewRegistryClient builds a registry.Client for the ECR registry in the
// configured AWS region. Credentials and region are taken from the usual AWS
// environment variables, shared config files or the execution role.
func NewRegistryClient(ctx context.Context, cfg Configuration) (*registry.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithAppID(bininfo.Component()))
	if err != nil {
		return nil, fmt.Errorf("cannot load AWS configuration: %w", err)
	}
	if awsCfg.Region == "" {
		return nil, errors.New("cannot connect to ECR: no AWS region configured (set AWS_REGION)")
	}

	if id, ok := cfg.RegistryID.Unpack(); ok {
		logg.Debug("connecting to ECR registry %s in region %s", id, awsCfg.Region)
	} else {
		logg.Debug("connecting to default ECR registry in region %s", awsCfg.Region)
	}
	return registry.NewClient(ecr.NewFromConfig(awsCfg), cfg.RegistryID), nil
}
