// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/sapcc/go-api-declarations/bininfo"
	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/osext"
	"github.com/spf13/cobra"

	scannotifycmd "github.com/sapcc/ecr-scan-reporter/cmd/scannotify"
	scantriggercmd "github.com/sapcc/ecr-scan-reporter/cmd/scantrigger"
	"github.com/sapcc/ecr-scan-reporter/internal/reporter"
)

func main() {
	logg.ShowDebug = osext.GetenvBool("ECR_SCAN_REPORTER_DEBUG")
	reporter.SetupHTTPClient()

	rootCmd := &cobra.Command{
		Use:     "ecr-scan-reporter",
		Short:   "Vulnerability scan trigger and reporter for AWS ECR",
		Long:    "ecr-scan-reporter requests vulnerability scans for all images in an ECR registry, and reports the scan results to Slack.",
		Version: bininfo.VersionOr("rolling"),
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	scantriggercmd.AddCommandTo(rootCmd)
	scannotifycmd.AddCommandTo(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logg.Fatal(err.Error())
	}
}
