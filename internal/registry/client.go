// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package registry enumerates the repositories and images in an ECR registry
// and requests image scans.
//
// Enumeration is fail-open: when a listing call fails or returns a malformed
// response, the failure is logged and an empty result is returned, so that the
// caller can continue with whatever else there is to do.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/smithy-go"
	. "github.com/majewsky/gg/option"
	"github.com/opencontainers/go-digest"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/ecr-scan-reporter/internal/models"
)

// API is the subset of the ECR API that this package uses.
// It is satisfied by *ecr.Client.
type API interface {
	ecr.DescribeRepositoriesAPIClient
	ecr.DescribeImagesAPIClient
	StartImageScan(ctx context.Context, params *ecr.StartImageScanInput, optFns ...func(*ecr.Options)) (*ecr.StartImageScanOutput, error)
}

// Client wraps an API with the enumeration and scanning operations needed by
// the scan-trigger and scan-notify jobs.
type Client struct {
	api        API
	registryID Option[string]
}

// NewClient builds a Client. If registryID is None, the default registry of
// the authenticated AWS account is used.
func NewClient(api API, registryID Option[string]) *Client {
	return &Client{api, registryID}
}

// ListImagesOpts contains options for Client.ListImages.
type ListImagesOpts struct {
	// If true, only images with at least one tag are listed.
	TaggedOnly bool
	// If true, the Findings field of each image is filled from the latest scan summary.
	WithFindings bool
}

// ListRepositories returns all repositories in the registry.
//
// If the registry cannot be queried, or if it returns a malformed response, the
// error is logged and an empty list is returned.
func (c *Client) ListRepositories(ctx context.Context) []models.Repository {
	input := &ecr.DescribeRepositoriesInput{
		RegistryId: c.registryID.AsPointer(),
	}

	var result []models.Repository
	paginator := ecr.NewDescribeRepositoriesPaginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logg.Error("could not list repositories: %s", describeError(err))
			return nil
		}
		for _, repo := range page.Repositories {
			name := aws.ToString(repo.RepositoryName)
			if name == "" {
				logg.Error("could not list repositories: response contains a repository without repositoryName")
				return nil
			}
			result = append(result, models.Repository{Name: name})
		}
	}

	logg.Debug("found %d repositories", len(result))
	return result
}

// ListImages returns all images in the given repository.
//
// If the repository cannot be queried, the error is logged and an empty list is
// returned. Images with a missing or malformed digest are logged and skipped.
func (c *Client) ListImages(ctx context.Context, repoName string, opts ListImagesOpts) []models.Image {
	input := &ecr.DescribeImagesInput{
		RepositoryName: aws.String(repoName),
		RegistryId:     c.registryID.AsPointer(),
	}
	if opts.TaggedOnly {
		input.Filter = &types.DescribeImagesFilter{TagStatus: types.TagStatusTagged}
	}

	var result []models.Image
	paginator := ecr.NewDescribeImagesPaginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logg.Error("could not list images in repository %s: %s", repoName, describeError(err))
			return nil
		}
		for _, detail := range page.ImageDetails {
			img, err := parseImageDetail(repoName, detail, opts)
			if err != nil {
				logg.Error("skipping image in repository %s: %s", repoName, err.Error())
				continue
			}
			if opts.TaggedOnly && len(img.Tags) == 0 {
				continue
			}
			result = append(result, img)
		}
	}

	logg.Debug("found %d images in repository %s", len(result), repoName)
	return result
}

func parseImageDetail(repoName string, detail types.ImageDetail, opts ListImagesOpts) (models.Image, error) {
	digestStr := aws.ToString(detail.ImageDigest)
	if digestStr == "" {
		return models.Image{}, fmt.Errorf("response contains an image without imageDigest (tags: %v)", detail.ImageTags)
	}
	dgst, err := digest.Parse(digestStr)
	if err != nil {
		return models.Image{}, fmt.Errorf("malformed imageDigest %q: %w", digestStr, err)
	}

	img := models.Image{
		RepositoryName: repoName,
		Digest:         dgst,
		Tags:           detail.ImageTags,
	}
	if opts.WithFindings {
		summary := detail.ImageScanFindingsSummary
		if summary != nil && summary.FindingSeverityCounts != nil {
			img.Findings = Some(models.FindingSummaryFromCounts(summary.FindingSeverityCounts))
		} else {
			logg.Debug("no completed scan for %s", img.String())
		}
	}
	return img, nil
}

// StartImageScan requests a new vulnerability scan of the given image.
// Whether a scan that is already in progress is restarted or left alone is up
// to the registry.
func (c *Client) StartImageScan(ctx context.Context, repoName string, dgst digest.Digest) error {
	_, err := c.api.StartImageScan(ctx, &ecr.StartImageScanInput{
		RepositoryName: aws.String(repoName),
		RegistryId:     c.registryID.AsPointer(),
		ImageId:        &types.ImageIdentifier{ImageDigest: aws.String(dgst.String())},
	})
	if err != nil {
		return fmt.Errorf("cannot start image scan for %s@%s: %s", repoName, dgst, describeError(err))
	}
	return nil
}

// describeError renders errors from the AWS SDK for log messages. For API
// errors, the error code is included since it is more useful than the message
// in most cases, e.g. "LimitExceededException" or "RepositoryNotFoundException".
func describeError(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err.Error()
}
