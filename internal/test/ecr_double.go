// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/smithy-go"
	"github.com/opencontainers/go-digest"
)

// ScanRequest records a call to ECRDouble.StartImageScan.
type ScanRequest struct {
	RepositoryName string
	Digest         digest.Digest
}

// ECRDouble is an in-memory test double for the parts of the ECR API that
// registry.Client uses. Listings are paginated with PageSize to exercise
// pagination in the callers.
type ECRDouble struct {
	// Repository names, in the order in which they are listed.
	RepositoryNames []string
	// Images by repository name, in the order in which they are listed.
	Images map[string][]types.ImageDetail
	// Number of items per page. If 0, everything is returned on one page.
	PageSize int

	// If not nil, all DescribeRepositories calls fail with this error.
	DescribeRepositoriesError error
	// DescribeImages calls fail with these errors, by repository name.
	DescribeImagesErrors map[string]error
	// StartImageScan calls fail with these errors, by image digest.
	StartImageScanErrors map[digest.Digest]error

	// All successful StartImageScan calls, in order.
	StartedScans []ScanRequest
	// All DescribeImages calls, in order.
	DescribeImagesCalls []ecr.DescribeImagesInput
}

// NewECRDouble creates an ECRDouble without any repositories.
func NewECRDouble() *ECRDouble {
	return &ECRDouble{
		Images:               make(map[string][]types.ImageDetail),
		DescribeImagesErrors: make(map[string]error),
		StartImageScanErrors: make(map[digest.Digest]error),
	}
}

// AddRepository adds a repository with the given images to this double.
func (d *ECRDouble) AddRepository(name string, images ...types.ImageDetail) {
	d.RepositoryNames = append(d.RepositoryNames, name)
	d.Images[name] = append(d.Images[name], images...)
}

// APIError builds an error like the ones returned by the AWS SDK for failed API calls.
func APIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message, Fault: smithy.FaultClient}
}

// ImageDetail builds an image record as returned by DescribeImages. If
// severityCounts is nil, the image looks as if it had not been scanned yet.
func ImageDetail(dgst digest.Digest, tags []string, severityCounts map[string]int32) types.ImageDetail {
	detail := types.ImageDetail{
		ImageDigest: aws.String(dgst.String()),
		ImageTags:   tags,
	}
	if severityCounts != nil {
		detail.ImageScanFindingsSummary = &types.ImageScanFindingsSummary{
			FindingSeverityCounts: severityCounts,
		}
	}
	return detail
}

// DescribeRepositories implements the registry.API interface.
func (d *ECRDouble) DescribeRepositories(ctx context.Context, input *ecr.DescribeRepositoriesInput, _ ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	if d.DescribeRepositoriesError != nil {
		return nil, d.DescribeRepositoriesError
	}

	repos := make([]types.Repository, len(d.RepositoryNames))
	for idx, name := range d.RepositoryNames {
		repos[idx] = types.Repository{RepositoryName: aws.String(name)}
	}
	page, nextToken, err := paginate(repos, input.NextToken, d.PageSize)
	if err != nil {
		return nil, err
	}
	return &ecr.DescribeRepositoriesOutput{Repositories: page, NextToken: nextToken}, nil
}

// DescribeImages implements the registry.API interface.
func (d *ECRDouble) DescribeImages(ctx context.Context, input *ecr.DescribeImagesInput, _ ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error) {
	d.DescribeImagesCalls = append(d.DescribeImagesCalls, *input)

	repoName := aws.ToString(input.RepositoryName)
	if err := d.DescribeImagesErrors[repoName]; err != nil {
		return nil, err
	}
	if !slices.Contains(d.RepositoryNames, repoName) {
		return nil, APIError("RepositoryNotFoundException", fmt.Sprintf("The repository with name '%s' does not exist", repoName))
	}

	var images []types.ImageDetail
	for _, detail := range d.Images[repoName] {
		if input.Filter != nil {
			switch input.Filter.TagStatus {
			case types.TagStatusTagged:
				if len(detail.ImageTags) == 0 {
					continue
				}
			case types.TagStatusUntagged:
				if len(detail.ImageTags) > 0 {
					continue
				}
			}
		}
		images = append(images, detail)
	}
	page, nextToken, err := paginate(images, input.NextToken, d.PageSize)
	if err != nil {
		return nil, err
	}
	return &ecr.DescribeImagesOutput{ImageDetails: page, NextToken: nextToken}, nil
}

// StartImageScan implements the registry.API interface.
func (d *ECRDouble) StartImageScan(ctx context.Context, input *ecr.StartImageScanInput, _ ...func(*ecr.Options)) (*ecr.StartImageScanOutput, error) {
	repoName := aws.ToString(input.RepositoryName)
	if !slices.Contains(d.RepositoryNames, repoName) {
		return nil, APIError("RepositoryNotFoundException", fmt.Sprintf("The repository with name '%s' does not exist", repoName))
	}
	if input.ImageId == nil {
		return nil, APIError("InvalidParameterException", "imageId is required")
	}
	dgst := digest.Digest(aws.ToString(input.ImageId.ImageDigest))
	if err := d.StartImageScanErrors[dgst]; err != nil {
		return nil, err
	}

	d.StartedScans = append(d.StartedScans, ScanRequest{repoName, dgst})
	return &ecr.StartImageScanOutput{
		RepositoryName: input.RepositoryName,
		ImageId:        input.ImageId,
		ImageScanStatus: &types.ImageScanStatus{
			Status: types.ScanStatusInProgress,
		},
	}, nil
}

func paginate[T any](items []T, token *string, pageSize int) (page []T, nextToken *string, err error) {
	offset := 0
	if token != nil {
		offset, err = strconv.Atoi(*token)
		if err != nil || offset < 0 || offset > len(items) {
			return nil, nil, APIError("InvalidParameterException", fmt.Sprintf("invalid nextToken: %q", *token))
		}
	}
	if pageSize <= 0 || offset+pageSize >= len(items) {
		return items[offset:], nil, nil
	}
	return items[offset : offset+pageSize], aws.String(strconv.Itoa(offset + pageSize)), nil
}
