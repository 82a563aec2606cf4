package action

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/acmload/clustertime/internal/report"
	"github.com/acmload/clustertime/pkg/common"
)

type VersionOptions struct {
	OutputFormat  common.OutputFormat
	OutputNoPrint bool
}

func Version(ctx context.Context, opts VersionOptions) (*VersionResult, error) {
	actionLock.Lock()
	defer actionLock.Unlock()

	if opts.OutputFormat == "" || opts.OutputFormat == common.OutputFormatTable {
		opts.OutputFormat = DefaultVersionOutputFormat
	}

	result := &VersionResult{
		FullVersion: common.Version,
	}

	if semVer, err := semver.StrictNewVersion(common.Version); err == nil {
		result.MajorVersion = int(semVer.Major())
		result.MinorVersion = int(semVer.Minor())
		result.PatchVersion = int(semVer.Patch())
	}

	if !opts.OutputNoPrint {
		if err := report.PrintValue(ctx, os.Stdout, result, opts.OutputFormat); err != nil {
			return nil, fmt.Errorf("print version: %w", err)
		}
	}

	return result, nil
}

type VersionResult struct {
	FullVersion  string `json:"full"`
	MajorVersion int    `json:"major"`
	MinorVersion int    `json:"minor"`
	PatchVersion int    `json:"patch"`
}
