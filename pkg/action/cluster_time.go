package action

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/acmload/clustertime/internal/extract"
	"github.com/acmload/clustertime/internal/kube"
	"github.com/acmload/clustertime/internal/milestone"
	"github.com/acmload/clustertime/internal/report"
	"github.com/acmload/clustertime/internal/source"
	"github.com/acmload/clustertime/internal/timeline"
	"github.com/acmload/clustertime/pkg/common"
	"github.com/acmload/clustertime/pkg/log"
)

type ClusterTimeOptions struct {
	common.KubeConnectionOptions

	// Skip TLS verification of the assisted-service events endpoint.
	EventsInsecure bool
	FetchRetries   int
	FetchTimeout   time.Duration
	// Read raw records saved by a previous run from this directory instead of
	// the cluster.
	FromDir            string
	NetworkParallelism int
	NoSaveRaw          bool
	OutputFormat       common.OutputFormat
	OutputNoPrint      bool
	UpgradeNamespace   string
}

// ClusterTime reconstructs the provisioning timeline of a cluster, writes the
// stats file into resultsDir and prints the result.
//
// When some phase endpoint is missing the timeline is still reported, and the
// returned error wraps *timeline.MissingMilestoneError alongside a non-nil
// result.
func ClusterTime(ctx context.Context, cluster, resultsDir string, opts ClusterTimeOptions) (*report.ResultV1, error) {
	actionLock.Lock()
	defer actionLock.Unlock()

	startedAt := time.Now()

	if cluster == "" {
		return nil, errors.New("cluster name is required")
	} else if resultsDir == "" {
		return nil, errors.New("results directory is required")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}

	opts = applyClusterTimeOptionsDefaults(opts, homeDir)

	if err := milestone.Validate(); err != nil {
		return nil, fmt.Errorf("validate milestone registry: %w", err)
	}

	src, err := newClusterTimeSource(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("construct record source: %w", err)
	}

	bundle, err := src.Fetch(ctx, cluster)
	if err != nil {
		return nil, fmt.Errorf("fetch records of cluster %q: %w", cluster, err)
	}

	if !opts.NoSaveRaw && opts.FromDir == "" {
		rawDir := source.RawDir(resultsDir, cluster)
		log.Default.Info(ctx, "Storing results in: %s", rawDir)

		if err := source.SaveRaw(ctx, rawDir, bundle); err != nil {
			return nil, fmt.Errorf("save raw records: %w", err)
		}
	}

	outputs, err := extract.All(bundle.Records)
	if err != nil {
		return nil, fmt.Errorf("extract milestones: %w", err)
	}

	tl, err := timeline.Build(outputs)
	if err != nil {
		return nil, fmt.Errorf("build timeline: %w", err)
	}

	for _, name := range tl.Missing() {
		log.Default.Debug(ctx, "Milestone %q not found for cluster %q", name, cluster)
	}

	for _, name := range tl.OutOfOrder() {
		log.Default.Warn(ctx, "Warning: milestone %q happened before the milestone preceding it", name)
	}

	totals, phasesErr := timeline.Aggregate(tl, milestone.Phases())
	if phasesErr != nil {
		var missingErr *timeline.MissingMilestoneError
		if !errors.As(phasesErr, &missingErr) {
			return nil, fmt.Errorf("aggregate phases: %w", phasesErr)
		}

		totals = nil
	}

	result := report.NewResult(cluster, tl, totals)

	if err := writeStatsFile(ctx, resultsDir, result); err != nil {
		return nil, fmt.Errorf("write stats file: %w", err)
	}

	if !opts.OutputNoPrint {
		if err := report.Print(ctx, os.Stdout, result, opts.OutputFormat); err != nil {
			return nil, fmt.Errorf("print result: %w", err)
		}
	}

	log.Default.Info(ctx, "Took %.1fs", time.Since(startedAt).Seconds())

	if phasesErr != nil {
		return result, fmt.Errorf("aggregate phases: %w", phasesErr)
	}

	return result, nil
}

func applyClusterTimeOptionsDefaults(opts ClusterTimeOptions, homeDir string) ClusterTimeOptions {
	opts.KubeConnectionOptions.ApplyDefaults(homeDir)

	if opts.FetchRetries <= 0 {
		opts.FetchRetries = common.DefaultFetchRetries
	}

	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = common.DefaultFetchTimeout
	}

	if opts.NetworkParallelism <= 0 {
		opts.NetworkParallelism = common.DefaultNetworkParallelism
	}

	if opts.OutputFormat == "" {
		opts.OutputFormat = DefaultClusterTimeOutputFormat
	}

	opts.UpgradeNamespace = lo.CoalesceOrEmpty(opts.UpgradeNamespace, common.DefaultUpgradeNamespace)

	return opts
}

func newClusterTimeSource(ctx context.Context, opts ClusterTimeOptions) (source.Source, error) {
	if opts.FromDir != "" {
		log.Default.Info(ctx, "Reading records from: %s", opts.FromDir)
		return source.NewDirSource(opts.FromDir), nil
	}

	kubeConfig, err := kube.NewKubeConfig(ctx, opts.KubeConfigPaths, kube.KubeConfigOptions{
		KubeConnectionOptions: opts.KubeConnectionOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("construct kube config: %w", err)
	}

	clientFactory, err := kube.NewClientFactory(ctx, kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("construct kube client factory: %w", err)
	}

	return source.NewClusterSource(ctx, clientFactory, source.ClusterSourceOptions{
		EventsInsecure:     opts.EventsInsecure,
		FetchRetries:       opts.FetchRetries,
		NetworkParallelism: opts.NetworkParallelism,
		Timeout:            opts.FetchTimeout,
		UpgradeNamespace:   opts.UpgradeNamespace,
	}), nil
}

func writeStatsFile(ctx context.Context, resultsDir string, result *report.ResultV1) error {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("create results directory %q: %w", resultsDir, err)
	}

	path := source.StatsFile(resultsDir, result.Cluster)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer file.Close()

	if err := report.WriteStats(ctx, file, result); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	log.Default.Info(ctx, "Stats written to: %s", path)

	return nil
}
