package main

import (
	"cmp"
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/acmload/clustertime/internal/flag"
	"github.com/acmload/clustertime/pkg/action"
	"github.com/acmload/clustertime/pkg/common"
	"github.com/acmload/clustertime/pkg/log"
)

type analyzeConfig struct {
	action.ClusterTimeOptions

	Cluster      string
	LogColorMode string
	LogLevel     string
	OutputFormat string
}

func newAnalyzeCommand(ctx context.Context, afterAllCommandsBuiltFuncs map[*cobra.Command]func(cmd *cobra.Command) error) *cobra.Command {
	cfg := &analyzeConfig{}

	cmd := newSubCommand(
		"analyze RESULTS_DIR -c CLUSTER [options...]",
		"Reconstruct the provisioning timeline of a cluster.",
		"Reconstruct the provisioning timeline of a cluster. Raw records are saved to RESULTS_DIR/cluster-time-CLUSTER/, the stats report to RESULTS_DIR/cluster-time-CLUSTER.stats.",
		analyzeCmdGroup,
		cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			if err := validateAnalyzeConfig(cfg); err != nil {
				return err
			}

			ctx = log.SetupLogging(ctx, cmp.Or(log.Level(cfg.LogLevel), action.DefaultClusterTimeLogLevel), log.SetupLoggingOptions{
				ColorMode: cfg.LogColorMode,
			})

			cfg.ClusterTimeOptions.OutputFormat = common.OutputFormat(cfg.OutputFormat)

			if _, err := action.ClusterTime(ctx, cfg.Cluster, args[0], cfg.ClusterTimeOptions); err != nil {
				return fmt.Errorf("analyze: %w", err)
			}

			return nil
		},
	)

	afterAllCommandsBuiltFuncs[cmd] = func(cmd *cobra.Command) error {
		if err := flag.Add(cmd, &cfg.Cluster, "cluster", "", "The name of the cluster to analyze", flag.AddOptions{
			Group:     mainFlagGroup,
			Required:  true,
			ShortName: "c",
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.FromDir, "from-dir", "", "Read raw records saved by a previous run from this directory instead of querying the cluster", flag.AddOptions{
			Group: mainFlagGroup,
			Type:  flag.TypeDir,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.NoSaveRaw, "no-save-raw", false, "Don't save raw records into the results directory", flag.AddOptions{
			Group: mainFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.UpgradeNamespace, "upgrade-namespace", common.DefaultUpgradeNamespace, "Namespace of the ClusterGroupUpgrade created for the cluster", flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                fetchFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.EventsInsecure, "events-insecure", true, "Don't verify TLS certificates of the assisted-service events endpoint", flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                fetchFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.FetchRetries, "fetch-retries", common.DefaultFetchRetries, "Attempts to fetch each record, including the first one", flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                fetchFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.FetchTimeout, "fetch-timeout", common.DefaultFetchTimeout, "Timeout of a single request to the events endpoint", flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                fetchFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := addKubeConnectionFlags(cmd, &cfg.KubeConnectionOptions); err != nil {
			return fmt.Errorf("add kube connection flags: %w", err)
		}

		if err := flag.Add(cmd, &cfg.NetworkParallelism, "network-parallelism", common.DefaultNetworkParallelism, "Limit of network-related tasks to run in parallel", flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                performanceFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.LogColorMode, "color-mode", action.DefaultLogColorMode, "Color mode for logs. "+allowedLogColorModesHelp(), flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                miscFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.LogLevel, "log-level", string(action.DefaultClusterTimeLogLevel), "Set log level. "+allowedLogLevelsHelp(), flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                miscFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.OutputFormat, "output-format", string(action.DefaultClusterTimeOutputFormat), "Result output format. "+allowedOutputFormatsHelp(), flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                miscFlagGroup,
			ShortName:            "o",
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		return nil
	}

	return cmd
}

func validateAnalyzeConfig(cfg *analyzeConfig) error {
	if cfg.OutputFormat != "" && !lo.Contains(common.OutputFormats, common.OutputFormat(cfg.OutputFormat)) {
		return fmt.Errorf("unknown output format %q, %s", cfg.OutputFormat, allowedOutputFormatsHelp())
	}

	return validateLogOptions(cfg.LogLevel, cfg.LogColorMode)
}
