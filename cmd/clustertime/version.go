package main

import (
	"cmp"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acmload/clustertime/internal/flag"
	"github.com/acmload/clustertime/pkg/action"
	"github.com/acmload/clustertime/pkg/common"
	"github.com/acmload/clustertime/pkg/log"
)

type versionConfig struct {
	action.VersionOptions

	LogColorMode string
	LogLevel     string
	OutputFormat string
}

func newVersionCommand(ctx context.Context, afterAllCommandsBuiltFuncs map[*cobra.Command]func(cmd *cobra.Command) error) *cobra.Command {
	cfg := &versionConfig{}

	cmd := newSubCommand(
		"version [options...]",
		"Show version.",
		"Show version.",
		miscCmdGroup,
		cobra.NoArgs,
		func(cmd *cobra.Command, args []string) error {
			if err := validateLogOptions(cfg.LogLevel, cfg.LogColorMode); err != nil {
				return err
			}

			ctx = log.SetupLogging(ctx, cmp.Or(log.Level(cfg.LogLevel), action.DefaultVersionLogLevel), log.SetupLoggingOptions{
				ColorMode:      cfg.LogColorMode,
				LogIsParseable: true,
			})

			cfg.VersionOptions.OutputFormat = common.OutputFormat(cfg.OutputFormat)

			if _, err := action.Version(ctx, cfg.VersionOptions); err != nil {
				return fmt.Errorf("version: %w", err)
			}

			return nil
		},
	)

	afterAllCommandsBuiltFuncs[cmd] = func(cmd *cobra.Command) error {
		if err := flag.Add(cmd, &cfg.LogColorMode, "color-mode", action.DefaultLogColorMode, "Color mode for logs. "+allowedLogColorModesHelp(), flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                miscFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.LogLevel, "log-level", string(action.DefaultVersionLogLevel), "Set log level. "+allowedLogLevelsHelp(), flag.AddOptions{
			GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
			Group:                miscFlagGroup,
		}); err != nil {
			return fmt.Errorf("add flag: %w", err)
		}

		if err := flag.Add(cmd, &cfg.OutputFormat, "output-format", string(action.DefaultVersionOutputFormat), "Result output format. Allowed: json, yaml", flag.AddOptions{
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
