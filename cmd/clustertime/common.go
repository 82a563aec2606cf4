package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/acmload/clustertime/pkg/common"
	"github.com/acmload/clustertime/pkg/log"
)

func newSubCommand(use, short, long string, group *cobra.Group, args cobra.PositionalArgs, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:                   use,
		Short:                 short,
		Long:                  long,
		GroupID:               group.ID,
		Args:                  args,
		DisableFlagsInUseLine: true,
		RunE:                  run,
	}
}

func allowedLogColorModesHelp() string {
	return "Allowed: " + strings.Join(log.LogColorModes, ", ")
}

func allowedLogLevelsHelp() string {
	return "Allowed: " + strings.Join(lo.Map(log.Levels, func(lvl log.Level, _ int) string {
		return string(lvl)
	}), ", ")
}

func allowedOutputFormatsHelp() string {
	return "Allowed: " + strings.Join(lo.Map(common.OutputFormats, func(format common.OutputFormat, _ int) string {
		return string(format)
	}), ", ")
}

func validateLogOptions(level, colorMode string) error {
	if level != "" && !lo.Contains(log.Levels, log.Level(level)) {
		return fmt.Errorf("unknown log level %q, %s", level, allowedLogLevelsHelp())
	}

	if colorMode != "" && !lo.Contains(log.LogColorModes, colorMode) {
		return fmt.Errorf("unknown color mode %q, %s", colorMode, allowedLogColorModesHelp())
	}

	return nil
}
