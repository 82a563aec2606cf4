package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acmload/clustertime/internal/flag"
	"github.com/acmload/clustertime/pkg/common"
)

// BuildRootCommand builds the command tree and then adds flags, once every
// command knows its full path for env var names.
func BuildRootCommand(ctx context.Context) (*cobra.Command, error) {
	flag.EnvVarsPrefix = strings.ToUpper(common.Brand) + "_"

	afterAllCommandsBuiltFuncs := map[*cobra.Command]func(cmd *cobra.Command) error{}

	rootCmd := NewRootCommand(ctx, afterAllCommandsBuiltFuncs)

	for cmd, fn := range afterAllCommandsBuiltFuncs {
		if err := fn(cmd); err != nil {
			return nil, fmt.Errorf("add flags to %q: %w", cmd.CommandPath(), err)
		}
	}

	return rootCmd, nil
}

func NewRootCommand(ctx context.Context, afterAllCommandsBuiltFuncs map[*cobra.Command]func(cmd *cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           strings.ToLower(common.Brand),
		Long:          fmt.Sprintf("%s reconstructs the provisioning timeline of a managed cluster from the records a hub cluster keeps about it: the AgentClusterInstall, its assisted-installer events, the ManagedCluster and the ZTP ClusterGroupUpgrade.", common.Brand),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetUsageFunc(usageFunc)
	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetHelpTemplate(helpTemplate)

	cmd.PersistentFlags().BoolP("help", "h", false, "Show help")
	cmd.PersistentFlags().Lookup("help").Hidden = true

	cmd.AddGroup(
		analyzeCmdGroup,
		miscCmdGroup,
	)

	cmd.AddCommand(newAnalyzeCommand(ctx, afterAllCommandsBuiltFuncs))
	cmd.AddCommand(newVersionCommand(ctx, afterAllCommandsBuiltFuncs))

	return cmd
}
