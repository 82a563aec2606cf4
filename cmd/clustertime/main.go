package main

import (
	"context"
	"os"

	"github.com/werf/logboek"

	"github.com/acmload/clustertime/internal/flag"
	"github.com/acmload/clustertime/pkg/log"
)

func main() {
	ctx := logboek.NewContext(context.Background(), logboek.DefaultLogger())

	rootCmd, err := BuildRootCommand(ctx)
	if err != nil {
		log.Default.Error(ctx, "Error: build commands: %s", err)
		os.Exit(1)
	}

	for _, envVar := range flag.FindUndefinedFlagEnvVarsInEnviron() {
		log.Default.WarnPush(ctx, "final", "Warning: environment variable $%s does not match any option", envVar)
	}

	executeErr := rootCmd.ExecuteContext(ctx)

	log.Default.WarnPop(ctx, "final")

	if executeErr != nil {
		log.Default.Error(ctx, "Error: %s", executeErr)
		os.Exit(1)
	}
}
