package main

import (
	"github.com/spf13/cobra"

	"github.com/acmload/clustertime/internal/flag"
)

var analyzeCmdGroup = &cobra.Group{
	ID:    "analyze",
	Title: "Analysis commands:",
}

var miscCmdGroup = &cobra.Group{
	ID:    "misc",
	Title: "Other commands:",
}

var (
	mainFlagGroup           = flag.NewGroup("main", "Options:", 100)
	fetchFlagGroup          = flag.NewGroup("fetch", "Fetch options:", 70)
	kubeConnectionFlagGroup = flag.NewGroup("kube-connection", "Kubernetes connection options:", 50)
	performanceFlagGroup    = flag.NewGroup("performance", "Performance options:", 40)
	miscFlagGroup           = flag.NewGroup("misc", "Miscellaneous options:", 0)
)
