package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acmload/clustertime/internal/flag"
	"github.com/acmload/clustertime/pkg/common"
)

func addKubeConnectionFlags(cmd *cobra.Command, opts *common.KubeConnectionOptions) error {
	if err := flag.Add(cmd, &opts.KubeAPIServerAddress, "kube-api-server", "", "Kubernetes API server address", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeBurstLimit, "kube-burst-limit", common.DefaultBurstLimit, "Burst limit for requests to Kubernetes", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                performanceFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeTLSCAPath, "kube-ca", "", "Path to Kubernetes API server CA file", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
		Type:                 flag.TypeFile,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeConfigBase64, "kube-config-base64", "", "Pass kubeconfig file content encoded as base64", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeConfigPaths, "kube-config", []string{}, "Kubeconfig path(s). If multiple specified, their contents are merged", flag.AddOptions{
		GetEnvVarRegexesFunc: func(cmd *cobra.Command, flagName string) ([]*flag.RegexExpr, error) {
			regexes := []*flag.RegexExpr{flag.NewRegexExpr("^KUBECONFIG$", "$KUBECONFIG")}

			r, err := flag.GetGlobalAndLocalEnvVarRegexes(cmd, flagName)
			if err != nil {
				return nil, fmt.Errorf("get global and local env var regexes: %w", err)
			}

			return append(regexes, r...), nil
		},
		Group: kubeConnectionFlagGroup,
		Type:  flag.TypeFile,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeContextCurrent, "kube-context", "", "Kubeconfig context", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeQPSLimit, "kube-qps-limit", common.DefaultQPSLimit, "Queries Per Second limit for requests to Kubernetes", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                performanceFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeRequestTimeout, "kube-request-timeout", "", "Timeout for all requests to Kubernetes API, e.g. 30s. No timeout if not set", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeSkipTLSVerify, "no-verify-kube-tls", false, "Don't verify TLS certificates of Kubernetes API", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeTLSServerName, "kube-api-server-tls-name", "", "The server name for Kubernetes API TLS validation, if different from the hostname of Kubernetes API server", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeBearerTokenData, "kube-token", "", "The bearer token for authentication in Kubernetes API", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeImpersonateUser, "kube-as-user", "", "Impersonate this user in Kubernetes API requests", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	if err := flag.Add(cmd, &opts.KubeImpersonateGroups, "kube-as-group", []string{}, "Impersonate these groups in Kubernetes API requests", flag.AddOptions{
		GetEnvVarRegexesFunc: flag.GetGlobalAndLocalEnvVarRegexes,
		Group:                kubeConnectionFlagGroup,
	}); err != nil {
		return fmt.Errorf("add flag: %w", err)
	}

	return nil
}
