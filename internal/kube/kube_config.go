package kube

import (
	"context"
	"encoding/base64"
	"fmt"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"

	"github.com/acmload/clustertime/pkg/common"
	"github.com/acmload/clustertime/pkg/log"
)

type KubeConfigOptions struct {
	common.KubeConnectionOptions

	KubeContextNamespace string
}

func NewKubeConfig(ctx context.Context, kubeConfigPaths []string, opts KubeConfigOptions) (*KubeConfig, error) {
	overrides := &clientcmd.ConfigOverrides{
		AuthInfo: api.AuthInfo{
			Impersonate:       opts.KubeImpersonateUser,
			ImpersonateGroups: opts.KubeImpersonateGroups,
			Token:             opts.KubeBearerTokenData,
		},
		ClusterDefaults: clientcmd.ClusterDefaults,
		ClusterInfo: api.Cluster{
			CertificateAuthority:  opts.KubeTLSCAPath,
			InsecureSkipTLSVerify: opts.KubeSkipTLSVerify,
			Server:                opts.KubeAPIServerAddress,
			TLSServerName:         opts.KubeTLSServerName,
		},
		Context: api.Context{
			Namespace: opts.KubeContextNamespace,
		},
		CurrentContext: opts.KubeContextCurrent,
		Timeout:        opts.KubeRequestTimeout,
	}

	var clientConfig clientcmd.ClientConfig
	if opts.KubeConfigBase64 != "" {
		config, err := loadKubeConfigBase64(opts.KubeConfigBase64)
		if err != nil {
			return nil, fmt.Errorf("load kubeconfig from base64: %w", err)
		}

		clientConfig = clientcmd.NewDefaultClientConfig(*config, overrides)
	} else {
		loadingRules := &clientcmd.ClientConfigLoadingRules{
			Precedence:          kubeConfigPaths,
			MigrationRules:      clientcmd.NewDefaultClientConfigLoadingRules().MigrationRules,
			DefaultClientConfig: &clientcmd.DefaultClientConfig,
		}

		clientConfig = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)
	}

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("get rest config: %w", err)
	}

	restConfig.QPS = float32(opts.KubeQPSLimit)
	restConfig.Burst = opts.KubeBurstLimit

	kubeConfig := &KubeConfig{
		RestConfig: restConfig,
	}

	log.Default.TraceStruct(ctx, kubeConfig, "Constructed KubeConfig:")

	return kubeConfig, nil
}

type KubeConfig struct {
	RestConfig *rest.Config
}

func loadKubeConfigBase64(kubeConfigBase64 string) (*api.Config, error) {
	configData, err := base64.StdEncoding.DecodeString(kubeConfigBase64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 string: %w", err)
	}

	config, err := clientcmd.Load(configData)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}

	return config, nil
}
