package kube

import (
	"context"
	"fmt"

	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"

	"github.com/acmload/clustertime/pkg/log"
)

var _ ClientFactorier = (*ClientFactory)(nil)

type ClientFactorier interface {
	Dynamic() dynamic.Interface
}

type ClientFactory struct {
	dynamicClient dynamic.Interface
	kubeConfig    *KubeConfig
}

// NewClientFactory constructs the clients and verifies the API server is
// reachable.
func NewClientFactory(ctx context.Context, kubeConfig *KubeConfig) (*ClientFactory, error) {
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(kubeConfig.RestConfig)
	if err != nil {
		return nil, fmt.Errorf("construct discovery kubernetes client: %w", err)
	}

	version, err := discoveryClient.ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("check kubernetes cluster version to check kubernetes connectivity: %w", err)
	}

	log.Default.Debug(ctx, "Connected to Kubernetes %s at %s", version.GitVersion, kubeConfig.RestConfig.Host)

	dynamicClient, err := dynamic.NewForConfig(kubeConfig.RestConfig)
	if err != nil {
		return nil, fmt.Errorf("construct dynamic kubernetes client: %w", err)
	}

	return &ClientFactory{
		dynamicClient: dynamicClient,
		kubeConfig:    kubeConfig,
	}, nil
}

func (f *ClientFactory) Dynamic() dynamic.Interface {
	return f.dynamicClient
}

func (f *ClientFactory) KubeConfig() *KubeConfig {
	return f.kubeConfig
}
