package fake

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"github.com/acmload/clustertime/internal/kube"
)

var _ kube.ClientFactorier = (*ClientFactory)(nil)

type ClientFactory struct {
	dynamicClient *dynamicfake.FakeDynamicClient
}

// NewClientFactory serves objects from memory. listKinds maps every resource
// that will be listed to its list kind.
func NewClientFactory(listKinds map[schema.GroupVersionResource]string, objects ...runtime.Object) *ClientFactory {
	dynamicClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds, objects...)

	return &ClientFactory{
		dynamicClient: dynamicClient,
	}
}

func (f *ClientFactory) Dynamic() dynamic.Interface {
	return f.dynamicClient
}

func (f *ClientFactory) Fake() *dynamicfake.FakeDynamicClient {
	return f.dynamicClient
}
