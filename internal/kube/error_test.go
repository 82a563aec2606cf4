package kube_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/acmload/clustertime/internal/kube"
)

func TestIsRetriableErr(t *testing.T) {
	gr := schema.GroupResource{Group: "ran.openshift.io", Resource: "clustergroupupgrades"}

	assert.False(t, kube.IsRetriableErr(nil))
	assert.False(t, kube.IsRetriableErr(apierrors.NewNotFound(gr, "sno00001")))
	assert.False(t, kube.IsRetriableErr(apierrors.NewForbidden(gr, "sno00001", errors.New("denied"))))
	assert.False(t, kube.IsRetriableErr(errors.New("plain")))

	assert.True(t, kube.IsRetriableErr(apierrors.NewServiceUnavailable("overloaded")))
	assert.True(t, kube.IsRetriableErr(apierrors.NewTooManyRequests("slow down", 1)))
	assert.True(t, kube.IsRetriableErr(apierrors.NewInternalError(errors.New("boom"))))
	assert.True(t, kube.IsRetriableErr(apierrors.NewTimeoutError("timeout", 1)))
}

func TestIsNotFoundErr(t *testing.T) {
	gr := schema.GroupResource{Group: "cluster.open-cluster-management.io", Resource: "managedclusters"}

	assert.True(t, kube.IsNotFoundErr(apierrors.NewNotFound(gr, "sno00001")))
	assert.False(t, kube.IsNotFoundErr(nil))
}
