package kube

import (
	"errors"
	"net"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
)

func IsNoSuchKindErr(err error) bool {
	return err != nil && meta.IsNoMatchError(err)
}

func IsNotFoundErr(err error) bool {
	return err != nil && apierrors.IsNotFound(err)
}

// IsRetriableErr reports whether repeating the request may succeed.
func IsRetriableErr(err error) bool {
	if err == nil {
		return false
	}

	if apierrors.IsServerTimeout(err) ||
		apierrors.IsTimeout(err) ||
		apierrors.IsTooManyRequests(err) ||
		apierrors.IsServiceUnavailable(err) ||
		apierrors.IsInternalError(err) ||
		apierrors.IsUnexpectedServerError(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
