package source

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"

	"github.com/acmload/clustertime/internal/extract"
	"github.com/acmload/clustertime/internal/kube"
	"github.com/acmload/clustertime/internal/milestone"
	"github.com/acmload/clustertime/pkg/common"
	"github.com/acmload/clustertime/pkg/log"
)

var _ Source = (*ClusterSource)(nil)

type ClusterSourceOptions struct {
	// Skip TLS verification of the assisted-service events endpoint.
	EventsInsecure bool
	// Total attempts per record, including the first one.
	FetchRetries int
	// Delay before the first retry, doubled on each subsequent one.
	RetryInterval      time.Duration
	NetworkParallelism int
	Timeout            time.Duration
	UpgradeNamespace   string
}

// ClusterSource reads records from the hub cluster API and the assisted-service
// events endpoint.
type ClusterSource struct {
	clientFactory kube.ClientFactorier
	httpClient    *resty.Client
	opts          ClusterSourceOptions
}

func NewClusterSource(ctx context.Context, clientFactory kube.ClientFactorier, opts ClusterSourceOptions) *ClusterSource {
	opts = applyClusterSourceOptionsDefaults(opts)

	return &ClusterSource{
		clientFactory: clientFactory,
		httpClient:    newRestyClient(ctx, opts),
		opts:          opts,
	}
}

func applyClusterSourceOptionsDefaults(opts ClusterSourceOptions) ClusterSourceOptions {
	if opts.FetchRetries <= 0 {
		opts.FetchRetries = common.DefaultFetchRetries
	}

	if opts.RetryInterval <= 0 {
		opts.RetryInterval = time.Second
	}

	if opts.NetworkParallelism <= 0 {
		opts.NetworkParallelism = common.DefaultNetworkParallelism
	}

	if opts.Timeout <= 0 {
		opts.Timeout = common.DefaultFetchTimeout
	}

	if opts.UpgradeNamespace == "" {
		opts.UpgradeNamespace = common.DefaultUpgradeNamespace
	}

	return opts
}

func newRestyClient(ctx context.Context, opts ClusterSourceOptions) *resty.Client {
	client := resty.New().
		SetLogger(log.NewRestyLogger(ctx)).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.FetchRetries-1).
		SetRetryWaitTime(opts.RetryInterval).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(20)).
		SetHeader("Accept", "application/json").
		AddRetryCondition(
			func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			},
		)

	if opts.EventsInsecure {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	switch log.Default.Level(ctx) {
	case log.TraceLevel:
		client.SetDebug(true)
	default:
		client.SetDisableWarn(true)
	}

	return client
}

// Fetch gathers all records concurrently. The event log is fetched once the
// AgentClusterInstall is known, since its URL is published there.
func (s *ClusterSource) Fetch(ctx context.Context, cluster string) (*Bundle, error) {
	bundle := NewBundle(cluster)

	fetchPool := pool.New().WithContext(ctx).WithMaxGoroutines(s.opts.NetworkParallelism).WithCancelOnError().WithFirstError()

	fetchPool.Go(func(ctx context.Context) error {
		aci, err := s.getObject(ctx, RecordInstallStatus, InstallStatusGVR, cluster, cluster, bundle)
		if err != nil {
			return err
		}
		bundle.Records.InstallStatus = aci

		events, err := s.getEvents(ctx, aci, bundle)
		if err != nil {
			return err
		}
		bundle.Records.EventLog = events

		return nil
	})

	fetchPool.Go(func(ctx context.Context) error {
		mc, err := s.getObject(ctx, RecordMembership, MembershipGVR, "", cluster, bundle)
		if err != nil {
			return err
		}
		bundle.Records.Membership = mc

		return nil
	})

	fetchPool.Go(func(ctx context.Context) error {
		cgu, err := s.getObject(ctx, RecordUpgrade, UpgradeGVR, s.opts.UpgradeNamespace, cluster, bundle)
		if err != nil {
			return err
		}
		bundle.Records.UpgradeRecord = cgu

		return nil
	})

	fetchPool.Go(func(ctx context.Context) error {
		policies, err := s.listPolicies(ctx, cluster, bundle)
		if err != nil {
			log.Default.Warn(ctx, "Warning: %s", err)
			return nil
		}
		bundle.Policies = policies

		return nil
	})

	if err := fetchPool.Wait(); err != nil {
		return nil, err
	}

	return bundle, nil
}

func (s *ClusterSource) backoff() wait.Backoff {
	return wait.Backoff{
		Duration: s.opts.RetryInterval,
		Factor:   2,
		Jitter:   0.1,
		Steps:    s.opts.FetchRetries,
	}
}

func (s *ClusterSource) getObject(ctx context.Context, record Record, gvr schema.GroupVersionResource, namespace, name string, bundle *Bundle) (*unstructured.Unstructured, error) {
	var obj *unstructured.Unstructured

	attempt := 0
	if err := retry.OnError(s.backoff(), kube.IsRetriableErr, func() error {
		attempt++
		log.Default.Debug(ctx, "Getting %s %s (attempt %d/%d)", gvr.GroupResource(), humanName(namespace, name), attempt, s.opts.FetchRetries)

		var err error
		if namespace == "" {
			obj, err = s.clientFactory.Dynamic().Resource(gvr).Get(ctx, name, metav1.GetOptions{})
		} else {
			obj, err = s.clientFactory.Dynamic().Resource(gvr).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
		}

		return err
	}); err != nil {
		return nil, &SourceUnavailableError{
			Record: record,
			Err:    fmt.Errorf("get %s %s: %w", gvr.GroupResource(), humanName(namespace, name), err),
		}
	}

	data, err := json.MarshalIndent(obj.Object, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s record: %w", record, err)
	}
	bundle.SetRaw(record, data)

	return obj, nil
}

func (s *ClusterSource) getEvents(ctx context.Context, aci *unstructured.Unstructured, bundle *Bundle) ([]extract.Event, error) {
	eventsURL, found, err := unstructured.NestedString(aci.Object, "status", "debugInfo", "eventsURL")
	if err != nil {
		return nil, &extract.MalformedRecordError{Source: milestone.SourceInstallStatus, Field: "status.debugInfo.eventsURL", Err: err}
	} else if !found || eventsURL == "" {
		return nil, &extract.MalformedRecordError{Source: milestone.SourceInstallStatus, Field: "status.debugInfo.eventsURL"}
	}

	log.Default.Debug(ctx, "Getting ACI events from %s", redactURL(eventsURL))

	resp, err := s.httpClient.R().SetContext(ctx).Get(eventsURL)
	if err != nil {
		return nil, &SourceUnavailableError{Record: RecordEventLog, Err: fmt.Errorf("get events: %w", err)}
	} else if resp.IsError() {
		return nil, &SourceUnavailableError{Record: RecordEventLog, Err: fmt.Errorf("get events: unexpected response status %q", resp.Status())}
	}

	events, err := decodeEvents(resp.Body())
	if err != nil {
		return nil, &extract.MalformedRecordError{Source: milestone.SourceEventLog, Field: ".", Err: err}
	}
	bundle.SetRaw(RecordEventLog, resp.Body())

	log.Default.Debug(ctx, "Got %d ACI events", len(events))

	return events, nil
}

func (s *ClusterSource) listPolicies(ctx context.Context, cluster string, bundle *Bundle) (*unstructured.UnstructuredList, error) {
	var list *unstructured.UnstructuredList

	if err := retry.OnError(s.backoff(), kube.IsRetriableErr, func() error {
		var err error
		list, err = s.clientFactory.Dynamic().Resource(PolicyGVR).Namespace(cluster).List(ctx, metav1.ListOptions{})

		return err
	}); err != nil {
		if kube.IsNoSuchKindErr(err) || kube.IsNotFoundErr(err) {
			return nil, &SourceUnavailableError{Record: RecordPolicies, Err: errors.New("policy API is not served by this cluster")}
		}

		return nil, &SourceUnavailableError{Record: RecordPolicies, Err: fmt.Errorf("list policies in namespace %q: %w", cluster, err)}
	}

	data, err := list.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal policies: %w", err)
	}
	bundle.SetRaw(RecordPolicies, data)

	log.Default.Debug(ctx, "Got %d policies for cluster %q", len(list.Items), cluster)

	return list, nil
}

func humanName(namespace, name string) string {
	if namespace == "" {
		return fmt.Sprintf("%q", name)
	}

	return fmt.Sprintf("%q (namespace %q)", name, namespace)
}

// Events URLs embed a short-lived auth token as a query parameter.
func redactURL(url string) string {
	base, _, found := strings.Cut(url, "?")
	return lo.Ternary(found, base+"?<redacted>", base)
}
