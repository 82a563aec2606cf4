package source

import (
	"fmt"
	"sync"

	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/yaml"

	"github.com/acmload/clustertime/internal/extract"
	"github.com/acmload/clustertime/internal/milestone"
)

// Record is one raw document gathered for a cluster.
type Record string

const (
	RecordInstallStatus Record = "aci"
	RecordEventLog      Record = "aci_events"
	RecordMembership    Record = "mc"
	RecordUpgrade       Record = "cgu"
	RecordPolicies      Record = "policies"
)

var Records = []Record{RecordInstallStatus, RecordEventLog, RecordMembership, RecordUpgrade, RecordPolicies}

func (r Record) FileName() string {
	return string(r) + ".json"
}

// Milestone source the record feeds, if any.
func (r Record) MilestoneSource() (milestone.Source, bool) {
	switch r {
	case RecordInstallStatus:
		return milestone.SourceInstallStatus, true
	case RecordEventLog:
		return milestone.SourceEventLog, true
	case RecordMembership:
		return milestone.SourceMembership, true
	case RecordUpgrade:
		return milestone.SourceUpgradeRecord, true
	default:
		return "", false
	}
}

// Optional records do not abort the run when unavailable.
func (r Record) Optional() bool {
	return r == RecordPolicies
}

var (
	InstallStatusGVR = schema.GroupVersionResource{Group: "extensions.hive.openshift.io", Version: "v1beta1", Resource: "agentclusterinstalls"}
	MembershipGVR    = schema.GroupVersionResource{Group: "cluster.open-cluster-management.io", Version: "v1", Resource: "managedclusters"}
	UpgradeGVR       = schema.GroupVersionResource{Group: "ran.openshift.io", Version: "v1alpha1", Resource: "clustergroupupgrades"}
	PolicyGVR        = schema.GroupVersionResource{Group: "policy.open-cluster-management.io", Version: "v1", Resource: "policies"}
)

var ListKinds = map[schema.GroupVersionResource]string{
	InstallStatusGVR: "AgentClusterInstallList",
	MembershipGVR:    "ManagedClusterList",
	UpgradeGVR:       "ClusterGroupUpgradeList",
	PolicyGVR:        "PolicyList",
}

// Bundle is everything gathered about one cluster: raw documents as they were
// received and the decoded records handed to the extractors.
type Bundle struct {
	Cluster  string
	Records  extract.Records
	Policies *unstructured.UnstructuredList

	mu  sync.Mutex
	raw map[Record][]byte
}

func NewBundle(cluster string) *Bundle {
	return &Bundle{
		Cluster: cluster,
		raw:     make(map[Record][]byte),
	}
}

func (b *Bundle) SetRaw(record Record, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.raw[record] = data
}

func (b *Bundle) Raw(record Record) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, found := b.raw[record]

	return data, found
}

// RawRecords lists records with raw data, in canonical order.
func (b *Bundle) RawRecords() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	return lo.Filter(Records, func(r Record, _ int) bool {
		_, found := b.raw[r]
		return found
	})
}

// Accepts both JSON and YAML.
func decodeObject(data []byte) (*unstructured.Unstructured, error) {
	obj := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("unmarshal object: %w", err)
	}

	return &unstructured.Unstructured{Object: obj}, nil
}

func decodeList(data []byte) (*unstructured.UnstructuredList, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("convert list to json: %w", err)
	}

	list := &unstructured.UnstructuredList{}
	if err := list.UnmarshalJSON(jsonData); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}

	return list, nil
}

func decodeEvents(data []byte) ([]extract.Event, error) {
	var events []extract.Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}

	return events, nil
}
