package extract

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/acmload/clustertime/internal/milestone"
)

// Records holds one decoded record per source kind.
type Records struct {
	InstallStatus *unstructured.Unstructured
	EventLog      []Event
	Membership    *unstructured.Unstructured
	UpgradeRecord *unstructured.Unstructured
}

// All runs every extractor. The first failing source aborts extraction.
func All(records Records) (map[milestone.Source]Instants, error) {
	result := make(map[milestone.Source]Instants, len(milestone.Sources))

	var err error
	if result[milestone.SourceInstallStatus], err = InstallStatus(records.InstallStatus); err != nil {
		return nil, err
	}

	if result[milestone.SourceEventLog], err = EventLog(records.EventLog); err != nil {
		return nil, err
	}

	if result[milestone.SourceMembership], err = Membership(records.Membership); err != nil {
		return nil, err
	}

	if result[milestone.SourceUpgradeRecord], err = UpgradeRecord(records.UpgradeRecord); err != nil {
		return nil, err
	}

	return result, nil
}
