package extract

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/acmload/clustertime/internal/milestone"
)

// UpgradeRecord reads milestones from a ClusterGroupUpgrade. A CGU which has
// not started or completed yet has no startedAt or completedAt, and those
// milestones are left out.
func UpgradeRecord(cgu *unstructured.Unstructured) (Instants, error) {
	source := milestone.SourceUpgradeRecord

	if cgu == nil || cgu.Object == nil {
		return nil, invalidField(source, ".", errEmptyRecord)
	}

	result := Instants{}

	created, err := requiredInstant(source, cgu.Object, "metadata", "creationTimestamp")
	if err != nil {
		return nil, err
	}
	result[milestone.CGUCreated] = created

	status, found, err := unstructured.NestedMap(cgu.Object, "status", "status")
	if err != nil {
		return nil, invalidField(source, "status.status", err)
	} else if !found {
		return nil, missingField(source, "status.status")
	}

	if started, err := optionalInstant(source, "status.status.startedAt", status, "startedAt"); err != nil {
		return nil, err
	} else if started != nil {
		result[milestone.CGUStarted] = *started
	}

	if completed, err := optionalInstant(source, "status.status.completedAt", status, "completedAt"); err != nil {
		return nil, err
	} else if completed != nil {
		result[milestone.CGUCompleted] = *completed
	}

	return result, nil
}
