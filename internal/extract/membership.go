package extract

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/acmload/clustertime/internal/milestone"
)

var membershipRules = []conditionRule{
	{
		Type:      "ManagedClusterJoined",
		Reason:    "ManagedClusterJoined",
		TimeField: "lastTransitionTime",
		Milestone: milestone.MCJoined,
	},
	{
		Type:      "ManagedClusterImportSucceeded",
		Reason:    "ManagedClusterImported",
		TimeField: "lastTransitionTime",
		Milestone: milestone.MCImported,
	},
}

// Membership reads milestones from a ManagedCluster.
func Membership(mc *unstructured.Unstructured) (Instants, error) {
	source := milestone.SourceMembership

	if mc == nil || mc.Object == nil {
		return nil, invalidField(source, ".", errEmptyRecord)
	}

	result := Instants{}
	if err := scanConditions(source, mc, membershipRules, result); err != nil {
		return nil, err
	}

	return result, nil
}
