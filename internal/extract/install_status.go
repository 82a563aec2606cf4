package extract

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/acmload/clustertime/internal/milestone"
)

var installStatusRules = []conditionRule{
	{
		Type:      "Validated",
		Reason:    "ValidationsPassing",
		TimeField: "lastProbeTime",
		Milestone: milestone.ACIValidationsPassing,
	},
	{
		Type:      "Completed",
		Reason:    "InstallationCompleted",
		TimeField: "lastProbeTime",
		Milestone: milestone.ACICompleted,
	},
}

// InstallStatus reads milestones from an AgentClusterInstall.
func InstallStatus(aci *unstructured.Unstructured) (Instants, error) {
	source := milestone.SourceInstallStatus

	if aci == nil || aci.Object == nil {
		return nil, invalidField(source, ".", errEmptyRecord)
	}

	result := Instants{}

	created, err := requiredInstant(source, aci.Object, "metadata", "creationTimestamp")
	if err != nil {
		return nil, err
	}
	result[milestone.ACICreated] = created

	if err := scanConditions(source, aci, installStatusRules, result); err != nil {
		return nil, err
	}

	return result, nil
}
