package extract

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/acmload/clustertime/internal/milestone"
)

type conditionRule struct {
	Type      string
	Reason    string
	TimeField string
	Milestone milestone.Name
}

// Later matching conditions overwrite earlier ones.
func scanConditions(source milestone.Source, obj *unstructured.Unstructured, rules []conditionRule, result Instants) error {
	const path = "status.conditions"

	conditions, found, err := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if err != nil {
		return invalidField(source, path, err)
	} else if !found {
		return missingField(source, path)
	}

	for i, c := range conditions {
		condition, ok := c.(map[string]interface{})
		if !ok {
			return invalidField(source, fmt.Sprintf("%s[%d]", path, i), fmt.Errorf("%v is of the type %T, expected map[string]interface{}", c, c))
		}

		condType, _, _ := unstructured.NestedString(condition, "type")
		condReason, _, _ := unstructured.NestedString(condition, "reason")

		for _, rule := range rules {
			if condType != rule.Type || condReason != rule.Reason {
				continue
			}

			fieldPath := fmt.Sprintf("%s[%d].%s", path, i, rule.TimeField)

			instant, err := optionalInstant(source, fieldPath, condition, rule.TimeField)
			if err != nil {
				return err
			}

			if instant != nil {
				result[rule.Milestone] = *instant
			}
		}
	}

	return nil
}
