package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/acmload/clustertime/internal/milestone"
)

// Instants maps a milestone to the moment it was observed. A missing key means
// the milestone was not found in the source.
type Instants map[milestone.Name]time.Time

var errEmptyRecord = errors.New("record is empty")

// Both "2006-01-02T15:04:05Z" and "2006-01-02T15:04:05.999999Z" are accepted.
func ParseInstant(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}

	return t.UTC(), nil
}

func requiredInstant(source milestone.Source, obj map[string]interface{}, fields ...string) (time.Time, error) {
	path := strings.Join(fields, ".")

	instant, err := optionalInstant(source, path, obj, fields...)
	if err != nil {
		return time.Time{}, err
	}

	if instant == nil {
		return time.Time{}, missingField(source, path)
	}

	return *instant, nil
}

// Returns nil when the field is absent, null or an empty string.
func optionalInstant(source milestone.Source, path string, obj map[string]interface{}, fields ...string) (*time.Time, error) {
	val, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if err != nil {
		return nil, invalidField(source, path, err)
	}

	if !found || val == nil {
		return nil, nil
	}

	str, ok := val.(string)
	if !ok {
		return nil, invalidField(source, path, fmt.Errorf("%v is of the type %T, expected string", val, val))
	}

	if str == "" {
		return nil, nil
	}

	instant, err := ParseInstant(str)
	if err != nil {
		return nil, invalidField(source, path, err)
	}

	return &instant, nil
}
