package extract_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/acmload/clustertime/internal/extract"
	"github.com/acmload/clustertime/internal/milestone"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		panic(err)
	}

	return t.UTC()
}

func condition(condType, reason string, fields map[string]interface{}) interface{} {
	c := map[string]interface{}{
		"type":    condType,
		"reason":  reason,
		"status":  "True",
		"message": "",
	}

	for k, v := range fields {
		c[k] = v
	}

	return c
}

func aci(created string, conditions ...interface{}) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "extensions.hive.openshift.io/v1beta1",
		"kind":       "AgentClusterInstall",
		"metadata": map[string]interface{}{
			"name":              "sno00001",
			"namespace":         "sno00001",
			"creationTimestamp": created,
		},
		"status": map[string]interface{}{
			"conditions": conditions,
		},
	}}
}

func mc(conditions ...interface{}) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "cluster.open-cluster-management.io/v1",
		"kind":       "ManagedCluster",
		"metadata": map[string]interface{}{
			"name": "sno00001",
		},
		"status": map[string]interface{}{
			"conditions": conditions,
		},
	}}
}

func cgu(created string, status map[string]interface{}) *unstructured.Unstructured {
	obj := map[string]interface{}{
		"apiVersion": "ran.openshift.io/v1alpha1",
		"kind":       "ClusterGroupUpgrade",
		"metadata": map[string]interface{}{
			"name":              "sno00001",
			"namespace":         "ztp-install",
			"creationTimestamp": created,
		},
	}

	if status != nil {
		obj["status"] = map[string]interface{}{"status": status}
	}

	return &unstructured.Unstructured{Object: obj}
}

func requireMalformed(t *testing.T, err error, source milestone.Source, field string) {
	t.Helper()

	var malformedErr *extract.MalformedRecordError
	require.True(t, errors.As(err, &malformedErr), "expected MalformedRecordError, got %v", err)
	assert.Equal(t, source, malformedErr.Source)
	assert.Equal(t, field, malformedErr.Field)
}

func TestParseInstant(t *testing.T) {
	t.Run("whole seconds", func(t *testing.T) {
		got, err := extract.ParseInstant("2023-01-01T00:05:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 1, 1, 0, 5, 0, 0, time.UTC), got)
	})

	t.Run("fractional seconds", func(t *testing.T) {
		got, err := extract.ParseInstant("2023-01-01T00:05:00.123456Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 1, 1, 0, 5, 0, 123456000, time.UTC), got)
	})

	t.Run("normalized to UTC", func(t *testing.T) {
		got, err := extract.ParseInstant("2023-01-01T02:05:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.UTC, got.Location())
		assert.Equal(t, time.Date(2023, 1, 1, 0, 5, 0, 0, time.UTC), got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := extract.ParseInstant("yesterday")
		assert.Error(t, err)
	})
}

func TestInstallStatus(t *testing.T) {
	t.Run("validated and completed", func(t *testing.T) {
		got, err := extract.InstallStatus(aci("2023-01-01T00:00:00Z",
			condition("SpecSynced", "SyncOK", map[string]interface{}{"lastProbeTime": "2023-01-01T00:01:00Z"}),
			condition("Validated", "ValidationsPassing", map[string]interface{}{
				"lastProbeTime":      "2023-01-01T00:05:00Z",
				"lastTransitionTime": "2023-01-01T00:04:00Z",
			}),
			condition("Completed", "InstallationCompleted", map[string]interface{}{"lastProbeTime": "2023-01-01T00:20:00Z"}),
		))
		require.NoError(t, err)

		assert.Equal(t, extract.Instants{
			milestone.ACICreated:            ts("2023-01-01T00:00:00Z"),
			milestone.ACIValidationsPassing: ts("2023-01-01T00:05:00Z"),
			milestone.ACICompleted:          ts("2023-01-01T00:20:00Z"),
		}, got)
	})

	t.Run("reason must match too", func(t *testing.T) {
		got, err := extract.InstallStatus(aci("2023-01-01T00:00:00Z",
			condition("Validated", "ValidationsFailing", map[string]interface{}{"lastProbeTime": "2023-01-01T00:05:00Z"}),
			condition("Completed", "InstallationInProgress", map[string]interface{}{"lastProbeTime": "2023-01-01T00:20:00Z"}),
		))
		require.NoError(t, err)

		assert.Equal(t, extract.Instants{milestone.ACICreated: ts("2023-01-01T00:00:00Z")}, got)
	})

	t.Run("null probe time is absent", func(t *testing.T) {
		got, err := extract.InstallStatus(aci("2023-01-01T00:00:00Z",
			condition("Validated", "ValidationsPassing", map[string]interface{}{"lastProbeTime": nil}),
		))
		require.NoError(t, err)

		assert.NotContains(t, got, milestone.ACIValidationsPassing)
	})

	t.Run("missing creation timestamp", func(t *testing.T) {
		obj := aci("2023-01-01T00:00:00Z")
		unstructured.RemoveNestedField(obj.Object, "metadata", "creationTimestamp")

		_, err := extract.InstallStatus(obj)
		requireMalformed(t, err, milestone.SourceInstallStatus, "metadata.creationTimestamp")
	})

	t.Run("missing conditions", func(t *testing.T) {
		obj := aci("2023-01-01T00:00:00Z")
		unstructured.RemoveNestedField(obj.Object, "status")

		_, err := extract.InstallStatus(obj)
		requireMalformed(t, err, milestone.SourceInstallStatus, "status.conditions")
	})

	t.Run("unparseable probe time", func(t *testing.T) {
		_, err := extract.InstallStatus(aci("2023-01-01T00:00:00Z",
			condition("Completed", "InstallationCompleted", map[string]interface{}{"lastProbeTime": "soon"}),
		))
		requireMalformed(t, err, milestone.SourceInstallStatus, "status.conditions[0].lastProbeTime")
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := extract.InstallStatus(nil)
		requireMalformed(t, err, milestone.SourceInstallStatus, ".")
	})
}

func TestEventLog(t *testing.T) {
	t.Run("latest match wins", func(t *testing.T) {
		got, err := extract.EventLog([]extract.Event{
			{EventTime: "2023-01-01T00:06:00.000000Z", Message: "Updated status of the cluster to installing"},
			{EventTime: "2023-01-01T00:07:30.500000Z", Message: "Host sno00001: updated status from known to installing"},
			{EventTime: "2023-01-01T00:08:00.250000Z", Message: "Updated status of the cluster to installing"},
		})
		require.NoError(t, err)

		assert.Equal(t, extract.Instants{
			milestone.ACIClusterInstalling: ts("2023-01-01T00:08:00.25Z"),
		}, got)
	})

	t.Run("scan order wins over time order", func(t *testing.T) {
		got, err := extract.EventLog([]extract.Event{
			{EventTime: "2023-01-01T00:18:00Z", Message: "updated status of the cluster to finalizing"},
			{EventTime: "2023-01-01T00:15:00Z", Message: "UPDATED STATUS OF THE CLUSTER TO FINALIZING"},
		})
		require.NoError(t, err)

		assert.Equal(t, ts("2023-01-01T00:15:00Z"), got[milestone.ACIClusterFinalized])
	})

	t.Run("installing is an exact match", func(t *testing.T) {
		got, err := extract.EventLog([]extract.Event{
			{EventTime: "2023-01-01T00:06:00Z", Message: "Updated status of the cluster to installing-pending-user-action"},
		})
		require.NoError(t, err)

		assert.Empty(t, got)
	})

	t.Run("cvo done is a substring match", func(t *testing.T) {
		got, err := extract.EventLog([]extract.Event{
			{EventTime: "2023-01-01T00:17:00.123456Z", Message: "Operator cvo status: available message: Done applying 4.14.0"},
		})
		require.NoError(t, err)

		assert.Equal(t, extract.Instants{
			milestone.ACIClusterInstalled: ts("2023-01-01T00:17:00.123456Z"),
		}, got)
	})

	t.Run("empty log", func(t *testing.T) {
		got, err := extract.EventLog(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing event time", func(t *testing.T) {
		_, err := extract.EventLog([]extract.Event{
			{EventTime: "2023-01-01T00:06:00Z", Message: "ok"},
			{Message: "no time"},
		})
		requireMalformed(t, err, milestone.SourceEventLog, "[1].event_time")
	})
}

func TestMembership(t *testing.T) {
	t.Run("joined and imported", func(t *testing.T) {
		got, err := extract.Membership(mc(
			condition("HubAcceptedManagedCluster", "HubClusterAdminAccepted", map[string]interface{}{"lastTransitionTime": "2023-01-01T00:21:00Z"}),
			condition("ManagedClusterJoined", "ManagedClusterJoined", map[string]interface{}{"lastTransitionTime": "2023-01-01T00:25:00Z"}),
			condition("ManagedClusterImportSucceeded", "ManagedClusterImported", map[string]interface{}{"lastTransitionTime": "2023-01-01T00:22:00Z"}),
		))
		require.NoError(t, err)

		assert.Equal(t, extract.Instants{
			milestone.MCJoined:   ts("2023-01-01T00:25:00Z"),
			milestone.MCImported: ts("2023-01-01T00:22:00Z"),
		}, got)
	})

	t.Run("not yet joined", func(t *testing.T) {
		got, err := extract.Membership(mc(
			condition("ManagedClusterImportSucceeded", "ManagedClusterImporting", map[string]interface{}{"lastTransitionTime": "2023-01-01T00:22:00Z"}),
		))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("condition of wrong shape", func(t *testing.T) {
		_, err := extract.Membership(mc("ManagedClusterJoined"))
		requireMalformed(t, err, milestone.SourceMembership, "status.conditions[0]")
	})
}

func TestUpgradeRecord(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		got, err := extract.UpgradeRecord(cgu("2023-01-01T00:30:00Z", map[string]interface{}{
			"startedAt":   "2023-01-01T00:31:00Z",
			"completedAt": "2023-01-01T00:45:00Z",
		}))
		require.NoError(t, err)

		assert.Equal(t, extract.Instants{
			milestone.CGUCreated:   ts("2023-01-01T00:30:00Z"),
			milestone.CGUStarted:   ts("2023-01-01T00:31:00Z"),
			milestone.CGUCompleted: ts("2023-01-01T00:45:00Z"),
		}, got)
	})

	t.Run("in progress", func(t *testing.T) {
		got, err := extract.UpgradeRecord(cgu("2023-01-01T00:30:00Z", map[string]interface{}{
			"startedAt": "2023-01-01T00:31:00Z",
		}))
		require.NoError(t, err)

		assert.NotContains(t, got, milestone.CGUCompleted)
		assert.Contains(t, got, milestone.CGUStarted)
	})

	t.Run("missing nested status", func(t *testing.T) {
		_, err := extract.UpgradeRecord(cgu("2023-01-01T00:30:00Z", nil))
		requireMalformed(t, err, milestone.SourceUpgradeRecord, "status.status")
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := extract.UpgradeRecord(cgu("2023-01-01T00:30:00Z", map[string]interface{}{
			"startedAt": int64(42),
		}))
		requireMalformed(t, err, milestone.SourceUpgradeRecord, "status.status.startedAt")
	})
}

func TestExtractorsOnlyProduceOwnedMilestones(t *testing.T) {
	outputs, err := extract.All(extract.Records{
		InstallStatus: aci("2023-01-01T00:00:00Z",
			condition("Validated", "ValidationsPassing", map[string]interface{}{"lastProbeTime": "2023-01-01T00:05:00Z"}),
			condition("Completed", "InstallationCompleted", map[string]interface{}{"lastProbeTime": "2023-01-01T00:20:00Z"}),
		),
		EventLog: []extract.Event{
			{EventTime: "2023-01-01T00:06:00Z", Message: "updated status of the cluster to installing"},
			{EventTime: "2023-01-01T00:16:00Z", Message: "updated status of the cluster to finalizing"},
			{EventTime: "2023-01-01T00:18:00Z", Message: "operator cvo status: available message: done applying"},
		},
		Membership: mc(
			condition("ManagedClusterJoined", "ManagedClusterJoined", map[string]interface{}{"lastTransitionTime": "2023-01-01T00:25:00Z"}),
			condition("ManagedClusterImportSucceeded", "ManagedClusterImported", map[string]interface{}{"lastTransitionTime": "2023-01-01T00:22:00Z"}),
		),
		UpgradeRecord: cgu("2023-01-01T00:30:00Z", map[string]interface{}{
			"startedAt":   "2023-01-01T00:31:00Z",
			"completedAt": "2023-01-01T00:45:00Z",
		}),
	})
	require.NoError(t, err)
	require.Len(t, outputs, len(milestone.Sources))

	for source, instants := range outputs {
		for name := range instants {
			owner, found := milestone.Owner(name)
			require.True(t, found, name)
			assert.Equal(t, source, owner, name)
		}

		assert.Len(t, instants, len(milestone.OwnedBy(source)), source)
	}
}

func TestAllStopsOnMalformedSource(t *testing.T) {
	_, err := extract.All(extract.Records{
		InstallStatus: aci("2023-01-01T00:00:00Z"),
		Membership:    mc(),
		UpgradeRecord: cgu("2023-01-01T00:30:00Z", nil),
	})
	requireMalformed(t, err, milestone.SourceUpgradeRecord, "status.status")
}
