package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmload/clustertime/internal/kube/fake"
	"github.com/acmload/clustertime/internal/source"
)

func TestSaveRawThenDirSource(t *testing.T) {
	server, _ := newEventsServer(t, 0)

	factory := fake.NewClientFactory(source.ListKinds, newACI(server.URL), newMC(), newCGU("ztp-install"), newPolicy("p1"))

	fetched, err := source.NewClusterSource(context.Background(), factory, fastOptions()).Fetch(context.Background(), cluster)
	require.NoError(t, err)

	resultsDir := t.TempDir()
	rawDir := source.RawDir(resultsDir, cluster)
	assert.Equal(t, filepath.Join(resultsDir, "cluster-time-sno00001"), rawDir)

	require.NoError(t, source.SaveRaw(context.Background(), rawDir, fetched))

	for _, record := range source.Records {
		assert.FileExists(t, filepath.Join(rawDir, record.FileName()))
	}

	loaded, err := source.NewDirSource(rawDir).Fetch(context.Background(), cluster)
	require.NoError(t, err)

	assert.Equal(t, fetched.Records.EventLog, loaded.Records.EventLog)
	assert.Equal(t, fetched.Records.InstallStatus.GetCreationTimestamp(), loaded.Records.InstallStatus.GetCreationTimestamp())
	assert.Equal(t, fetched.Records.Membership.GetName(), loaded.Records.Membership.GetName())
	assert.Len(t, loaded.Policies.Items, 1)
}

func TestDirSourceAcceptsYAML(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"aci.json":        "metadata:\n  creationTimestamp: \"2023-01-01T00:00:00Z\"\nstatus:\n  conditions: []\n",
		"aci_events.json": "- event_time: \"2023-01-01T00:06:00.5Z\"\n  message: updated status of the cluster to installing\n",
		"mc.json":         `{"status": {"conditions": []}}`,
		"cgu.json":        `{"metadata": {"creationTimestamp": "2023-01-01T00:30:00Z"}, "status": {"status": {}}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	bundle, err := source.NewDirSource(dir).Fetch(context.Background(), cluster)
	require.NoError(t, err)

	require.Len(t, bundle.Records.EventLog, 1)
	assert.Equal(t, "2023-01-01T00:06:00.5Z", bundle.Records.EventLog[0].EventTime)
	assert.Nil(t, bundle.Policies)
	assert.NotContains(t, bundle.RawRecords(), source.RecordPolicies)
}

func TestDirSourceMissingRequiredRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aci.json"), []byte(`{}`), 0o644))

	_, err := source.NewDirSource(dir).Fetch(context.Background(), cluster)

	var unavailableErr *source.SourceUnavailableError
	require.True(t, errors.As(err, &unavailableErr))
	assert.Equal(t, source.RecordEventLog, unavailableErr.Record)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
