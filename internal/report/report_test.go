package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werf/logboek"

	"github.com/acmload/clustertime/internal/extract"
	"github.com/acmload/clustertime/internal/milestone"
	"github.com/acmload/clustertime/internal/report"
	"github.com/acmload/clustertime/internal/timeline"
	"github.com/acmload/clustertime/pkg/common"
)

var t0 = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func newCtx(t *testing.T) context.Context {
	t.Helper()

	enabled := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = enabled })

	return logboek.NewContext(context.Background(), logboek.DefaultLogger())
}

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func scenario(t *testing.T) (*timeline.Timeline, *timeline.PhaseTotals) {
	t.Helper()

	tl, err := timeline.Build(map[milestone.Source]extract.Instants{
		milestone.SourceInstallStatus: {
			milestone.ACICreated:            at(0),
			milestone.ACIValidationsPassing: at(5),
			milestone.ACICompleted:          at(20),
		},
		milestone.SourceMembership: {
			milestone.MCImported: at(22),
			milestone.MCJoined:   at(25),
		},
		milestone.SourceUpgradeRecord: {
			milestone.CGUCreated:   at(30),
			milestone.CGUStarted:   at(31),
			milestone.CGUCompleted: at(45),
		},
	})
	require.NoError(t, err)

	totals, err := timeline.Aggregate(tl, milestone.Phases())
	require.NoError(t, err)

	return tl, totals
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{1200 * time.Second, "0:20:00"},
		{2700 * time.Second, "0:45:00"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "26:03:04"},
		{-90 * time.Second, "-0:01:30"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, report.FormatClock(c.in), c.in.String())
	}
}

func TestNewResult(t *testing.T) {
	tl, totals := scenario(t)

	result := report.NewResult("sno00001", tl, totals)

	assert.Equal(t, report.ResultApiVersionV1, result.ApiVersion)
	require.Len(t, result.Steps, len(milestone.Order()))
	assert.Equal(t, "aci_created", result.Steps[0].Name)
	assert.Nil(t, result.Steps[2].Timestamp)
	assert.EqualValues(t, 1800, result.Steps[len(result.Steps)-1].TotalSeconds)

	require.Len(t, result.Phases, 4)
	assert.Equal(t, "ACI Total", result.Phases[0].Label)
	assert.EqualValues(t, 1200, result.Phases[0].DurationSeconds)
	assert.Equal(t, "0:45:00", result.Phases[3].Human)
}

func TestNewResultWithoutPhases(t *testing.T) {
	tl, _ := scenario(t)

	result := report.NewResult("sno00001", tl, nil)
	assert.Empty(t, result.Phases)
}

func TestWriteStats(t *testing.T) {
	tl, totals := scenario(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteStats(newCtx(t), &buf, report.NewResult("sno00001", tl, totals)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2+len(milestone.Order())+1+1+4)

	assert.Equal(t, "Install times on sno00001", lines[0])
	assert.Equal(t, "Step                      Timestamp            Duration Total", lines[1])
	assert.Equal(t, "aci_created               2023-01-01T00:00:00Z        0     0", lines[2])
	assert.Equal(t, "aci_cluster_installing    -                           0   300", lines[4])
	assert.Equal(t, "cgu_completed             2023-01-01T00:45:00Z      840  1800", lines[12])
	assert.Equal(t, "Major phases of install for sno00001", lines[14])
	assert.Equal(t, "ACI Total:             1200 :: 0:20:00", lines[15])
	assert.Equal(t, "MC Gap Total:           600 :: 0:10:00", lines[16])
	assert.Equal(t, "CGU Total:              900 :: 0:15:00", lines[17])
	assert.Equal(t, "Cluster Total:         2700 :: 0:45:00", lines[18])
}

func TestPrintJSON(t *testing.T) {
	tl, totals := scenario(t)

	var buf bytes.Buffer
	require.NoError(t, report.Print(newCtx(t), &buf, report.NewResult("sno00001", tl, totals), common.OutputFormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "v1", decoded["apiVersion"])
	assert.Len(t, decoded["steps"], len(milestone.Order()))
	assert.Len(t, decoded["phases"], 4)
}

func TestPrintYAML(t *testing.T) {
	tl, totals := scenario(t)

	var buf bytes.Buffer
	require.NoError(t, report.Print(newCtx(t), &buf, report.NewResult("sno00001", tl, totals), common.OutputFormatYAML))

	assert.Contains(t, buf.String(), "apiVersion: v1")
	assert.Contains(t, buf.String(), "cluster: sno00001")
	assert.Contains(t, buf.String(), "name: aci_total")
}

func TestPrintTable(t *testing.T) {
	tl, totals := scenario(t)

	var buf bytes.Buffer
	require.NoError(t, report.Print(newCtx(t), &buf, report.NewResult("sno00001", tl, totals), common.OutputFormatTable))

	assert.Contains(t, buf.String(), "aci_validations_passing")
	assert.Contains(t, buf.String(), "Cluster Total")
}

func TestPrintUnknownFormat(t *testing.T) {
	tl, _ := scenario(t)

	assert.Error(t, report.Print(newCtx(t), &bytes.Buffer{}, report.NewResult("sno00001", tl, nil), "xml"))
}
