package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmi313/tagratecheck/pkg/reconcile"
	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

func TestRunVerdictFail(t *testing.T) {
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearHatchery, "G1"),
		record("2", trapdata.RearWild, "Unassigned"),
	}

	report := reconcile.Run(records, nil, reconcile.Options{Dataset: "SY2023Steelhead"})

	assert.Equal(t, reconcile.VerdictFail, report.Verdict)
	assert.True(t, report.Failed())
	assert.Equal(t, "SY2023Steelhead", report.Metadata.Dataset)
	assert.Equal(t, 2, report.Metadata.TrapRecords)
	assert.Equal(t, 0, report.Metadata.TagRateEntries)
	require.NotNil(t, report.Coverage)
	assert.Equal(t, []string{"G1"}, report.Coverage.Groups())
	assert.False(t, report.Metadata.FinishedAt.Time.Before(report.Metadata.StartedAt.Time))
}

func TestRunVerdictPass(t *testing.T) {
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearHatchery, "G1"),
	}
	rates := []trapdata.TagRateEntry{rate("G1", 0.9)}

	report := reconcile.Run(records, rates, reconcile.Options{})

	assert.Equal(t, reconcile.VerdictPass, report.Verdict)
	assert.False(t, report.Failed())
	assert.Equal(t, 1, report.HatcheryJoin.WithRate)
}

func TestRunAnomaliesDoNotFail(t *testing.T) {
	// Invalid rates and duplicates are reported, but only missing tag
	// rates flip the verdict.
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearHatchery, "G1"),
	}
	rates := []trapdata.TagRateEntry{
		{Group: "G1", Rate: 1.5, RateSet: true, Raw: "1.5"},
		{Group: "G1", Rate: 0.8, RateSet: true, Raw: "0.8"},
	}

	report := reconcile.Run(records, rates, reconcile.Options{})

	assert.Equal(t, reconcile.VerdictPass, report.Verdict)
	assert.NotEmpty(t, report.Anomalies)
}

func TestRunCheckDerivation(t *testing.T) {
	records := []trapdata.TrapRecord{
		{ID: "bad", Rear: trapdata.RearWild, GenStock: "UPSALM", Release: trapdata.ParseReleaseGroup("")},
	}

	without := reconcile.Run(records, nil, reconcile.Options{})
	assert.Empty(t, reconcile.FilterAnomalies(without.Anomalies, reconcile.AnomalyDerivationMismatch))

	with := reconcile.Run(records, nil, reconcile.Options{CheckDerivation: true})
	assert.Len(t, reconcile.FilterAnomalies(with.Anomalies, reconcile.AnomalyDerivationMismatch), 1)
}
