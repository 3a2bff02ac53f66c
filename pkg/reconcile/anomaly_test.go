package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmi313/tagratecheck/pkg/reconcile"
	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

func TestValidateTagRatesDuplicateAndInvalid(t *testing.T) {
	// A duplicated group where one copy also has an out-of-domain rate:
	// both checks must fire independently.
	rates := []trapdata.TagRateEntry{
		{Group: "G1", Rate: 1.5, RateSet: true, Raw: "1.5"},
		{Group: "G1", Rate: 0.8, RateSet: true, Raw: "0.8"},
	}

	anomalies := reconcile.ValidateTagRates(rates)

	invalid := reconcile.FilterAnomalies(anomalies, reconcile.AnomalyInvalidRate)
	require.Len(t, invalid, 1)
	assert.Equal(t, "G1", invalid[0].Group)
	require.NotNil(t, invalid[0].Entry)
	assert.Equal(t, 1.5, invalid[0].Entry.Rate)

	dups := reconcile.FilterAnomalies(anomalies, reconcile.AnomalyDuplicateGroup)
	require.Len(t, dups, 1)
	assert.Equal(t, "G1", dups[0].Group)
	assert.Equal(t, 2, dups[0].Count)
}

func TestValidateTagRatesDomain(t *testing.T) {
	tests := []struct {
		name  string
		entry trapdata.TagRateEntry
		valid bool
	}{
		{"absent rate", trapdata.TagRateEntry{Group: "G"}, false},
		{"unparseable rate", trapdata.TagRateEntry{Group: "G", Raw: "n/a"}, false},
		{"zero", trapdata.TagRateEntry{Group: "G", Rate: 0, RateSet: true, Raw: "0"}, false},
		{"negative", trapdata.TagRateEntry{Group: "G", Rate: -0.2, RateSet: true, Raw: "-0.2"}, false},
		{"above one", trapdata.TagRateEntry{Group: "G", Rate: 1.01, RateSet: true, Raw: "1.01"}, false},
		{"exactly one", trapdata.TagRateEntry{Group: "G", Rate: 1, RateSet: true, Raw: "1"}, true},
		{"small fraction", trapdata.TagRateEntry{Group: "G", Rate: 0.003, RateSet: true, Raw: "0.003"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anomalies := reconcile.ValidateTagRates([]trapdata.TagRateEntry{tt.entry})
			invalid := reconcile.FilterAnomalies(anomalies, reconcile.AnomalyInvalidRate)
			if tt.valid {
				assert.Empty(t, invalid)
			} else {
				assert.Len(t, invalid, 1)
			}
		})
	}
}

func TestValidateTagRatesDuplicateOrdering(t *testing.T) {
	rates := []trapdata.TagRateEntry{
		rate("Z", 0.5), rate("Z", 0.5),
		rate("A", 0.5), rate("A", 0.5),
	}

	dups := reconcile.FilterAnomalies(reconcile.ValidateTagRates(rates), reconcile.AnomalyDuplicateGroup)
	require.Len(t, dups, 2)
	assert.Equal(t, "A", dups[0].Group)
	assert.Equal(t, "Z", dups[1].Group)
}

func TestVerifyDerivation(t *testing.T) {
	consistent := trapdata.TrapRecord{
		ID:              "ok",
		Rear:            trapdata.RearHatchery,
		PBTHatchery:     "Rapid River",
		PBTReleaseGroup: "RAPH-15-S",
		Release:         trapdata.ParseReleaseGroup("RAPH-15-S"),
	}
	// Wild fish with a stock call must carry the "Unassigned" marker; a
	// specific group there is a derivation mismatch.
	inconsistent := trapdata.TrapRecord{
		ID:       "bad",
		Rear:     trapdata.RearWild,
		GenStock: "UPSALM",
		Release:  trapdata.ParseReleaseGroup("RAPH-15-S"),
	}

	anomalies := reconcile.VerifyDerivation([]trapdata.TrapRecord{consistent, inconsistent})
	require.Len(t, anomalies, 1)
	assert.Equal(t, reconcile.AnomalyDerivationMismatch, anomalies[0].Kind)
	assert.Equal(t, "bad", anomalies[0].Record)
}
