package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmi313/tagratecheck/pkg/reconcile"
	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

func rate(group string, value float64) trapdata.TagRateEntry {
	return trapdata.TagRateEntry{Group: group, Rate: value, RateSet: true}
}

func TestFindMissingTagRatesEmptyReference(t *testing.T) {
	// Wild fish with a stock call, a hatchery fish with no basis for a
	// call, and a hatchery fish assigned to G1; no tag rates at all.
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearWild, "Unassigned"),
		record("2", trapdata.RearHatchery, ""),
		record("3", trapdata.RearHatchery, "G1"),
	}

	cov := reconcile.FindMissingTagRates(records, nil)

	require.Len(t, cov.Missing, 1)
	assert.Equal(t, []string{"G1"}, cov.Groups())
	assert.Equal(t, 1, cov.Missing[0].Records)
	assert.Equal(t, 1, cov.TotalAffected)

	c := reconcile.Classify(records, reconcile.ClassifyOptions{})
	assert.Equal(t, 1, c.Counts[reconcile.BucketNoAssignment])
	assert.Equal(t, 1, c.Counts[reconcile.BucketUnassigned])
	assert.Equal(t, 1, c.Counts[reconcile.BucketAssigned])
}

func TestFindMissingTagRatesExclusion(t *testing.T) {
	// Neither the absent value nor the "Unassigned" marker may ever reach
	// the candidate set, no matter how many records carry them.
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearWild, "Unassigned"),
		record("2", trapdata.RearHatchery, "Unassigned"),
		record("3", trapdata.RearHatchery, ""),
		record("4", trapdata.RearWild, ""),
	}

	cov := reconcile.FindMissingTagRates(records, nil)
	assert.True(t, cov.Empty())
	assert.Empty(t, cov.Groups())
	assert.Zero(t, cov.TotalAffected)
}

func TestFindMissingTagRatesImpactOrdering(t *testing.T) {
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearHatchery, "B"),
		record("2", trapdata.RearHatchery, "B"),
		record("3", trapdata.RearHatchery, "A"),
		record("4", trapdata.RearHatcheryNoClip, "C"),
		record("5", trapdata.RearHatchery, "C"),
		record("6", trapdata.RearHatchery, "Covered"),
	}
	rates := []trapdata.TagRateEntry{rate("Covered", 0.9)}

	cov := reconcile.FindMissingTagRates(records, rates)

	// Impact table: count descending, group ascending on ties.
	require.Len(t, cov.Missing, 3)
	assert.Equal(t, "B", cov.Missing[0].Group)
	assert.Equal(t, "C", cov.Missing[1].Group)
	assert.Equal(t, "A", cov.Missing[2].Group)

	// Groups listing is sorted ascending regardless of impact.
	assert.Equal(t, []string{"A", "B", "C"}, cov.Groups())

	// Sum of per-group counts equals the records referencing any
	// missing group.
	sum := 0
	for _, m := range cov.Missing {
		sum += m.Records
	}
	assert.Equal(t, cov.TotalAffected, sum)
	assert.Equal(t, 5, cov.TotalAffected)

	assert.Equal(t, 1, cov.Missing[1].ByRear[trapdata.RearHatcheryNoClip])
	assert.Equal(t, 1, cov.Missing[1].ByRear[trapdata.RearHatchery])
}

func TestFindMissingTagRatesDeterminism(t *testing.T) {
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearHatchery, "Z"),
		record("2", trapdata.RearHatchery, "M"),
		record("3", trapdata.RearHatchery, "A"),
	}

	first := reconcile.FindMissingTagRates(records, nil)
	for i := 0; i < 10; i++ {
		again := reconcile.FindMissingTagRates(records, nil)
		assert.Equal(t, first.Missing, again.Missing)
		assert.Equal(t, first.Groups(), again.Groups())
	}
}

func TestCheckCoverageJoinInvariant(t *testing.T) {
	records := []trapdata.TrapRecord{
		record("1", trapdata.RearHatchery, "G1"),
		record("2", trapdata.RearHatchery, "G2"),
		record("3", trapdata.RearHatcheryNoClip, "G1"),
		record("4", trapdata.RearWild, "G1"),   // not hatchery, excluded from join
		record("5", trapdata.RearHatchery, ""), // no assignment, excluded
		record("6", trapdata.RearHatchery, "Unassigned"),
	}
	rates := []trapdata.TagRateEntry{rate("G1", 0.85)}

	stats := reconcile.CheckCoverage(records, rates)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.WithRate)
	assert.Equal(t, 1, stats.MissingRate)
	assert.Equal(t, stats.Total, stats.WithRate+stats.MissingRate)
}

func TestCheckCoverageEmpty(t *testing.T) {
	stats := reconcile.CheckCoverage(nil, nil)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.WithRate)
	assert.Zero(t, stats.MissingRate)
}
