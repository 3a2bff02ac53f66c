package reconcile

import (
	"sort"

	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

// MissingGroup is one hatchery release group observed in trap records but
// absent from the tag-rate table, with its record impact.
type MissingGroup struct {
	Group   string `json:"group" yaml:"group"`
	Records int    `json:"records" yaml:"records"`
	// ByRear breaks the affected records down by rear-type code.
	ByRear map[trapdata.RearType]int `json:"by_rear" yaml:"by_rear"`
}

// Coverage is the result of the missing-tag-rate check.
type Coverage struct {
	// Missing is the impact table, sorted by record count descending,
	// ties broken by group ascending.
	Missing []MissingGroup `json:"missing" yaml:"missing"`
	// TotalAffected is the number of trap records referencing any
	// missing group. Equals the sum of per-group counts: missing groups
	// are mutually exclusive row classifications.
	TotalAffected int `json:"total_affected" yaml:"total_affected"`
}

// Empty reports whether every assigned release group has a tag rate.
func (c *Coverage) Empty() bool {
	return len(c.Missing) == 0
}

// Groups returns the missing group identifiers sorted ascending.
func (c *Coverage) Groups() []string {
	groups := make([]string, len(c.Missing))
	for i, m := range c.Missing {
		groups[i] = m.Group
	}
	sort.Strings(groups)
	return groups
}

// FindMissingTagRates computes the set of release groups that appear as
// specific assignments in records but have no entry in rates.
//
// The candidate set is restricted to the Assigned bucket. Absent values and
// the "Unassigned" marker are excluded unconditionally; counting them as
// release groups is the exact defect this check exists to catch.
func FindMissingTagRates(records []trapdata.TrapRecord, rates []trapdata.TagRateEntry) *Coverage {
	reference := make(map[string]struct{}, len(rates))
	for _, e := range rates {
		reference[e.Group] = struct{}{}
	}

	impact := make(map[string]*MissingGroup)
	total := 0
	for _, r := range records {
		group, ok := r.Release.Group()
		if !ok {
			continue
		}
		if _, covered := reference[group]; covered {
			continue
		}
		m := impact[group]
		if m == nil {
			m = &MissingGroup{Group: group, ByRear: make(map[trapdata.RearType]int)}
			impact[group] = m
		}
		m.Records++
		m.ByRear[r.Rear]++
		total++
	}

	cov := &Coverage{TotalAffected: total}
	for _, m := range impact {
		cov.Missing = append(cov.Missing, *m)
	}
	sort.Slice(cov.Missing, func(i, j int) bool {
		if cov.Missing[i].Records != cov.Missing[j].Records {
			return cov.Missing[i].Records > cov.Missing[j].Records
		}
		return cov.Missing[i].Group < cov.Missing[j].Group
	})
	return cov
}

// JoinStats summarizes the left join of hatchery-assigned trap records
// against the tag-rate table. MissingRate + WithRate == Total always.
type JoinStats struct {
	Total       int `json:"total" yaml:"total"`
	WithRate    int `json:"with_tagrate" yaml:"with_tagrate"`
	MissingRate int `json:"missing_tagrate" yaml:"missing_tagrate"`
}

// CheckCoverage left-joins the hatchery and hatchery-no-clip records with
// specific assignments against rates on release group.
func CheckCoverage(records []trapdata.TrapRecord, rates []trapdata.TagRateEntry) JoinStats {
	reference := make(map[string]struct{}, len(rates))
	for _, e := range rates {
		reference[e.Group] = struct{}{}
	}

	var stats JoinStats
	for _, r := range records {
		if !r.Rear.IsHatchery() {
			continue
		}
		group, ok := r.Release.Group()
		if !ok {
			continue
		}
		stats.Total++
		if _, covered := reference[group]; covered {
			stats.WithRate++
		} else {
			stats.MissingRate++
		}
	}
	return stats
}
