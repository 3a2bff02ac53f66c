// Package reconcile implements the release-group reconciliation core:
// classification of trap records by release-group assignment, tag-rate
// coverage checks, and tag-rate table validation. Every operation is a
// pure function of already-materialized input tables.
package reconcile

import (
	"sort"

	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

// Bucket is one of the three release-group classification buckets.
type Bucket string

const (
	// BucketNoAssignment holds records with no release-group value at all.
	BucketNoAssignment Bucket = "NoAssignment"
	// BucketUnassigned holds records carrying the "Unassigned" marker.
	BucketUnassigned Bucket = "Unassigned"
	// BucketAssigned holds records with a specific release group.
	BucketAssigned Bucket = "Assigned"
)

// Buckets lists all buckets in display order.
var Buckets = []Bucket{BucketNoAssignment, BucketUnassigned, BucketAssigned}

// BucketOf maps a release-group value to its bucket. The mapping is a
// partition: every value lands in exactly one bucket.
func BucketOf(g trapdata.ReleaseGroup) Bucket {
	switch g.State() {
	case trapdata.Excluded:
		return BucketUnassigned
	case trapdata.Assigned:
		return BucketAssigned
	}
	return BucketNoAssignment
}

// Classification is the bucket breakdown for one trap table, cross-tabulated
// by rear type and, when requested, by adipose-clip mark status.
type Classification struct {
	Total  int            `json:"total" yaml:"total"`
	Counts map[Bucket]int `json:"counts" yaml:"counts"`
	// ByRear is keyed by the raw rear-type code; unrecognized codes are
	// their own category.
	ByRear map[trapdata.RearType]map[Bucket]int `json:"by_rear" yaml:"by_rear"`
	// ByMark is keyed by the raw LGDMarkAD value. Nil unless requested.
	ByMark map[string]map[Bucket]int `json:"by_mark,omitempty" yaml:"by_mark,omitempty"`
}

// ClassifyOptions controls optional cross-tabulations.
type ClassifyOptions struct {
	// ByMark adds a mark-status cross-tab to the result.
	ByMark bool
}

// Classify partitions records into the three buckets based solely on the
// precomputed release-group value. There are no error conditions: garbled
// rear types pass through as their own category.
func Classify(records []trapdata.TrapRecord, opts ClassifyOptions) *Classification {
	c := &Classification{
		Total:  len(records),
		Counts: make(map[Bucket]int, len(Buckets)),
		ByRear: make(map[trapdata.RearType]map[Bucket]int),
	}
	if opts.ByMark {
		c.ByMark = make(map[string]map[Bucket]int)
	}
	for _, r := range records {
		b := BucketOf(r.Release)
		c.Counts[b]++
		rear := c.ByRear[r.Rear]
		if rear == nil {
			rear = make(map[Bucket]int, len(Buckets))
			c.ByRear[r.Rear] = rear
		}
		rear[b]++
		if c.ByMark != nil {
			mark := c.ByMark[r.MarkAD]
			if mark == nil {
				mark = make(map[Bucket]int, len(Buckets))
				c.ByMark[r.MarkAD] = mark
			}
			mark[b]++
		}
	}
	return c
}

// RearTypes returns the rear-type codes present, sorted for deterministic
// display.
func (c *Classification) RearTypes() []trapdata.RearType {
	rears := make([]trapdata.RearType, 0, len(c.ByRear))
	for r := range c.ByRear {
		rears = append(rears, r)
	}
	sort.Slice(rears, func(i, j int) bool { return rears[i] < rears[j] })
	return rears
}

// MarkStatuses returns the mark-status values present, sorted.
func (c *Classification) MarkStatuses() []string {
	marks := make([]string, 0, len(c.ByMark))
	for m := range c.ByMark {
		marks = append(marks, m)
	}
	sort.Strings(marks)
	return marks
}

// UnknownRearTypes returns the unrecognized rear-type codes present, sorted.
// Reported as data anomalies, never errors.
func (c *Classification) UnknownRearTypes() []trapdata.RearType {
	var unknown []trapdata.RearType
	for r := range c.ByRear {
		if !r.Known() {
			unknown = append(unknown, r)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return unknown
}
