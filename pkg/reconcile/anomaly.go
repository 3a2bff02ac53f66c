package reconcile

import (
	"fmt"
	"sort"

	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

// AnomalyKind enumerates the non-fatal data anomalies a run can surface.
type AnomalyKind string

const (
	// AnomalyInvalidRate flags a tag rate outside the (0, 1] domain or
	// with no parseable value.
	AnomalyInvalidRate AnomalyKind = "invalid-rate"
	// AnomalyDuplicateGroup flags a release group appearing more than
	// once in the tag-rate table.
	AnomalyDuplicateGroup AnomalyKind = "duplicate-group"
	// AnomalyDerivationMismatch flags a trap record whose stored
	// release-group value disagrees with the derivation rules.
	AnomalyDerivationMismatch AnomalyKind = "derivation-mismatch"
)

// Anomaly is one reportable data problem. Anomalies are surfaced in the
// report and never abort a run.
type Anomaly struct {
	Kind    AnomalyKind `json:"kind" yaml:"kind"`
	Group   string      `json:"group,omitempty" yaml:"group,omitempty"`
	Record  string      `json:"record,omitempty" yaml:"record,omitempty"`
	Count   int         `json:"count,omitempty" yaml:"count,omitempty"`
	Message string      `json:"message" yaml:"message"`
	// Entry carries the offending tag-rate row for invalid-rate anomalies.
	Entry *trapdata.TagRateEntry `json:"entry,omitempty" yaml:"entry,omitempty"`
}

// ValidateTagRates checks every tag-rate entry for an out-of-domain rate
// and every group key for duplicates. Both checks always run; neither
// short-circuits the other.
func ValidateTagRates(rates []trapdata.TagRateEntry) []Anomaly {
	var anomalies []Anomaly

	occurrences := make(map[string]int, len(rates))
	for i := range rates {
		e := rates[i]
		occurrences[e.Group]++
		if e.Valid() {
			continue
		}
		msg := fmt.Sprintf("tag rate %q for group %q outside valid domain (0, 1]", e.Raw, e.Group)
		if e.Raw == "" {
			msg = fmt.Sprintf("tag rate for group %q is absent", e.Group)
		}
		anomalies = append(anomalies, Anomaly{
			Kind:    AnomalyInvalidRate,
			Group:   e.Group,
			Message: msg,
			Entry:   &rates[i],
		})
	}

	duplicates := make([]string, 0)
	for group, n := range occurrences {
		if n > 1 {
			duplicates = append(duplicates, group)
		}
	}
	sort.Strings(duplicates)
	for _, group := range duplicates {
		anomalies = append(anomalies, Anomaly{
			Kind:    AnomalyDuplicateGroup,
			Group:   group,
			Count:   occurrences[group],
			Message: fmt.Sprintf("group %q appears %d times in the tag-rate table", group, occurrences[group]),
		})
	}
	return anomalies
}

// VerifyDerivation re-derives every record's release-group value from its
// other fields and flags disagreements with the stored value.
func VerifyDerivation(records []trapdata.TrapRecord) []Anomaly {
	var anomalies []Anomaly
	for _, r := range records {
		derived := r.DeriveReleaseGroup()
		if derived == r.Release {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			Kind:   AnomalyDerivationMismatch,
			Record: r.ID,
			Message: fmt.Sprintf("record %s stores release group %q but derivation gives %q",
				r.ID, r.Release.SourceValue(), derived.SourceValue()),
		})
	}
	return anomalies
}

// FilterAnomalies returns the anomalies of one kind, preserving order.
func FilterAnomalies(anomalies []Anomaly, kind AnomalyKind) []Anomaly {
	var out []Anomaly
	for _, a := range anomalies {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
