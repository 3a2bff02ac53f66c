package reconcile

import (
	"github.com/agentstation/utc"

	"github.com/dsmi313/tagratecheck/pkg/trapdata"
)

// Verdict is the single pass/fail outcome of a run.
type Verdict string

const (
	// VerdictPass means every assigned release group has a tag rate.
	VerdictPass Verdict = "PASS"
	// VerdictFail means at least one assigned release group lacks a tag
	// rate, the actionable failure this tool exists to catch.
	VerdictFail Verdict = "FAIL"
)

// Metadata describes one reconciliation run.
type Metadata struct {
	Dataset        string   `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	StartedAt      utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt     utc.Time `json:"finished_at" yaml:"finished_at"`
	TrapRecords    int      `json:"trap_records" yaml:"trap_records"`
	TagRateEntries int      `json:"tag_rate_entries" yaml:"tag_rate_entries"`
}

// Report is the full outcome of one reconciliation run over a trap table
// and a tag-rate table.
type Report struct {
	Metadata       Metadata        `json:"metadata" yaml:"metadata"`
	Classification *Classification `json:"classification" yaml:"classification"`
	Coverage       *Coverage       `json:"coverage" yaml:"coverage"`
	HatcheryJoin   JoinStats       `json:"hatchery_join" yaml:"hatchery_join"`
	Anomalies      []Anomaly       `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
	Verdict        Verdict         `json:"verdict" yaml:"verdict"`
}

// Options configures a reconciliation run.
type Options struct {
	// Dataset names the run in the report metadata.
	Dataset string
	// ByMark adds a mark-status cross-tab to the classification.
	ByMark bool
	// CheckDerivation re-derives every record's release group and
	// reports disagreements with the stored value.
	CheckDerivation bool
}

// Run executes the full reconciliation pass: classify, find missing tag
// rates, join hatchery assignments, validate the tag-rate table, and
// assemble the verdict. Inputs are never mutated.
func Run(records []trapdata.TrapRecord, rates []trapdata.TagRateEntry, opts Options) *Report {
	report := &Report{
		Metadata: Metadata{
			Dataset:        opts.Dataset,
			StartedAt:      utc.Now(),
			TrapRecords:    len(records),
			TagRateEntries: len(rates),
		},
	}

	report.Classification = Classify(records, ClassifyOptions{ByMark: opts.ByMark})
	report.Coverage = FindMissingTagRates(records, rates)
	report.HatcheryJoin = CheckCoverage(records, rates)
	report.Anomalies = ValidateTagRates(rates)
	if opts.CheckDerivation {
		report.Anomalies = append(report.Anomalies, VerifyDerivation(records)...)
	}

	report.Verdict = VerdictPass
	if !report.Coverage.Empty() {
		report.Verdict = VerdictFail
	}
	report.Metadata.FinishedAt = utc.Now()
	return report
}

// Failed reports whether the run found missing tag rates. Other anomaly
// kinds are reported but do not fail the run.
func (r *Report) Failed() bool {
	return r.Verdict == VerdictFail
}
