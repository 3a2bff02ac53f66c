// Package trapdata defines the trap-record and tag-rate data model and the
// CSV input/output boundary for tag-rate coverage checks. All header-name
// normalization happens here so the reconciliation core only ever sees
// canonical field names.
package trapdata

// unassignedSentinel is the literal value upstream producers write into the
// releaseGroup column when a fish has a basis for assignment but no specific
// hatchery release group (wild stock call, or a failed parentage call).
const unassignedSentinel = "Unassigned"

// RearType identifies how a fish was reared. Source values are preserved
// verbatim so unrecognized codes classify as their own category rather
// than failing the run.
type RearType string

// Known rear type codes from the trap table.
const (
	RearWild           RearType = "W"
	RearHatchery       RearType = "H"
	RearHatcheryNoClip RearType = "HNC"
)

// Known reports whether the rear type is one of the recognized codes.
func (r RearType) Known() bool {
	switch r {
	case RearWild, RearHatchery, RearHatcheryNoClip:
		return true
	}
	return false
}

// IsHatchery reports whether the fish is hatchery-origin (clipped or not).
func (r RearType) IsHatchery() bool {
	return r == RearHatchery || r == RearHatcheryNoClip
}

// Label returns a human-readable name for the rear type. Unrecognized
// codes are returned as-is.
func (r RearType) Label() string {
	switch r {
	case RearWild:
		return "Wild"
	case RearHatchery:
		return "Hatchery"
	case RearHatcheryNoClip:
		return "Hatchery (no clip)"
	case "":
		return "(blank)"
	}
	return string(r)
}

// ReleaseGroupState enumerates the three states of a release-group assignment.
type ReleaseGroupState int

const (
	// NoCall means there was no basis for any assignment.
	NoCall ReleaseGroupState = iota
	// Excluded means the record carries the "Unassigned" marker: a wild
	// fish with a stock call, or a hatchery fish whose parentage call failed.
	Excluded
	// Assigned means a specific hatchery release group was called.
	Assigned
)

// String returns the state name for diagnostics.
func (s ReleaseGroupState) String() string {
	switch s {
	case NoCall:
		return "NoAssignment"
	case Excluded:
		return "Unassigned"
	case Assigned:
		return "Assigned"
	}
	return "Unknown"
}

// ReleaseGroup is a tagged variant over the releaseGroup column. It replaces
// the optional-string-with-sentinel representation so the "Unassigned"
// literal can never be confused with a real release group.
type ReleaseGroup struct {
	state ReleaseGroupState
	group string
}

// NoReleaseGroup returns the absent-value variant.
func NoReleaseGroup() ReleaseGroup {
	return ReleaseGroup{state: NoCall}
}

// ExcludedReleaseGroup returns the "Unassigned" variant.
func ExcludedReleaseGroup() ReleaseGroup {
	return ReleaseGroup{state: Excluded}
}

// AssignedReleaseGroup returns the variant for a specific release group.
// An empty group collapses to the absent variant.
func AssignedReleaseGroup(group string) ReleaseGroup {
	if group == "" {
		return NoReleaseGroup()
	}
	if group == unassignedSentinel {
		return ExcludedReleaseGroup()
	}
	return ReleaseGroup{state: Assigned, group: group}
}

// ParseReleaseGroup converts the source-column string into the variant.
// Total: every input maps to exactly one state.
func ParseReleaseGroup(s string) ReleaseGroup {
	switch s {
	case "":
		return NoReleaseGroup()
	case unassignedSentinel:
		return ExcludedReleaseGroup()
	}
	return ReleaseGroup{state: Assigned, group: s}
}

// State returns the variant's state.
func (g ReleaseGroup) State() ReleaseGroupState {
	return g.state
}

// Group returns the specific release group and whether one is assigned.
func (g ReleaseGroup) Group() (string, bool) {
	return g.group, g.state == Assigned
}

// IsAssigned reports whether a specific release group was called.
func (g ReleaseGroup) IsAssigned() bool {
	return g.state == Assigned
}

// SourceValue formats the variant back to its source-column representation.
// Inverse of ParseReleaseGroup.
func (g ReleaseGroup) SourceValue() string {
	switch g.state {
	case Excluded:
		return unassignedSentinel
	case Assigned:
		return g.group
	}
	return ""
}

// TrapRecord is one captured fish from the trap table. Passthrough fields
// are kept as raw strings; reconciliation only reads Rear and Release.
type TrapRecord struct {
	ID              string
	CollectionDate  string
	StatWeek        string
	MarkAD          string
	Rear            RearType
	PhysTag         string
	PBTHatchery     string
	PBTReleaseGroup string
	Release         ReleaseGroup
	GenStock        string
	MPG             string
	Age             string
	GenSex          string
	ForkLength      string
}

// DeriveReleaseGroup recomputes the release-group assignment from the
// record's other fields. The stored Release field is trusted during
// reconciliation; this derivation exists for anomaly scans and tests.
//
//	Wild + stock call      -> Excluded
//	Wild, no stock call    -> NoCall
//	no parentage call      -> NoCall
//	failed parentage call  -> Excluded
//	otherwise              -> the PBT release group call
func (r TrapRecord) DeriveReleaseGroup() ReleaseGroup {
	if r.Rear == RearWild {
		if r.GenStock != "" {
			return ExcludedReleaseGroup()
		}
		return NoReleaseGroup()
	}
	switch r.PBTHatchery {
	case "":
		return NoReleaseGroup()
	case unassignedSentinel:
		return ExcludedReleaseGroup()
	}
	return ParseReleaseGroup(r.PBTReleaseGroup)
}

// TagRateEntry is one row of the tag-rate table: a release group and the
// fraction of that group that was physically tagged.
type TagRateEntry struct {
	Group string
	// Rate is the parsed tag rate. Valid domain is (0, 1].
	Rate float64
	// RateSet reports whether a numeric value parsed; absent and
	// non-numeric values leave it false.
	RateSet bool
	// Raw preserves the source cell for anomaly messages and export
	// fidelity.
	Raw string
}

// Valid reports whether the entry's rate is inside the (0, 1] domain.
func (e TagRateEntry) Valid() bool {
	return e.RateSet && e.Rate > 0 && e.Rate <= 1
}
