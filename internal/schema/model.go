// Package schema describes the known column layout of the demographic
// extracts: which physical column plays which logical role, the sentinel
// exemptions, and the static code tables used for feature derivation.
//
// A Descriptor is validated once when a pipeline is constructed so that a
// missing column surfaces immediately as ErrSchemaMismatch instead of at an
// arbitrary point downstream.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSchemaMismatch is returned when a column the descriptor references is
// absent from the dataset.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Mode controls how absent columns are treated.
type Mode string

const (
	// Strict rejects a dataset that lacks any referenced column.
	Strict Mode = "strict"
	// Lenient skips absent columns in every stage and only logs them.
	Lenient Mode = "lenient"
)

// ParseMode maps a config string to a Mode. Empty input selects Strict.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Strict:
		return Strict, nil
	case Lenient:
		return Lenient, nil
	default:
		return "", fmt.Errorf("schema: unknown mode %q", s)
	}
}

// Descriptor maps logical column roles to physical column names.
type Descriptor struct {
	Mode Mode `json:"mode" yaml:"mode"`

	// MixedType columns carry "X"/"XX" string markers among numeric codes.
	MixedType []string `json:"mixed_type" yaml:"mixed_type"`
	// MixedTokens are the string markers meaning "unknown" in MixedType columns.
	MixedTokens []string `json:"mixed_tokens" yaml:"mixed_tokens"`

	// Exempt columns use 9 as a real value; only 0 and -1 are sentinels.
	Exempt []string `json:"exempt" yaml:"exempt"`

	// Label is the response column. It is optional and never normalized by
	// the default sentinel rule.
	Label string `json:"label" yaml:"label"`

	YouthCohort   string `json:"youth_cohort" yaml:"youth_cohort"`
	Neighbourhood string `json:"neighbourhood" yaml:"neighbourhood"`
	LifePhase     string `json:"life_phase" yaml:"life_phase"`
	RegionFlag    string `json:"region_flag" yaml:"region_flag"`

	IngestTimestamp    string `json:"ingest_timestamp" yaml:"ingest_timestamp"`
	BuildingYear       string `json:"building_year" yaml:"building_year"`
	LastPurchaseBranch string `json:"last_purchase_branch" yaml:"last_purchase_branch"`
}

// Default returns the descriptor for the general-population and customer
// extracts.
func Default() Descriptor {
	return Descriptor{
		Mode:        Strict,
		MixedType:   []string{"CAMEO_DEUG_2015", "CAMEO_INTL_2015"},
		MixedTokens: []string{"X", "XX"},
		Exempt: []string{
			"LP_FAMILIE_FEIN", "LP_FAMILIE_GROB", "LP_LEBENSPHASE_FEIN", "LP_LEBENSPHASE_GROB",
			"LP_STATUS_FEIN", "LP_STATUS_GROB", "PRAEGENDE_JUGENDJAHRE", "WOHNDAUER_2008",
			"ORTSGR_KLS9", "GFK_URLAUBERTYP", "D19_VERSAND_ONLINE_QUOTE_12",
			"D19_VERSAND_ONLINE_DATUM", "D19_VERSAND_OFFLINE_DATUM", "D19_VERSAND_DATUM",
			"D19_TELKO_ONLINE_DATUM", "D19_TELKO_OFFLINE_DATUM", "D19_TELKO_DATUM",
			"D19_KONSUMTYP", "D19_GESAMT_ONLINE_QUOTE_12", "D19_GESAMT_ONLINE_DATUM",
			"D19_GESAMT_OFFLINE_DATUM", "D19_GESAMT_DATUM", "D19_BANKEN_ONLINE_QUOTE_12",
			"D19_BANKEN_ONLINE_DATUM", "D19_BANKEN_OFFLINE_DATUM", "D19_BANKEN_DATUM",
			"CAMEO_DEUG_2015", "ALTER_HH", "ALTERSKATEGORIE_GROB",
		},
		Label:              "RESPONSE",
		YouthCohort:        "PRAEGENDE_JUGENDJAHRE",
		Neighbourhood:      "WOHNLAGE",
		LifePhase:          "LP_LEBENSPHASE_FEIN",
		RegionFlag:         "OST_WEST_KZ",
		IngestTimestamp:    "EINGEFUEGT_AM",
		BuildingYear:       "MIN_GEBAEUDEJAHR",
		LastPurchaseBranch: "D19_LETZTER_KAUF_BRANCHE",
	}
}

// Redundant lists the source columns removed after feature derivation, in
// removal order.
func (d Descriptor) Redundant() []string {
	return []string{d.IngestTimestamp, d.YouthCohort, d.LifePhase, d.BuildingYear, d.LastPurchaseBranch}
}

// Required returns every column name the descriptor references, except the
// optional label, deduplicated and sorted.
func (d Descriptor) Required() []string {
	set := map[string]struct{}{}
	add := func(names ...string) {
		for _, n := range names {
			if n != "" {
				set[n] = struct{}{}
			}
		}
	}
	add(d.MixedType...)
	add(d.Exempt...)
	add(d.YouthCohort, d.Neighbourhood, d.LifePhase, d.RegionFlag)
	add(d.Redundant()...)

	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Missing returns the required names not present in have.
func (d Descriptor) Missing(have []string) []string {
	present := make(map[string]struct{}, len(have))
	for _, n := range have {
		present[n] = struct{}{}
	}
	var out []string
	for _, n := range d.Required() {
		if _, ok := present[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks have against the descriptor. In Strict mode every required
// column must be present; in Lenient mode Validate only checks the
// descriptor itself and the caller is expected to log Missing(have).
func (d Descriptor) Validate(have []string) error {
	if len(d.MixedTokens) == 0 && len(d.MixedType) > 0 {
		return fmt.Errorf("schema: mixed-type columns configured without tokens")
	}
	if d.Mode == Lenient {
		return nil
	}
	if missing := d.Missing(have); len(missing) > 0 {
		return MismatchError(missing...)
	}
	return nil
}

// MismatchError wraps ErrSchemaMismatch with the offending column names.
func MismatchError(names ...string) error {
	return fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(names, ", "))
}
