package schema

// Static code tables for feature derivation. Keys are the integer codes used
// in the source extracts; codes absent from a table are unmapped on purpose.

// YouthDecade maps PRAEGENDE_JUGENDJAHRE to the decade the person's youth
// fell into.
var YouthDecade = map[int]int{
	1: 40, 2: 40,
	3: 50, 4: 50,
	5: 60, 6: 60, 7: 60,
	8: 70, 9: 70,
	10: 80, 11: 80, 12: 80, 13: 80,
	14: 90, 15: 90,
}

// YouthReunification maps PRAEGENDE_JUGENDJAHRE to 0 for pre-reunification
// cohorts and 1 for post.
var YouthReunification = map[int]int{
	1: 0, 2: 1, 3: 0, 4: 1, 5: 0, 6: 1, 7: 1, 8: 0,
	9: 1, 10: 0, 11: 1, 12: 0, 13: 1, 14: 0, 15: 1,
}

// PoorNeighbourhood maps WOHNLAGE to 1 for poor neighbourhoods. Codes 0 and 6
// are not part of the table.
var PoorNeighbourhood = map[int]int{
	1: 0, 2: 0, 3: 0, 4: 0, 5: 0,
	7: 1, 8: 1,
}

// Age band labels derived from the life-phase code.
const (
	YoungerAge    = "younger_age"
	MiddleAge     = "middle_age"
	AdvancedAge   = "advanced_age"
	RetirementAge = "retirement_age"
)

// Affluence tier labels derived from the life-phase code.
const (
	AffluenceLow     = "low"
	AffluenceAverage = "average"
	AffluenceWealthy = "wealthy"
	AffluenceTop     = "top"
)

// LifePhaseAgeBand maps LP_LEBENSPHASE_FEIN to an age band label.
var LifePhaseAgeBand = map[int]string{
	1: YoungerAge, 2: MiddleAge, 3: YoungerAge, 4: MiddleAge,
	5: AdvancedAge, 6: RetirementAge, 7: AdvancedAge, 8: RetirementAge,
	9: MiddleAge, 10: MiddleAge, 11: AdvancedAge, 12: RetirementAge,
	13: AdvancedAge, 14: YoungerAge, 15: AdvancedAge, 16: AdvancedAge,
	17: MiddleAge, 18: YoungerAge, 19: AdvancedAge, 20: AdvancedAge,
	21: MiddleAge, 22: MiddleAge, 23: MiddleAge, 24: MiddleAge,
	25: MiddleAge, 26: MiddleAge, 27: MiddleAge, 28: MiddleAge,
	29: YoungerAge, 30: YoungerAge, 31: AdvancedAge, 32: AdvancedAge,
	33: YoungerAge, 34: YoungerAge, 35: YoungerAge, 36: AdvancedAge,
	37: AdvancedAge, 38: RetirementAge, 39: MiddleAge, 40: RetirementAge,
}

// LifePhaseAffluence maps LP_LEBENSPHASE_FEIN to an affluence tier label.
var LifePhaseAffluence = map[int]string{
	1: AffluenceLow, 2: AffluenceLow, 3: AffluenceAverage, 4: AffluenceAverage,
	5: AffluenceLow, 6: AffluenceLow, 7: AffluenceAverage, 8: AffluenceAverage,
	9: AffluenceAverage, 10: AffluenceWealthy, 11: AffluenceAverage, 12: AffluenceAverage,
	13: AffluenceTop, 14: AffluenceAverage, 15: AffluenceLow, 16: AffluenceAverage,
	17: AffluenceAverage, 18: AffluenceWealthy, 19: AffluenceWealthy, 20: AffluenceTop,
	21: AffluenceLow, 22: AffluenceAverage, 23: AffluenceWealthy, 24: AffluenceLow,
	25: AffluenceAverage, 26: AffluenceAverage, 27: AffluenceAverage, 28: AffluenceTop,
	29: AffluenceLow, 30: AffluenceAverage, 31: AffluenceLow, 32: AffluenceAverage,
	33: AffluenceAverage, 34: AffluenceAverage, 35: AffluenceTop, 36: AffluenceAverage,
	37: AffluenceAverage, 38: AffluenceAverage, 39: AffluenceTop, 40: AffluenceTop,
}

// AgeBandCode orders the age band labels.
var AgeBandCode = map[string]int{
	YoungerAge:    1,
	MiddleAge:     2,
	AdvancedAge:   3,
	RetirementAge: 4,
}

// AffluenceCode orders the affluence tier labels.
var AffluenceCode = map[string]int{
	AffluenceLow:     1,
	AffluenceAverage: 2,
	AffluenceWealthy: 3,
	AffluenceTop:     4,
}

// RegionFlag maps OST_WEST_KZ ('W' west, 'O' east) to 0/1.
var RegionFlag = map[string]int{
	"W": 0,
	"O": 1,
}

// Suffixes appended to source column names for derived features.
const (
	SuffixDemography    = "_DEMOGRAPHY"
	SuffixReunification = "_REUNIFICATION"
	SuffixNeighbourhood = "_NEIGHBOURHOOD"
	SuffixAffluence     = "_AFFLUENCE"
)
