package domain

import "strings"

// CoolingType is the primary cooling technology of the proposed facility.
type CoolingType string

const (
	CoolingEvaporative CoolingType = "evaporative"
	CoolingHybrid      CoolingType = "hybrid"
	CoolingClosedLoop  CoolingType = "closed_loop"
	CoolingAirCooled   CoolingType = "air_cooled"
)

// EffluentPolicy decides the effluent concentration for a chemical the
// discharge map does not mention.
type EffluentPolicy string

const (
	// PolicyConservative assumes the discharge is no cleaner than the
	// receiving water: a missing chemical defaults to its baseline
	// concentration. This is the screening default.
	PolicyConservative EffluentPolicy = "conservative"

	// PolicyOptimistic assumes the facility adds nothing it did not
	// declare: a missing chemical contributes zero effluent.
	PolicyOptimistic EffluentPolicy = "optimistic"
)

// cfsPerMGD is cubic feet per second in one million gallons per day.
const cfsPerMGD = 1.547

// MGDToCFS converts a flow in MGD to cfs.
func MGDToCFS(mgd float64) float64 {
	return mgd * cfsPerMGD
}

// defaultEnrichment maps cooling technology to the factor by which
// evaporative concentration raises contaminant levels in the effluent.
var defaultEnrichment = map[CoolingType]float64{
	CoolingEvaporative: 1.5,
	CoolingHybrid:      1.3,
	CoolingClosedLoop:  1.1,
	CoolingAirCooled:   1.0,
}

// unknownCoolingEnrichment is applied when the cooling type is not
// recognized. Matches closed loop, the middle of the range.
const unknownCoolingEnrichment = 1.1

// normalizeCooling maps a raw cooling value to canonical lowercase form.
func normalizeCooling(cooling CoolingType) CoolingType {
	return CoolingType(strings.ToLower(strings.TrimSpace(string(cooling))))
}

// EnrichmentFactor returns the default enrichment factor for a cooling
// technology.
func EnrichmentFactor(cooling CoolingType) float64 {
	if f, ok := defaultEnrichment[normalizeCooling(cooling)]; ok {
		return f
	}
	return unknownCoolingEnrichment
}

// Mix computes downstream concentrations after complete mixing of the
// facility effluent into the receiving water. Flows are in cfs. See the
// package documentation for the mass-balance formula.
//
// A discharge flow of zero or less returns the baseline unchanged: no
// effluent enters the water, so no enrichment applies and no division
// can occur.
func Mix(baseline, discharge ConcentrationMap, receivingCFS, dischargeCFS float64, cooling CoolingType, policy EffluentPolicy) ConcentrationMap {
	return mixWithFactor(baseline, discharge, receivingCFS, dischargeCFS, EnrichmentFactor(cooling), policy)
}

func mixWithFactor(baseline, discharge ConcentrationMap, receivingCFS, dischargeCFS, enrichment float64, policy EffluentPolicy) ConcentrationMap {
	out := make(ConcentrationMap, len(Chemicals))

	if dischargeCFS <= 0 {
		for _, chem := range Chemicals {
			out[chem] = baseline[chem]
		}
		return out
	}

	total := receivingCFS + dischargeCFS
	for _, chem := range Chemicals {
		bg := baseline[chem]

		effluent, declared := discharge[chem]
		if declared {
			effluent *= enrichment
		} else if policy == PolicyOptimistic {
			effluent = 0
		} else {
			effluent = bg
		}

		out[chem] = (bg*receivingCFS + effluent*dischargeCFS) / total
	}
	return out
}
