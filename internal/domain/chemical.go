package domain

import "strings"

// Chemical identifies a PFAS compound by its canonical uppercase UCMR5 name.
type Chemical string

// The fixed chemical universe of the risk model. PFOA and PFOS carry
// individual MCLs; the remaining four are the EPA hazard-index set.
const (
	PFOA   Chemical = "PFOA"
	PFOS   Chemical = "PFOS"
	PFHxS  Chemical = "PFHXS"
	PFNA   Chemical = "PFNA"
	HFPODA Chemical = "HFPO-DA" // GenX
	PFBS   Chemical = "PFBS"
)

// Chemicals lists every chemical the engine models, in stable order.
// Input maps may carry other keys; they are ignored. Missing keys
// default to 0.0.
var Chemicals = []Chemical{PFOA, PFOS, PFHxS, PFNA, HFPODA, PFBS}

// ConcentrationMap maps a chemical to a non-negative concentration in ppt.
type ConcentrationMap map[Chemical]float64

// Clone returns an independent copy of the map.
func (m ConcentrationMap) Clone() ConcentrationMap {
	out := make(ConcentrationMap, len(m))
	for chem, v := range m {
		out[chem] = v
	}
	return out
}

// AllZero reports whether every value in the map is exactly zero.
// An empty map is all-zero.
func (m ConcentrationMap) AllZero() bool {
	for _, v := range m {
		if v != 0 {
			return false
		}
	}
	return true
}

// CanonicalChemical normalizes a raw chemical name to its canonical form.
// The second return is false for names outside the modeled set.
func CanonicalChemical(raw string) (Chemical, bool) {
	c := Chemical(strings.ToUpper(strings.TrimSpace(raw)))
	switch c {
	case PFOA, PFOS, PFHxS, PFNA, HFPODA, PFBS:
		return c, true
	}
	return "", false
}

// Category classifies a UCMR5 PFAS contaminant for ingest and reporting.
type Category string

const (
	CategoryMCL         Category = "MCL"
	CategoryHazardIndex Category = "HazardIndex"
	CategoryOtherPFAS   Category = "OtherPFAS"
	CategoryReplacement Category = "ReplacementPFAS"
	CategoryTelomer     Category = "Fluorotelomer"
	CategoryPrecursor   Category = "Precursor"
)

// ChemicalInfo describes a UCMR5 contaminant row.
type ChemicalInfo struct {
	CanonicalName string // display form, e.g. "PFHxS"
	Category      Category
}

// UCMR5Contaminants maps the exact uppercase UCMR5 "Contaminant" column
// value to its metadata. Ingest keeps medians for every entry here; only
// the six modeled chemicals feed the regulatory risk path. Lithium also
// appears in UCMR5 but is deliberately absent: it is not a PFAS.
var UCMR5Contaminants = map[string]ChemicalInfo{
	"PFOA":    {CanonicalName: "PFOA", Category: CategoryMCL},
	"PFOS":    {CanonicalName: "PFOS", Category: CategoryMCL},
	"PFHXS":   {CanonicalName: "PFHxS", Category: CategoryHazardIndex},
	"PFNA":    {CanonicalName: "PFNA", Category: CategoryHazardIndex},
	"PFBS":    {CanonicalName: "PFBS", Category: CategoryHazardIndex},
	"HFPO-DA": {CanonicalName: "HFPO-DA", Category: CategoryHazardIndex},

	"PFHPS":  {CanonicalName: "PFHpS", Category: CategoryOtherPFAS},
	"PFPES":  {CanonicalName: "PFPeS", Category: CategoryOtherPFAS},
	"PFPEA":  {CanonicalName: "PFPeA", Category: CategoryOtherPFAS},
	"PFBA":   {CanonicalName: "PFBA", Category: CategoryOtherPFAS},
	"PFHXA":  {CanonicalName: "PFHxA", Category: CategoryOtherPFAS},
	"PFHPA":  {CanonicalName: "PFHpA", Category: CategoryOtherPFAS},
	"PFDA":   {CanonicalName: "PFDA", Category: CategoryOtherPFAS},
	"PFDOA":  {CanonicalName: "PFDoA", Category: CategoryOtherPFAS},
	"PFUNA":  {CanonicalName: "PFUnA", Category: CategoryOtherPFAS},
	"PFTRDA": {CanonicalName: "PFTrDA", Category: CategoryOtherPFAS},
	"PFTA":   {CanonicalName: "PFTA", Category: CategoryOtherPFAS},
	"PFMPA":  {CanonicalName: "PFMPA", Category: CategoryOtherPFAS},

	"ADONA":  {CanonicalName: "ADONA", Category: CategoryReplacement},
	"NFDHA":  {CanonicalName: "NFDHA", Category: CategoryReplacement},
	"PFEESA": {CanonicalName: "PFEESA", Category: CategoryReplacement},
	"PFMBA":  {CanonicalName: "PFMBA", Category: CategoryReplacement},

	"4:2 FTS": {CanonicalName: "4:2 FTS", Category: CategoryTelomer},
	"6:2 FTS": {CanonicalName: "6:2 FTS", Category: CategoryTelomer},
	"8:2 FTS": {CanonicalName: "8:2 FTS", Category: CategoryTelomer},

	"NETFOSAA":     {CanonicalName: "NETFOSAA", Category: CategoryPrecursor},
	"NMEFOSAA":     {CanonicalName: "NMEFOSAA", Category: CategoryPrecursor},
	"9CL-PF3ONS":   {CanonicalName: "9Cl-PF3ONS", Category: CategoryPrecursor},
	"11CL-PF3OUDS": {CanonicalName: "11Cl-PF3OUDS", Category: CategoryPrecursor},
}

// IsPFAS reports whether a raw UCMR5 contaminant name is a tracked PFAS.
func IsPFAS(raw string) bool {
	_, ok := UCMR5Contaminants[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}
