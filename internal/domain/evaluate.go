package domain

// Assessment summarizes downstream concentrations against the
// regulatory limits table.
type Assessment struct {
	// HazardIndex is the sum of concentration/RfD hazard quotients
	// across the hazard-index chemical subset. Chemicals without a
	// defined RfD contribute nothing.
	HazardIndex float64 `json:"hazard_index"`

	// HIExceeds is true when HazardIndex > 1.0.
	HIExceeds bool `json:"hazard_index_exceeds_1"`

	// MCLViolation is true when any chemical with a defined individual
	// MCL exceeds it downstream.
	MCLViolation bool `json:"mcl_violation"`

	// CombinedMCLViolation is true when a combined PFOA+PFOS MCL is
	// defined and the downstream sum exceeds it. Always false when no
	// combined MCL is configured.
	CombinedMCLViolation bool `json:"combined_mcl_violation"`
}

// hiThreshold is the EPA hazard-index screening threshold.
const hiThreshold = 1.0

// Evaluate computes the regulatory assessment for a downstream
// concentration map. Pure function of its input and the limits table.
func (l *Limits) Evaluate(downstream ConcentrationMap) Assessment {
	var a Assessment

	for _, chem := range Chemicals {
		conc := downstream[chem]

		if rfd, ok := l.HazardRfD(chem); ok && rfd > 0 {
			a.HazardIndex += conc / rfd
		}
		if mcl, ok := l.IndividualMCL(chem); ok && conc > mcl {
			a.MCLViolation = true
		}
	}
	a.HIExceeds = a.HazardIndex > hiThreshold

	if combined, ok := l.CombinedMCL(); ok {
		a.CombinedMCLViolation = downstream[PFOA]+downstream[PFOS] > combined
	}

	return a
}
