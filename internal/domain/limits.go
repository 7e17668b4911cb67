package domain

// Limits is the immutable regulatory limits table: individual MCLs, the
// combined PFOA+PFOS MCL, and hazard-index reference doses, all in ppt.
// Populated once at startup from external configuration.
//
// Absence is meaningful everywhere here: a chemical without an entry has
// no defined limit and is not evaluated against one, which is different
// from a limit of zero.
type Limits struct {
	individual  map[Chemical]float64
	combined    float64
	hasCombined bool
	rfd         map[Chemical]float64
}

// NewLimits builds a Limits table. Pass nil combined to leave the
// combined PFOA+PFOS MCL undefined. Keys are normalized; entries for
// chemicals outside the modeled set are dropped.
func NewLimits(individual map[Chemical]float64, combined *float64, rfd map[Chemical]float64) *Limits {
	l := &Limits{
		individual: normalizeLimitMap(individual),
		rfd:        normalizeLimitMap(rfd),
	}
	if combined != nil {
		l.combined = *combined
		l.hasCombined = true
	}
	return l
}

func normalizeLimitMap(in map[Chemical]float64) map[Chemical]float64 {
	out := make(map[Chemical]float64, len(in))
	for chem, v := range in {
		canonical, ok := CanonicalChemical(string(chem))
		if !ok {
			continue
		}
		out[canonical] = v
	}
	return out
}

// IndividualMCL returns the enforceable MCL for a chemical in ppt.
// The second return is false when no individual MCL is defined.
func (l *Limits) IndividualMCL(chem Chemical) (float64, bool) {
	v, ok := l.individual[chem]
	return v, ok
}

// CombinedMCL returns the combined PFOA+PFOS MCL in ppt, if defined.
func (l *Limits) CombinedMCL() (float64, bool) {
	return l.combined, l.hasCombined
}

// HazardRfD returns the hazard-index reference dose for a chemical in
// ppt. The second return is false when the chemical is not part of the
// hazard-index set.
func (l *Limits) HazardRfD(chem Chemical) (float64, bool) {
	v, ok := l.rfd[chem]
	return v, ok
}

// MCLChemicals returns the chemicals with defined individual MCLs, in
// the stable registry order.
func (l *Limits) MCLChemicals() []Chemical {
	out := make([]Chemical, 0, len(l.individual))
	for _, chem := range Chemicals {
		if _, ok := l.individual[chem]; ok {
			out = append(out, chem)
		}
	}
	return out
}
