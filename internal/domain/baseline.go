package domain

// Baseline holds per-region background PFAS concentrations with a
// national fallback. Built once at startup from the processed UCMR5
// medians and never mutated, so it is safe for concurrent reads.
type Baseline struct {
	regions  map[Region]ConcentrationMap
	national ConcentrationMap
}

// NewBaseline builds a Baseline from per-region maps and a national
// fallback map.
//
// Two clean-ups are applied up front so lookups stay trivial:
//   - the national map is filled out to cover every modeled chemical
//     (0.0 for gaps), so fallback resolution can never miss a key
//   - region entries whose values are all exactly zero are dropped;
//     UCMR5 censors below-detection results to zero, and a fully
//     censored state tells us nothing the national medians don't
func NewBaseline(regions map[Region]ConcentrationMap, national ConcentrationMap) *Baseline {
	nat := make(ConcentrationMap, len(Chemicals))
	for _, chem := range Chemicals {
		nat[chem] = national[chem]
	}

	kept := make(map[Region]ConcentrationMap, len(regions))
	for region, m := range regions {
		if m.AllZero() && !nat.AllZero() {
			continue
		}
		kept[region] = m.Clone()
	}

	return &Baseline{regions: kept, national: nat}
}

// Regions returns the number of region entries, excluding the national
// fallback.
func (b *Baseline) Regions() int {
	return len(b.regions)
}

// Resolve returns the background concentration map for a region,
// falling back to the national medians when the region is unknown or
// degenerate. The result always contains every modeled chemical
// (0.0 where no data exists) and is a fresh copy the caller may keep.
func (b *Baseline) Resolve(region Region) ConcentrationMap {
	src, ok := b.regions[NormalizeRegion(string(region))]
	if !ok {
		src = b.national
	}

	out := make(ConcentrationMap, len(Chemicals))
	for _, chem := range Chemicals {
		out[chem] = src[chem]
	}
	return out
}
