// Package domain implements the PFAS risk simulation engine for proposed
// data-center water discharges.
//
// # Data Source
//
// Background concentrations come from the EPA Fifth Unregulated Contaminant
// Monitoring Rule (UCMR5) occurrence dataset, available at
// https://www.epa.gov/dwucmr. The ingest tooling aggregates raw sample
// results into state-level medians (parts per trillion); the engine loads
// the processed medians once at startup and treats them as immutable.
//
// # Units and Conventions
//
// Concentrations:
//
//	All concentrations are parts per trillion (ppt). UCMR5 reports µg/L,
//	converted during ingest (1 µg/L = 1000 ppt). Censored results
//	(AnalyticalResultsSign "<") are treated as 0.0.
//
// Flows:
//
//	The mixing model works in cubic feet per second (cfs). API callers
//	supply million gallons per day (MGD), converted with 1 MGD = 1.547 cfs.
//	See [MGDToCFS].
//
// Regions:
//
//	The canonical region identifier is the uppercase two-letter USPS state
//	abbreviation, with "US" reserved for the national fallback. Numeric
//	FIPS state codes (zero-padded or not) are translated on normalization
//	because upstream collaborators supply both forms. See [NormalizeRegion].
//
// # Regulatory Basis
//
// Individual MCLs, the combined PFOA+PFOS MCL, and hazard-index reference
// doses follow the EPA Final PFAS NPDWR (2024–2025). The hazard index is
// the unitless sum of concentration-to-reference-dose ratios across the
// hazard-index chemical subset; HI > 1 indicates potential health concern.
// Limits are supplied by external configuration at startup; a chemical
// without a defined limit is "not evaluated", never "limit of zero".
//
// # Mixing Model
//
// A one-dimensional steady-state complete-mixing mass balance:
//
//	effluent   = discharge × enrichment(cooling technology)
//	downstream = (baseline·Qriver + effluent·Qdischarge) / (Qriver + Qdischarge)
//
// Enrichment factors represent how a cooling technology concentrates
// contaminants before discharge: evaporative 1.5, hybrid 1.3, closed
// loop 1.1, air cooled 1.0. A zero discharge flow short-circuits to the
// unmodified baseline, so the model never divides by zero.
//
// The engine is stateless per call: any number of simulations may run
// concurrently against the shared immutable baseline and limits tables.
package domain
