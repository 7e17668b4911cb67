package domain

import (
	"fmt"
	"math"
	"time"
)

// Request is one simulation scenario. Flows are in cfs; the API layer
// converts from MGD before constructing a Request. Transient: the
// engine never retains it.
type Request struct {
	Region           string           `json:"region"`
	Discharge        ConcentrationMap `json:"discharge_ppt"`
	ReceivingFlowCFS float64          `json:"receiving_flow_cfs"`
	DischargeFlowCFS float64          `json:"discharge_flow_cfs"`
	Cooling          CoolingType      `json:"cooling_type"`
	Env              Environment      `json:"environment"`
}

// Result is the outcome of one simulation, returned to the caller and
// not retained by the engine.
type Result struct {
	Region     Region           `json:"region"`
	Baseline   ConcentrationMap `json:"baseline_ppt"`
	Downstream ConcentrationMap `json:"downstream_ppt"`

	Assessment

	Score    float64      `json:"risk_score"`
	Category RiskCategory `json:"risk_category"`
	Pathway  Pathway      `json:"dominant_pathway"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Options tune engine policy without touching the loaded tables.
type Options struct {
	// EffluentPolicy decides how undeclared discharge chemicals are
	// treated by the mixing model. Empty means PolicyConservative.
	EffluentPolicy EffluentPolicy

	// EnrichmentFactors overrides the default cooling-technology
	// enrichment factors for the listed cooling types.
	EnrichmentFactors map[CoolingType]float64
}

// Simulator is the simulation facade. Construct once at startup with
// the immutable baseline and limits tables; safe for concurrent use.
type Simulator struct {
	baseline *Baseline
	limits   *Limits
	opts     Options
}

// NewSimulator builds a Simulator over pre-loaded tables.
func NewSimulator(baseline *Baseline, limits *Limits, opts Options) *Simulator {
	if opts.EffluentPolicy == "" {
		opts.EffluentPolicy = PolicyConservative
	}
	if len(opts.EnrichmentFactors) > 0 {
		normalized := make(map[CoolingType]float64, len(opts.EnrichmentFactors))
		for cooling, f := range opts.EnrichmentFactors {
			normalized[normalizeCooling(cooling)] = f
		}
		opts.EnrichmentFactors = normalized
	}
	return &Simulator{baseline: baseline, limits: limits, opts: opts}
}

// Simulate runs one scenario: resolve background, mix, evaluate against
// regulatory limits, aggregate the score. Returns a *ValidationError
// for structurally invalid requests.
func (s *Simulator) Simulate(req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	region := NormalizeRegion(req.Region)
	baseline := s.baseline.Resolve(region)

	downstream := mixWithFactor(
		baseline,
		canonicalDischarge(req.Discharge),
		req.ReceivingFlowCFS,
		req.DischargeFlowCFS,
		s.enrichment(req.Cooling),
		s.opts.EffluentPolicy,
	)

	assessment := s.limits.Evaluate(downstream)
	score, category, pathway := Score(downstream, assessment, req.Env, s.limits)

	return Result{
		Region:      region,
		Baseline:    baseline,
		Downstream:  downstream,
		Assessment:  assessment,
		Score:       score,
		Category:    category,
		Pathway:     pathway,
		GeneratedAt: clock.Now().UTC(),
	}, nil
}

func (s *Simulator) enrichment(cooling CoolingType) float64 {
	if f, ok := s.opts.EnrichmentFactors[normalizeCooling(cooling)]; ok {
		return f
	}
	return EnrichmentFactor(cooling)
}

// canonicalDischarge normalizes discharge map keys and drops chemicals
// outside the modeled set.
func canonicalDischarge(in ConcentrationMap) ConcentrationMap {
	out := make(ConcentrationMap, len(in))
	for raw, v := range in {
		chem, ok := CanonicalChemical(string(raw))
		if !ok {
			continue
		}
		out[chem] = v
	}
	return out
}

func validate(req Request) error {
	if req.Region == "" {
		return validationErr("region", "required")
	}
	if req.Discharge == nil {
		return validationErr("discharge_ppt", "required")
	}
	for chem, v := range req.Discharge {
		if !isFinite(v) || v < 0 {
			return validationErr("discharge_ppt", fmt.Sprintf("%s: concentration must be a non-negative number", chem))
		}
	}
	if !isFinite(req.ReceivingFlowCFS) || req.ReceivingFlowCFS <= 0 {
		return validationErr("receiving_flow_cfs", "must be a positive number")
	}
	if !isFinite(req.DischargeFlowCFS) || req.DischargeFlowCFS < 0 {
		return validationErr("discharge_flow_cfs", "must be a non-negative number")
	}
	if !isFinite(req.Env.GroundwaterVulnerability) || req.Env.GroundwaterVulnerability < 0 || req.Env.GroundwaterVulnerability > 1 {
		return validationErr("environment.groundwater_vulnerability_index", "must be in [0,1]")
	}
	if !isFinite(req.Env.SurfaceWaterDistanceKM) || req.Env.SurfaceWaterDistanceKM < 0 {
		return validationErr("environment.surface_water_distance_km", "must be a non-negative number")
	}
	if ej := req.Env.EJScore; ej != nil && (!isFinite(*ej) || *ej < 0 || *ej > 1) {
		return validationErr("environment.ej_score", "must be in [0,1]")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
