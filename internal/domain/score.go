package domain

import "strings"

// WaterStress is the regional water-stress classification.
type WaterStress string

const (
	StressLow      WaterStress = "low"
	StressModerate WaterStress = "moderate"
	StressHigh     WaterStress = "high"
	StressExtreme  WaterStress = "extreme"
)

// RiskCategory is the binned interpretation of the overall risk score.
type RiskCategory string

const (
	RiskLow      RiskCategory = "low"
	RiskModerate RiskCategory = "moderate"
	RiskHigh     RiskCategory = "high"
	RiskSevere   RiskCategory = "severe"
)

// Pathway is the dominant exposure route inferred from site hydrogeology.
type Pathway string

const (
	PathwayGroundwater  Pathway = "groundwater"
	PathwaySurfaceWater Pathway = "surface_water"
	PathwayMixed        Pathway = "mixed"
)

// Environment bundles the site's hydrological and contextual factors.
type Environment struct {
	// GroundwaterVulnerability is 0 (very low) to 1 (very high).
	GroundwaterVulnerability float64 `json:"groundwater_vulnerability_index"`

	// SurfaceWaterDistanceKM is the distance to the nearest surface
	// water body in kilometers.
	SurfaceWaterDistanceKM float64 `json:"surface_water_distance_km"`

	WaterStress WaterStress `json:"water_stress_category"`

	// EJScore is the optional environmental-justice / overburdened
	// community index in [0,1].
	EJScore *float64 `json:"ej_score,omitempty"`
}

// Scoring weights. Each MCL chemical contributes up to mclRatioCap ×
// mclPointsPerRatio points, so a single chemical is bounded at 36.
const (
	mclRatioCap       = 3.0
	mclPointsPerRatio = 12.0
	hiExceedPoints    = 20.0
	combinedPoints    = 15.0
)

// stressMultiplier scales the accumulated base risk by regional water
// stress.
var stressMultiplier = map[WaterStress]float64{
	StressLow:      1.0,
	StressModerate: 1.2,
	StressHigh:     1.4,
	StressExtreme:  1.6,
}

// StressMultiplier returns the base-risk multiplier for a water-stress
// category. Unknown categories get the neutral multiplier.
func StressMultiplier(stress WaterStress) float64 {
	s := WaterStress(strings.ToLower(strings.TrimSpace(string(stress))))
	if m, ok := stressMultiplier[s]; ok {
		return m
	}
	return 1.0
}

// Score aggregates regulatory flags and environmental stress into a
// bounded 0–100 risk score, its category, and the dominant exposure
// pathway. Pure function.
func Score(downstream ConcentrationMap, a Assessment, env Environment, limits *Limits) (float64, RiskCategory, Pathway) {
	base := 0.0
	for _, chem := range limits.MCLChemicals() {
		mcl, _ := limits.IndividualMCL(chem)
		if mcl <= 0 {
			continue
		}
		ratio := downstream[chem] / mcl
		if ratio > mclRatioCap {
			ratio = mclRatioCap
		}
		base += ratio * mclPointsPerRatio
	}
	if a.HIExceeds {
		base += hiExceedPoints
	}
	if a.CombinedMCLViolation {
		base += combinedPoints
	}

	score := base * StressMultiplier(env.WaterStress)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, categorize(score), dominantPathway(env)
}

// categorize bins a score into its risk category. Boundary values
// belong to the higher band: 25.0 is moderate, 75.0 is severe.
func categorize(score float64) RiskCategory {
	switch {
	case score < 25:
		return RiskLow
	case score < 50:
		return RiskModerate
	case score < 75:
		return RiskHigh
	default:
		return RiskSevere
	}
}

// dominantPathway infers the most relevant exposure route. The
// groundwater check takes precedence over the surface-water check.
func dominantPathway(env Environment) Pathway {
	if env.GroundwaterVulnerability > 0.7 {
		return PathwayGroundwater
	}
	if env.SurfaceWaterDistanceKM < 1.0 {
		return PathwaySurfaceWater
	}
	return PathwayMixed
}
