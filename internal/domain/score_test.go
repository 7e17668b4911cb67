package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lowStressEnv() Environment {
	return Environment{
		GroundwaterVulnerability: 0.2,
		SurfaceWaterDistanceKM:   5.0,
		WaterStress:              StressLow,
	}
}

func TestScore(t *testing.T) {
	l := testLimits()

	t.Run("clean water scores zero", func(t *testing.T) {
		score, category, _ := Score(ConcentrationMap{}, Assessment{}, lowStressEnv(), l)

		assert.Equal(t, 0.0, score)
		assert.Equal(t, RiskLow, category)
	})

	t.Run("MCL ratio contributes twelve points per unit", func(t *testing.T) {
		// PFOA at 2.0 with MCL 4.0: ratio 0.5 → 6 points. PFOS (conservative
		// baseline-only trace) at 1.0: ratio 0.25 → 3 points.
		score, _, _ := Score(ConcentrationMap{PFOA: 2, PFOS: 1}, Assessment{}, lowStressEnv(), l)
		assert.InDelta(t, 9.0, score, 1e-9)
	})

	t.Run("ratio caps at three per chemical", func(t *testing.T) {
		capped, _, _ := Score(ConcentrationMap{PFOA: 12}, Assessment{}, lowStressEnv(), l)     // ratio 3.0
		beyond, _, _ := Score(ConcentrationMap{PFOA: 12000}, Assessment{}, lowStressEnv(), l) // ratio 3000

		assert.InDelta(t, 36.0, capped, 1e-9)
		assert.Equal(t, capped, beyond)
	})

	t.Run("hazard and combined flags add bonus points", func(t *testing.T) {
		a := Assessment{HIExceeds: true, CombinedMCLViolation: true}
		score, _, _ := Score(ConcentrationMap{}, a, lowStressEnv(), l)
		assert.InDelta(t, 35.0, score, 1e-9) // 20 + 15
	})

	t.Run("water stress multiplies base risk", func(t *testing.T) {
		downstream := ConcentrationMap{PFOA: 4} // ratio 1.0 → base 12

		tests := []struct {
			stress   WaterStress
			expected float64
		}{
			{StressLow, 12},
			{StressModerate, 14.4},
			{StressHigh, 16.8},
			{StressExtreme, 19.2},
			{"unheard-of", 12},
		}
		for _, tt := range tests {
			env := lowStressEnv()
			env.WaterStress = tt.stress
			score, _, _ := Score(downstream, Assessment{}, env, l)
			assert.InDelta(t, tt.expected, score, 1e-9, "stress %q", tt.stress)
		}
	})

	t.Run("score clamps to one hundred", func(t *testing.T) {
		env := lowStressEnv()
		env.WaterStress = StressExtreme
		a := Assessment{HIExceeds: true, CombinedMCLViolation: true}

		// base = 36 + 36 + 20 + 15 = 107, ×1.6 = 171.2 → 100
		score, category, _ := Score(ConcentrationMap{PFOA: 1000, PFOS: 1000}, a, env, l)
		assert.Equal(t, 100.0, score)
		assert.Equal(t, RiskSevere, category)
	})

	t.Run("score is monotone in an MCL chemical up to the cap", func(t *testing.T) {
		prev := -1.0
		for _, conc := range []float64{0, 1, 2, 4, 8, 12, 20} {
			score, _, _ := Score(ConcentrationMap{PFOA: conc}, Assessment{}, lowStressEnv(), l)
			assert.GreaterOrEqual(t, score, prev, "conc %v", conc)
			prev = score
		}
	})
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score    float64
		expected RiskCategory
	}{
		{0, RiskLow},
		{24.999, RiskLow},
		{25.0, RiskModerate}, // boundary belongs to the higher band
		{49.999, RiskModerate},
		{50.0, RiskHigh},
		{74.999, RiskHigh},
		{75.0, RiskSevere},
		{100, RiskSevere},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, categorize(tt.score), "score %v", tt.score)
	}
}

func TestDominantPathway(t *testing.T) {
	tests := []struct {
		name     string
		env      Environment
		expected Pathway
	}{
		{"high vulnerability", Environment{GroundwaterVulnerability: 0.8, SurfaceWaterDistanceKM: 5}, PathwayGroundwater},
		{"groundwater takes precedence over nearby water", Environment{GroundwaterVulnerability: 0.9, SurfaceWaterDistanceKM: 0.2}, PathwayGroundwater},
		{"vulnerability exactly at threshold", Environment{GroundwaterVulnerability: 0.7, SurfaceWaterDistanceKM: 0.2}, PathwaySurfaceWater},
		{"nearby surface water", Environment{GroundwaterVulnerability: 0.1, SurfaceWaterDistanceKM: 0.5}, PathwaySurfaceWater},
		{"neither", Environment{GroundwaterVulnerability: 0.1, SurfaceWaterDistanceKM: 3}, PathwayMixed},
		{"distance exactly one km", Environment{GroundwaterVulnerability: 0.1, SurfaceWaterDistanceKM: 1.0}, PathwayMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dominantPathway(tt.env))
		})
	}
}
