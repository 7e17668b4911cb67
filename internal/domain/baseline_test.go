package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBaseline() *Baseline {
	return NewBaseline(
		map[Region]ConcentrationMap{
			"VA": {PFOA: 3.2, PFOS: 4.7, PFHxS: 1.1},
			"WY": {PFOA: 0, PFOS: 0}, // fully censored state
		},
		ConcentrationMap{PFOA: 2.0, PFOS: 2.5, PFBS: 0.8},
	)
}

func TestBaselineResolve(t *testing.T) {
	b := testBaseline()

	t.Run("known region covers every chemical", func(t *testing.T) {
		m := b.Resolve("VA")

		require.Len(t, m, len(Chemicals))
		assert.Equal(t, 3.2, m[PFOA])
		assert.Equal(t, 4.7, m[PFOS])
		assert.Equal(t, 1.1, m[PFHxS])
		assert.Equal(t, 0.0, m[PFNA])
		assert.Equal(t, 0.0, m[HFPODA])
		for chem, v := range m {
			assert.GreaterOrEqual(t, v, 0.0, "chemical %s", chem)
		}
	})

	t.Run("unknown region falls back to national", func(t *testing.T) {
		m := b.Resolve("ZZ")

		assert.Equal(t, b.Resolve(NationalRegion), m)
		assert.Equal(t, 2.0, m[PFOA])
		assert.Equal(t, 0.8, m[PFBS])
	})

	t.Run("all-zero region falls back to national", func(t *testing.T) {
		assert.Equal(t, b.Resolve(NationalRegion), b.Resolve("WY"))
	})

	t.Run("region is normalized before lookup", func(t *testing.T) {
		expected := b.Resolve("VA")

		assert.Equal(t, expected, b.Resolve("va"))
		assert.Equal(t, expected, b.Resolve("  VA "))
		assert.Equal(t, expected, b.Resolve("51")) // Virginia FIPS
	})

	t.Run("result is a copy", func(t *testing.T) {
		m := b.Resolve("VA")
		m[PFOA] = 999

		assert.Equal(t, 3.2, b.Resolve("VA")[PFOA])
	})
}

func TestNewBaseline_NationalCoverage(t *testing.T) {
	// A sparse national map must still serve every modeled chemical.
	b := NewBaseline(nil, ConcentrationMap{PFOA: 1.5})

	m := b.Resolve("anywhere")
	require.Len(t, m, len(Chemicals))
	assert.Equal(t, 1.5, m[PFOA])
	assert.Equal(t, 0.0, m[PFOS])
}

func TestNewBaseline_AllZeroNationalKeepsRegions(t *testing.T) {
	// With no usable national data, even an all-zero region entry is
	// kept: there is nothing better to substitute.
	b := NewBaseline(
		map[Region]ConcentrationMap{"WY": {PFOA: 0}},
		ConcentrationMap{},
	)

	assert.Equal(t, 1, b.Regions())
}

func TestNormalizeRegion(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Region
	}{
		{"uppercase USPS", "VA", "VA"},
		{"lowercase USPS", "tx", "TX"},
		{"padded", "  md ", "MD"},
		{"two-digit FIPS", "06", "CA"},
		{"unpadded FIPS", "6", "CA"},
		{"national", "US", "US"},
		{"empty defaults to national", "", "US"},
		{"unknown passes through uppercased", "zz", "ZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRegion(tt.raw))
		})
	}
}
