package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
)

const ucmr5Header = "PWSID\tState\tContaminant\tAnalyticalResultsSign\tAnalyticalResultValue\n"

func rawFile(rows ...string) *strings.Reader {
	return strings.NewReader(ucmr5Header + strings.Join(rows, "\n") + "\n")
}

func TestParseUCMR5(t *testing.T) {
	t.Run("detected result converts to ppt", func(t *testing.T) {
		samples, err := ParseUCMR5(rawFile("VA0001\tVA\tPFOA\t=\t0.0032"))

		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, domain.Region("VA"), samples[0].State)
		assert.Equal(t, "PFOA", samples[0].Contaminant)
		assert.InDelta(t, 3.2, samples[0].ValuePPT, 1e-9)
		assert.False(t, samples[0].Censored)
	})

	t.Run("censored result counts as zero", func(t *testing.T) {
		samples, err := ParseUCMR5(rawFile("VA0001\tVA\tPFOS\t<\t0.004"))

		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, 0.0, samples[0].ValuePPT)
		assert.True(t, samples[0].Censored)
	})

	t.Run("non-PFAS contaminants are dropped", func(t *testing.T) {
		samples, err := ParseUCMR5(rawFile(
			"VA0001\tVA\tLITHIUM\t=\t9.0",
			"VA0001\tVA\tPFOA\t=\t0.001",
		))

		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, "PFOA", samples[0].Contaminant)
	})

	t.Run("contaminant name normalizes to canonical form", func(t *testing.T) {
		samples, err := ParseUCMR5(rawFile("TX0001\tTX\tpfhxs\t=\t0.002"))

		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, "PFHxS", samples[0].Contaminant)
	})

	t.Run("non-numeric uncensored value is dropped", func(t *testing.T) {
		samples, err := ParseUCMR5(rawFile("VA0001\tVA\tPFOA\t=\tnot-a-number"))

		require.NoError(t, err)
		assert.Empty(t, samples)
	})

	t.Run("missing contaminant column errors", func(t *testing.T) {
		_, err := ParseUCMR5(strings.NewReader("State\tAnalyticalResultValue\nVA\t0.001\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Contaminant")
	})

	t.Run("missing sign column treats rows as uncensored", func(t *testing.T) {
		samples, err := ParseUCMR5(strings.NewReader(
			"State\tContaminant\tAnalyticalResultValue\nVA\tPFOA\t0.001\n"))

		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.InDelta(t, 1.0, samples[0].ValuePPT, 1e-9)
	})
}

func TestAggregateStateMedians(t *testing.T) {
	samples := []Sample{
		{State: "VA", Contaminant: "PFOA", ValuePPT: 2},
		{State: "VA", Contaminant: "PFOA", ValuePPT: 4},
		{State: "VA", Contaminant: "PFOA", ValuePPT: 10},
		{State: "VA", Contaminant: "PFOA", ValuePPT: 0, Censored: true},
		{State: "TX", Contaminant: "PFOS", ValuePPT: 7},
	}

	medians := AggregateStateMedians(samples)
	require.Len(t, medians, 2)

	// Sorted by state then contaminant.
	tx, va := medians[0], medians[1]

	assert.Equal(t, domain.Region("TX"), tx.State)
	assert.Equal(t, "PFOS", tx.Contaminant)
	assert.Equal(t, 7.0, tx.MedianPPT)
	assert.Equal(t, 1, tx.NSamples)
	assert.Equal(t, 100.0, tx.PctDetected)

	assert.Equal(t, domain.Region("VA"), va.State)
	assert.InDelta(t, 3.0, va.MedianPPT, 1e-9) // even count: mean of 2 and 4
	assert.Equal(t, 10.0, va.MaxPPT)
	assert.Equal(t, 4, va.NSamples)
	assert.InDelta(t, 75.0, va.PctDetected, 1e-9)
	assert.InDelta(t, 25.0, va.PctCensored, 1e-9)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"odd count", []float64{9, 1, 5}, 5},
		{"even count", []float64{1, 2, 3, 10}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, median(tt.values))
		})
	}
}
