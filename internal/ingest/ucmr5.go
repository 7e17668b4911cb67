// Package ingest turns the raw EPA UCMR5 occurrence file into the
// state-median background baseline the engine loads at startup.
//
// The raw file is tab-delimited with one analytical result per row.
// Censored results (AnalyticalResultsSign "<") are below the minimum
// reporting level and counted as 0.0. Values are reported in µg/L and
// converted to ppt (1 µg/L = 1000 ppt).
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
)

// ugLToPPT converts µg/L to parts per trillion.
const ugLToPPT = 1000.0

// Sample is one PFAS analytical result from the raw UCMR5 file.
type Sample struct {
	State       domain.Region
	Contaminant string // canonical display name, e.g. "PFHxS"
	ValuePPT    float64
	Censored    bool
}

// ParseUCMR5 reads the raw tab-delimited UCMR5 occurrence file and
// returns the PFAS samples, normalized to ppt. Non-PFAS rows (UCMR5
// also monitors lithium) and rows with non-numeric uncensored values
// are dropped.
func ParseUCMR5(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read UCMR5 header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read UCMR5 row: %w", err)
		}
		if s, ok := parseRow(row, cols); ok {
			samples = append(samples, s)
		}
	}
	return samples, nil
}

// columns holds the indices of the UCMR5 fields we consume.
type columns struct {
	state       int
	contaminant int
	value       int
	sign        int // -1 when the column is absent
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{state: -1, contaminant: -1, value: -1, sign: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "state":
			cols.state = i
		case "contaminant":
			cols.contaminant = i
		case "analyticalresultvalue":
			cols.value = i
		case "analyticalresultssign":
			cols.sign = i
		}
	}
	if cols.state < 0 {
		return cols, fmt.Errorf("UCMR5 input has no State column")
	}
	if cols.contaminant < 0 {
		return cols, fmt.Errorf("UCMR5 input has no Contaminant column")
	}
	if cols.value < 0 {
		return cols, fmt.Errorf("UCMR5 input has no AnalyticalResultValue column")
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (Sample, bool) {
	if cols.state >= len(row) || cols.contaminant >= len(row) || cols.value >= len(row) {
		return Sample{}, false
	}

	rawChem := strings.ToUpper(strings.TrimSpace(row[cols.contaminant]))
	info, ok := domain.UCMR5Contaminants[rawChem]
	if !ok {
		return Sample{}, false
	}

	censored := false
	if cols.sign >= 0 && cols.sign < len(row) && strings.TrimSpace(row[cols.sign]) == "<" {
		censored = true
	}

	var valuePPT float64
	if !censored {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[cols.value]), 64)
		if err != nil {
			return Sample{}, false
		}
		valuePPT = v * ugLToPPT
	}

	return Sample{
		State:       domain.NormalizeRegion(row[cols.state]),
		Contaminant: info.CanonicalName,
		ValuePPT:    valuePPT,
		Censored:    censored,
	}, true
}

// StateMedian is one aggregated (state, contaminant) row of the
// processed medians file.
type StateMedian struct {
	State       domain.Region
	Contaminant string
	MedianPPT   float64
	MaxPPT      float64
	NSamples    int
	PctDetected float64
	PctCensored float64
}

// AggregateStateMedians reduces samples to per-state, per-contaminant
// statistics, sorted by state then contaminant.
func AggregateStateMedians(samples []Sample) []StateMedian {
	type key struct {
		state domain.Region
		chem  string
	}
	groups := make(map[key][]float64)
	for _, s := range samples {
		k := key{state: s.State, chem: s.Contaminant}
		groups[k] = append(groups[k], s.ValuePPT)
	}

	out := make([]StateMedian, 0, len(groups))
	for k, values := range groups {
		detected := 0
		maxV := 0.0
		for _, v := range values {
			if v > 0 {
				detected++
			}
			if v > maxV {
				maxV = v
			}
		}
		pctDetected := float64(detected) / float64(len(values)) * 100.0
		out = append(out, StateMedian{
			State:       k.state,
			Contaminant: k.chem,
			MedianPPT:   median(values),
			MaxPPT:      maxV,
			NSamples:    len(values),
			PctDetected: pctDetected,
			PctCensored: 100.0 - pctDetected,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Contaminant < out[j].Contaminant
	})
	return out
}

// median returns the middle value of the sample set, averaging the two
// middle values for even counts. The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
