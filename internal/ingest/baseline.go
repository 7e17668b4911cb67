package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
)

// mediansHeader is the column layout of the processed medians CSV.
var mediansHeader = []string{
	"STATE", "CONTAMINANT", "MEDIAN_PPT", "MAX_PPT",
	"N_SAMPLES", "PCT_DETECTED", "PCT_CENSORED",
}

// WriteMedians writes the processed state medians as CSV.
func WriteMedians(w io.Writer, medians []StateMedian) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mediansHeader); err != nil {
		return fmt.Errorf("write medians header: %w", err)
	}
	for _, m := range medians {
		row := []string{
			string(m.State),
			m.Contaminant,
			strconv.FormatFloat(m.MedianPPT, 'f', -1, 64),
			strconv.FormatFloat(m.MaxPPT, 'f', -1, 64),
			strconv.Itoa(m.NSamples),
			strconv.FormatFloat(m.PctDetected, 'f', 2, 64),
			strconv.FormatFloat(m.PctCensored, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write medians row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadMedians reads a processed state-medians CSV.
func LoadMedians(r io.Reader) ([]StateMedian, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(mediansHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read medians header: %w", err)
	}
	for i, want := range mediansHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("medians column %d: got %q, want %q", i, header[i], want)
		}
	}

	var out []StateMedian
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read medians row: %w", err)
		}

		medianPPT, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("medians row %q: bad MEDIAN_PPT: %w", row[0], err)
		}
		maxPPT, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("medians row %q: bad MAX_PPT: %w", row[0], err)
		}
		nSamples, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("medians row %q: bad N_SAMPLES: %w", row[0], err)
		}
		pctDetected, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("medians row %q: bad PCT_DETECTED: %w", row[0], err)
		}
		pctCensored, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, fmt.Errorf("medians row %q: bad PCT_CENSORED: %w", row[0], err)
		}

		out = append(out, StateMedian{
			State:       domain.NormalizeRegion(row[0]),
			Contaminant: strings.TrimSpace(row[1]),
			MedianPPT:   medianPPT,
			MaxPPT:      maxPPT,
			NSamples:    nSamples,
			PctDetected: pctDetected,
			PctCensored: pctCensored,
		})
	}
	return out, nil
}

// BuildBaseline assembles the engine's background baseline from
// processed medians. Per-region maps hold the modeled chemicals only;
// the national fallback is the median of state medians per chemical.
// Negative medians (malformed input) are dropped.
func BuildBaseline(medians []StateMedian) *domain.Baseline {
	regions := make(map[domain.Region]domain.ConcentrationMap)
	byChem := make(map[domain.Chemical][]float64)

	for _, m := range medians {
		chem, ok := domain.CanonicalChemical(m.Contaminant)
		if !ok || m.MedianPPT < 0 {
			continue
		}
		if m.State != domain.NationalRegion {
			if regions[m.State] == nil {
				regions[m.State] = make(domain.ConcentrationMap, len(domain.Chemicals))
			}
			regions[m.State][chem] = m.MedianPPT
			byChem[chem] = append(byChem[chem], m.MedianPPT)
		}
	}

	national := make(domain.ConcentrationMap, len(domain.Chemicals))
	for chem, values := range byChem {
		national[chem] = median(values)
	}

	return domain.NewBaseline(regions, national)
}
