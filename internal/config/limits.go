package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
)

// limitsFile mirrors the regulatory_limits.yaml layout:
//
//	mcl_individual:
//	  PFOA: 4.0
//	  PFOS: 4.0
//	combined_mcl:
//	  PFOA_PFOS: 4.0
//	hazard_index_contaminants:
//	  PFHxS: 10.0
//	  PFNA: 10.0
//	  HFPO-DA: 10.0
//	  PFBS: 2000.0
type limitsFile struct {
	MCLIndividual  map[string]float64 `yaml:"mcl_individual"`
	CombinedMCL    map[string]float64 `yaml:"combined_mcl"`
	HazardIndexRfD map[string]float64 `yaml:"hazard_index_contaminants"`
}

// LoadLimits reads the regulatory limits table from a YAML file.
// Any failure here is fatal to startup: the engine must not run with a
// partial or missing limits table.
func LoadLimits(path string) (*domain.Limits, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewConfigError("regulatory limits", err)
	}
	defer f.Close()
	return ParseLimits(f)
}

// ParseLimits decodes a regulatory limits YAML document.
func ParseLimits(r io.Reader) (*domain.Limits, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file limitsFile
	if err := dec.Decode(&file); err != nil {
		return nil, domain.NewConfigError("regulatory limits", fmt.Errorf("parse YAML: %w", err))
	}

	if len(file.MCLIndividual) == 0 {
		return nil, domain.NewConfigError("regulatory limits", fmt.Errorf("mcl_individual section missing or empty"))
	}
	if len(file.HazardIndexRfD) == 0 {
		return nil, domain.NewConfigError("regulatory limits", fmt.Errorf("hazard_index_contaminants section missing or empty"))
	}
	for section, m := range map[string]map[string]float64{
		"mcl_individual":            file.MCLIndividual,
		"combined_mcl":              file.CombinedMCL,
		"hazard_index_contaminants": file.HazardIndexRfD,
	} {
		for name, v := range m {
			if v <= 0 {
				return nil, domain.NewConfigError("regulatory limits",
					fmt.Errorf("%s: %s: limit must be positive, got %v", section, name, v))
			}
		}
	}

	var combined *float64
	if v, ok := file.CombinedMCL["PFOA_PFOS"]; ok {
		combined = &v
	}

	return domain.NewLimits(toChemMap(file.MCLIndividual), combined, toChemMap(file.HazardIndexRfD)), nil
}

func toChemMap(in map[string]float64) map[domain.Chemical]float64 {
	out := make(map[domain.Chemical]float64, len(in))
	for name, v := range in {
		out[domain.Chemical(name)] = v
	}
	return out
}
