package domain

import "strings"

// Region is a canonical region identifier: an uppercase two-letter USPS
// state abbreviation, or "US" for the national fallback.
type Region string

// NationalRegion keys the synthetic national-median fallback entry.
const NationalRegion Region = "US"

// fipsToUSPS translates two-digit state FIPS codes to USPS abbreviations.
// UCMR5 keys states by USPS, but some upstream callers send FIPS.
var fipsToUSPS = map[string]Region{
	"01": "AL", "02": "AK", "04": "AZ", "05": "AR",
	"06": "CA", "08": "CO", "09": "CT", "10": "DE",
	"11": "DC", "12": "FL", "13": "GA", "15": "HI",
	"16": "ID", "17": "IL", "18": "IN", "19": "IA",
	"20": "KS", "21": "KY", "22": "LA", "23": "ME",
	"24": "MD", "25": "MA", "26": "MI", "27": "MN",
	"28": "MS", "29": "MO", "30": "MT", "31": "NE",
	"32": "NV", "33": "NH", "34": "NJ", "35": "NM",
	"36": "NY", "37": "NC", "38": "ND", "39": "OH",
	"40": "OK", "41": "OR", "42": "PA", "44": "RI",
	"45": "SC", "46": "SD", "47": "TN", "48": "TX",
	"49": "UT", "50": "VT", "51": "VA", "53": "WA",
	"54": "WV", "55": "WI", "56": "WY", "72": "PR",
}

// NormalizeRegion maps an upstream region identifier to canonical form.
// Accepts USPS abbreviations in any case and one- or two-digit FIPS
// codes. Unrecognized input is uppercased and passed through; the
// baseline resolver handles unknown regions via the national fallback,
// so normalization never fails.
func NormalizeRegion(raw string) Region {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return NationalRegion
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		s = "0" + s
	}
	if usps, ok := fipsToUSPS[s]; ok {
		return usps
	}
	return Region(s)
}
