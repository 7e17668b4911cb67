package domain

import "context"

// RegionLocator resolves a coordinate to a canonical region identifier.
// Implementations live at the adapter boundary; the engine itself never
// performs network calls.
type RegionLocator interface {
	// LocateRegion converts a WGS-84 latitude/longitude to a region
	// code (USPS state abbreviation). Returns an empty region when the
	// provider cannot place the point in a known state.
	LocateRegion(ctx context.Context, lat, lon float64) (Region, error)
}
