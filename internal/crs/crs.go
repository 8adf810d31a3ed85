// Package crs defines the coordinate reference systems found in license block
// listings and reprojects points from them into WGS-84.
package crs

// CRS identifies a source coordinate reference system.
type CRS int

const (
	// GSK2011 is the Russian geodetic system GSK-2011. Default for listings
	// without an explicit marker.
	GSK2011 CRS = iota
	// Pulkovo1942 is the SK-42 system on the Krassowsky ellipsoid.
	Pulkovo1942
	// WGS84 is the target system.
	WGS84
)

// PROJ.4 definitions of the supported systems. Datum shifts follow
// GOST 32453-2017 and are given in the position vector convention expected
// by +towgs84 (rotation signs are inverted against the coordinate frame form).
const (
	gsk2011Def     = "+proj=longlat +a=6378136.5 +rf=298.2564151 +towgs84=0.013,-0.092,-0.03,-0.001738,0.003559,-0.004263,0.0074"
	pulkovo1942Def = "+proj=longlat +ellps=krass +towgs84=23.57,-140.95,-79.8,0,0.35,0.79,-0.22"
	wgs84Def       = "+proj=longlat +datum=WGS84"
)

// String returns the canonical name of the system.
func (c CRS) String() string {
	switch c {
	case GSK2011:
		return "GSK-2011"
	case Pulkovo1942:
		return "Pulkovo-1942"
	case WGS84:
		return "WGS-84"
	default:
		return "unknown"
	}
}

// Proj4 returns the PROJ.4 definition of the system.
func (c CRS) Proj4() string {
	switch c {
	case Pulkovo1942:
		return pulkovo1942Def
	case WGS84:
		return wgs84Def
	default:
		return gsk2011Def
	}
}

// All lists every supported source system.
func All() []CRS {
	return []CRS{GSK2011, Pulkovo1942, WGS84}
}
