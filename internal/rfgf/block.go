package rfgf

import "github.com/paulmach/orb"

// Block is a license record with its parsed boundary in WGS-84.
type Block struct {
	License  License
	Geometry orb.MultiPolygon
}
