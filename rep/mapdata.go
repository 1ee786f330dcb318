// This file contains the types describing the map data located during the
// header walk. Decoding tile contents into terrain types is outside core
// scope (see the Minimap Renderer collaborator contract); the core
// publishes the tile region's offset and stride so that collaborator can
// read the raw tiles itself.

package rep

import "github.com/aoe2rec/aoe2rec/rep/repcore"

// MapData describes the location and shape of the map tile data.
type MapData struct {
	// Size is the map dimensions in tiles (duplicated from Header for a
	// consumer that only cares about map data).
	Size repcore.Point

	// Pos is the file offset (within the inflated header) where the tile
	// data begins.
	Pos int

	// TileStride is 4 for "not legacy" tile records, 2 for legacy ones;
	// auto-detected from the first tile byte (0xFF vs. anything else).
	TileStride int

	// Debug holds optional debug info.
	Debug *MapDataDebug `json:"-"`
}

// MapDataDebug holds debug info for the map data region.
type MapDataDebug struct {
	// Tiles is the raw, undecoded tile byte range.
	Tiles []byte `json:"-"`
}
