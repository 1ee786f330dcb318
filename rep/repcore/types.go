// This file contains general types shared across the rep packages.

package repcore

import "fmt"

// Point describes a 2D location on the map, in tile coordinates.
type Point struct {
	X, Y int32
}

// String returns a string representation of the point in the format:
//
//	"x=X, y=Y"
func (p Point) String() string {
	return fmt.Sprint("x=", p.X, ", y=", p.Y)
}

// FPoint describes a 2D location using the float32 precision the replay
// format itself uses for in-game unit coordinates (e.g. a player's starting
// position).
type FPoint struct {
	X, Y float32
}

func (p FPoint) String() string {
	return fmt.Sprint("x=", p.X, ", y=", p.Y)
}
