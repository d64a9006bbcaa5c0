// Package geom holds the engine-independent geometry used by patrolling
// enemies and travelling collectibles.
package geom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Vec3 is a world-space position, Z up.
type Vec3 = mgl64.Vec3

func V(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Planar drops the height of v.
func Planar(v Vec3) cp.Vector {
	return cp.Vector{X: v[0], Y: v[1]}
}

// FromPlanar lifts a planar vector back into world space at height z.
func FromPlanar(p cp.Vector, z float64) Vec3 {
	return Vec3{p.X, p.Y, z}
}

// NearlyEqual compares two positions component-wise within tol.
func NearlyEqual(a, b Vec3, tol float64) bool {
	return a.ApproxEqualThreshold(b, tol)
}
