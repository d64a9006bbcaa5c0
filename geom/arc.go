package geom

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Defaults for the synthetic point every arc passes through, measured from
// the start: ThroughU along the ground towards the target, ThroughZ up.
const (
	DefaultThroughU = 50.0
	DefaultThroughZ = 50.0
)

const planarEpsilon = 1e-6

var ErrDegenerateArc = errors.New("geom: degenerate arc")

// Arc is the quadratic z(u) = A*u^2 + B*u in the plane spanned by the
// vertical axis and the ground direction from start to target. It always
// passes through the start (u = 0, z = 0).
type Arc struct {
	A float64
	B float64
}

// SolveDefaultArc solves an arc through the default synthetic point.
func SolveDefaultArc(start, target Vec3) (Arc, error) {
	return SolveArc(start, target, DefaultThroughU, DefaultThroughZ)
}

// SolveArc fits the arc through (0, 0), the target and (throughU, throughZ).
// It fails with ErrDegenerateArc when the target sits on top of the start,
// or when the target's ground distance equals throughU, because then the two
// constraint rows are parallel.
func SolveArc(start, target Vec3, throughU, throughZ float64) (Arc, error) {
	toTarget := target.Sub(start)
	u := Planar(toTarget).Length()
	z := toTarget[2]

	if u < planarEpsilon || throughU < planarEpsilon {
		return Arc{}, ErrDegenerateArc
	}
	if math.Abs(u-throughU) < planarEpsilon {
		return Arc{}, ErrDegenerateArc
	}

	um := mgl64.Mat2FromRows(
		mgl64.Vec2{u * u, u},
		mgl64.Vec2{throughU * throughU, throughU},
	)
	if math.Abs(um.Det()) < planarEpsilon {
		return Arc{}, ErrDegenerateArc
	}

	ab := um.Inv().Mul2x1(mgl64.Vec2{z, throughZ})
	if !finite(ab[0]) || !finite(ab[1]) {
		return Arc{}, ErrDegenerateArc
	}
	return Arc{A: ab[0], B: ab[1]}, nil
}

// Height returns the arc height at ground offset u from the start.
func (a Arc) Height(u float64) float64 {
	return a.A*u*u + a.B*u
}

// At returns the world position after travelling percentage of the ground
// distance from start to target. Percentages outside [0, 1] extrapolate;
// callers clamp when they want bounded travel.
func (a Arc) At(percentage float64, start, target Vec3) Vec3 {
	ground := Planar(target.Sub(start))
	dist := ground.Length()
	if dist < planarEpsilon {
		return start
	}
	offset := percentage * dist
	p := ground.Normalize().Mult(offset)
	return start.Add(FromPlanar(p, a.Height(offset)))
}

// Sample returns count evenly spaced points along the arc, start included,
// target excluded. Used for debug drawing.
func (a Arc) Sample(start, target Vec3, count int) []Vec3 {
	if count <= 0 {
		return nil
	}
	out := make([]Vec3, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, a.At(float64(i)/float64(count), start, target))
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
