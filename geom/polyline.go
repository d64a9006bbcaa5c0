package geom

// Polyline is a closed loop of world points: the last point connects back
// to the first. Level content owns it; followers only read it.
type Polyline struct {
	points []Vec3
}

func NewPolyline(points ...Vec3) *Polyline {
	return &Polyline{points: append([]Vec3(nil), points...)}
}

func (p *Polyline) Count() int {
	if p == nil {
		return 0
	}
	return len(p.points)
}

// PointAt returns the point at index i, wrapping around the loop. An empty
// polyline returns the zero vector.
func (p *Polyline) PointAt(i int) Vec3 {
	n := p.Count()
	if n == 0 {
		return Vec3{}
	}
	i %= n
	if i < 0 {
		i += n
	}
	return p.points[i]
}

// Points returns a copy of the loop's points.
func (p *Polyline) Points() []Vec3 {
	if p == nil {
		return nil
	}
	return append([]Vec3(nil), p.points...)
}

// NearestPoint projects pos onto the loop. It returns the closest point on
// any segment and the input key: i + t for a point t of the way along the
// segment from point i to point i+1. Equal distances keep the earliest
// segment. ok is false for an empty polyline.
func (p *Polyline) NearestPoint(pos Vec3) (point Vec3, key float64, ok bool) {
	n := p.Count()
	switch n {
	case 0:
		return Vec3{}, 0, false
	case 1:
		return p.points[0], 0, true
	}

	bestDist := -1.0
	for i := 0; i < n; i++ {
		a := p.points[i]
		b := p.points[(i+1)%n]
		t := segmentParam(pos, a, b)
		c := a.Add(b.Sub(a).Mul(t))
		d := c.Sub(pos).LenSqr()
		if bestDist < 0 || d < bestDist {
			bestDist = d
			point = c
			key = float64(i) + t
		}
	}
	return point, key, true
}

func segmentParam(pos, a, b Vec3) float64 {
	ab := b.Sub(a)
	lenSq := ab.LenSqr()
	if lenSq == 0 {
		return 0
	}
	t := pos.Sub(a).Dot(ab) / lenSq
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
