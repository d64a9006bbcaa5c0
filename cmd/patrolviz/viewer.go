package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/patrol"
	"github.com/milk9111/rcai/prefabs"
)

const (
	screenWidth  = 960
	screenHeight = 720

	originX = 120.0
	originY = 140.0

	insetX = 560.0
	insetY = 480.0
	insetW = 380.0
	insetH = 220.0

	arcSamples = 24
)

var (
	backdrop = color.RGBA{R: 18, G: 22, B: 30, A: 255}
	insetBG  = color.RGBA{R: 28, G: 32, B: 44, A: 255}
)

// viewer draws one controller's patrol path with the tracker cursor, the
// mouse's projection onto the path and the arc a collectible would fly from
// the path's first point to the mouse.
type viewer struct {
	prefab  string
	path    *geom.Polyline
	tracker *patrol.Tracker

	mouse   geom.Vec3
	nearest geom.Vec3
	index   uint8
	onPath  bool

	arc    geom.Arc
	arcErr error
}

func newViewer(prefab string) (*viewer, error) {
	spec, err := prefabs.LoadControllerSpec(prefab)
	if err != nil {
		return nil, err
	}
	if len(spec.Patrol) == 0 {
		return nil, fmt.Errorf("patrolviz: %s has no patrol points", prefab)
	}

	points := make([]geom.Vec3, 0, len(spec.Patrol))
	for _, p := range spec.Patrol {
		points = append(points, geom.V(p.X, p.Y, p.Z))
	}
	path := geom.NewPolyline(points...)
	return &viewer{
		prefab:  prefab,
		path:    path,
		tracker: patrol.NewTracker(path),
	}, nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		v.tracker.AdvanceToNext()
	}

	mx, my := ebiten.CursorPosition()
	v.mouse = geom.V(float64(mx)-originX, float64(my)-originY, 0)
	v.nearest, v.index, v.onPath = v.tracker.ClosestPosition(v.mouse)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && v.onPath {
		v.tracker.SetIndex(int(v.index))
	}

	v.arc, v.arcErr = geom.SolveDefaultArc(v.spawn(), v.mouse)
	return nil
}

func (v *viewer) spawn() geom.Vec3 {
	return v.path.PointAt(0)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backdrop)
	v.drawPath(screen)
	v.drawInset(screen)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("prefab: %s  points: %d", v.prefab, v.path.Count()), 8, 8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("cursor: %d  target: %.0f,%.0f", v.tracker.CurrentIndex(),
		v.tracker.CurrentTargetPosition().X(), v.tracker.CurrentTargetPosition().Y()), 8, 26)
	if v.onPath {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("closest: %d at %.0f,%.0f", v.index, v.nearest.X(), v.nearest.Y()), 8, 44)
	}
	ebitenutil.DebugPrintAt(screen, "space: next point  click: jump cursor to closest  esc: quit", 8, screenHeight-22)
}

func (v *viewer) drawPath(screen *ebiten.Image) {
	n := v.path.Count()
	for i := 0; i < n; i++ {
		a := v.path.PointAt(i)
		b := v.path.PointAt((i + 1) % n)
		vector.StrokeLine(screen, sx(a), sy(a), sx(b), sy(b), 2, colornames.Steelblue, true)
		vector.StrokeRect(screen, sx(a)-4, sy(a)-4, 8, 8, 1, colornames.Lightsteelblue, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(i), int(sx(a))+6, int(sy(a))+4)
	}

	target := v.tracker.CurrentTargetPosition()
	vector.DrawFilledCircle(screen, sx(target), sy(target), 7, colornames.Gold, true)

	if v.onPath {
		vector.StrokeLine(screen, sx(v.mouse), sy(v.mouse), sx(v.nearest), sy(v.nearest), 1, colornames.Gray, true)
		vector.DrawFilledCircle(screen, sx(v.nearest), sy(v.nearest), 4, colornames.Tomato, true)
		snapped := v.path.PointAt(int(v.index))
		vector.StrokeRect(screen, sx(snapped)-7, sy(snapped)-7, 14, 14, 2, colornames.Tomato, false)
	}

	spawn := v.spawn()
	if v.arcErr == nil {
		pts := v.arc.Sample(spawn, v.mouse, arcSamples)
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(screen, sx(pts[i-1]), sy(pts[i-1]), sx(pts[i]), sy(pts[i]), 1, colornames.Mediumseagreen, true)
		}
	}
}

// drawInset plots the arc side-on: horizontal distance from the spawn point
// against height.
func (v *viewer) drawInset(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, insetX, insetY, insetW, insetH, insetBG, false)
	vector.StrokeRect(screen, insetX, insetY, insetW, insetH, 1, colornames.Dimgray, false)
	ground := float32(insetY + insetH - 20)
	vector.StrokeLine(screen, insetX, ground, insetX+insetW, ground, 1, colornames.Dimgray, false)

	if v.arcErr != nil {
		msg := v.arcErr.Error()
		if errors.Is(v.arcErr, geom.ErrDegenerateArc) {
			msg = "degenerate arc: straight flight"
		}
		ebitenutil.DebugPrintAt(screen, msg, int(insetX)+8, int(insetY)+8)
		return
	}

	spawn := v.spawn()
	pts := v.arc.Sample(spawn, v.mouse, arcSamples)
	span := geom.Planar(v.mouse).Distance(geom.Planar(spawn))
	peak := 1.0
	for _, p := range pts {
		if p.Z() > peak {
			peak = p.Z()
		}
	}
	scaleU := (insetW - 20) / maxf(span, 1)
	scaleZ := (insetH - 40) / peak

	project := func(p geom.Vec3) (float32, float32) {
		u := geom.Planar(p).Distance(geom.Planar(spawn))
		return float32(insetX + 10 + u*scaleU), ground - float32(p.Z()*scaleZ)
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := project(pts[i-1])
		x1, y1 := project(pts[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Mediumseagreen, true)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("a=%.4f b=%.3f peak=%.0f", v.arc.A, v.arc.B, peak), int(insetX)+8, int(insetY)+8)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func sx(p geom.Vec3) float32 { return float32(originX + p.X()) }
func sy(p geom.Vec3) float32 { return float32(originY + p.Y()) }

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
