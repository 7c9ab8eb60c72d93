package term

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mgy583/Solar-System-Simulation/internal/transform"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

var trailColor = colorful.Color{R: 0.25, G: 0.25, B: 0.3}

// projector maps world points onto the terminal grid as seen from a camera.
type projector struct {
	cam         world.Transform
	cx, cy      float64
	scale       float64 // rows per unit of view-plane height
	aspect      float64
	minDistance float64
}

func newProjector(cam world.Transform, cols, rows int, cfg Config) projector {
	return projector{
		cam:         cam,
		cx:          float64(cols / 2),
		cy:          float64(rows / 2),
		scale:       float64(rows) / 2 / math.Tan(cfg.FOV/2),
		aspect:      cfg.CellAspect,
		minDistance: cfg.MinDistance,
	}
}

// project returns the cell for p and its depth along the view direction.
// ok is false for points behind the camera or nearer than minDistance.
func (pr projector) project(p mgl64.Vec3) (x, y int, depth float64, ok bool) {
	local := pr.cam.ToLocal(p)
	depth = -local.Z()
	if depth < pr.minDistance || math.IsNaN(depth) {
		return 0, 0, 0, false
	}
	sx := pr.cx + local.X()/depth*pr.scale*pr.aspect
	sy := pr.cy - local.Y()/depth*pr.scale
	if math.IsNaN(sx) || math.IsNaN(sy) || math.Abs(sx) > 1e6 || math.Abs(sy) > 1e6 {
		return 0, 0, 0, false
	}
	return int(math.Round(sx)), int(math.Round(sy)), depth, true
}

// radius returns the apparent radius in rows of a sphere at depth.
func (pr projector) radius(r, depth float64) float64 {
	return r / depth * pr.scale
}

type sprite struct {
	x, y  int
	depth float64
	glyph rune
	style tcell.Style
}

func styleFor(c colorful.Color) tcell.Style {
	r, g, b := c.Clamped().RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// bodyColor is the emissive colour for self-lit bodies, the surface colour
// otherwise.
func bodyColor(a *world.Appearance) colorful.Color {
	if a.Emissive != (colorful.Color{}) {
		return a.Emissive
	}
	return a.Color
}

func glyphFor(b *world.CelestialBody, apparent float64) rune {
	switch {
	case b.IsStar():
		return '@'
	case apparent >= 1:
		return 'O'
	case apparent >= 0.3:
		return 'o'
	default:
		return '.'
	}
}

// draw renders one frame: orbit trails, bodies far to near, and the HUD on
// the last row.
func (h *Host) draw() {
	h.screen.Clear()
	cols, rows := h.screen.Size()
	view := rows - 1
	if cols <= 0 || view <= 0 {
		h.screen.Show()
		return
	}

	_, cam, ok := h.world.Camera()
	if !ok {
		h.screen.Show()
		return
	}
	pr := newProjector(*cam, cols, view, h.cfg)
	inView := func(x, y int) bool { return x >= 0 && x < cols && y >= 0 && y < view }

	if h.cfg.Trails {
		style := styleFor(trailColor)
		for _, path := range h.paths {
			for _, p := range path {
				if x, y, _, ok := pr.project(p); ok && inView(x, y) {
					h.screen.SetContent(x, y, '·', nil, style)
				}
			}
		}
	}

	var sprites []sprite
	var visible int
	h.world.EachVisible(func(_ world.Name, t *world.Transform, b *world.CelestialBody, a *world.Appearance) {
		x, y, depth, ok := pr.project(t.Translation)
		if !ok || !inView(x, y) {
			return
		}
		sprites = append(sprites, sprite{
			x: x, y: y, depth: depth,
			glyph: glyphFor(b, pr.radius(a.MeshRadius, depth)),
			style: styleFor(bodyColor(a)).Bold(b.IsStar()),
		})
	})
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].depth > sprites[j].depth })
	for _, s := range sprites {
		h.screen.SetContent(s.x, s.y, s.glyph, nil, s.style)
		visible++
	}

	h.drawHUD(*cam, visible, cols, rows-1)
	h.screen.Show()
}

func (h *Host) drawHUD(cam world.Transform, visible, cols, row int) {
	yaw, pitch, _ := transform.EulerYXZ(cam.Rotation)
	pos := cam.Translation
	line := fmt.Sprintf("pos %.1f %.1f %.1f  yaw %.2f  pitch %.2f  bodies %d  frame %d  [wasd space c, mouse, q]",
		pos.X(), pos.Y(), pos.Z(), yaw, pitch, visible, h.frames)

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		h.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		h.screen.SetContent(x, row, ' ', nil, style)
	}
}
