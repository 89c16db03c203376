package viz

import (
	"math"

	"github.com/san-kum/articulate/internal/mbody"
)

// Skeleton draws a system's link structure into a canvas, projected on
// the ground x-y plane: a segment from each body's inboard attachment to
// its origin, plus a dot at every body origin.
type Skeleton struct {
	sys    *mbody.System
	canvas *Canvas
}

func NewSkeleton(sys *mbody.System, w, h int) *Skeleton {
	return &Skeleton{sys: sys, canvas: NewCanvas(w, h)}
}

// Render draws the state and returns the canvas text. The window is
// fitted to the mechanism with a margin, keeping the aspect square so
// links do not shear.
func (s *Skeleton) Render(st *mbody.State) string {
	s.canvas.Clear()

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	n := s.sys.NumBodies()
	type seg struct{ x0, y0, x1, y1 float64 }
	segs := make([]seg, 0, n)
	for i := 1; i < n; i++ {
		b := s.sys.Body(mbody.BodyIndex(i))
		origin := st.BodyTransform(b.Index()).P
		pivot := st.BodyTransform(b.Index()).Apply(b.OutboardFrame().P)
		segs = append(segs, seg{pivot.X, pivot.Y, origin.X, origin.Y})
		xmin = math.Min(xmin, math.Min(origin.X, pivot.X))
		xmax = math.Max(xmax, math.Max(origin.X, pivot.X))
		ymin = math.Min(ymin, math.Min(origin.Y, pivot.Y))
		ymax = math.Max(ymax, math.Max(origin.Y, pivot.Y))
	}
	if len(segs) == 0 {
		return s.canvas.String()
	}

	span := math.Max(xmax-xmin, ymax-ymin)
	if span < 1e-3 {
		span = 1e-3
	}
	cx, cy := (xmin+xmax)/2, (ymin+ymax)/2
	half := span/2 + span*0.15
	s.canvas.SetWindow(cx-half, cx+half, cy-half, cy+half)

	for _, g := range segs {
		s.canvas.Line(g.x0, g.y0, g.x1, g.y1)
		s.canvas.Point(g.x1, g.y1)
	}
	return s.canvas.String()
}
