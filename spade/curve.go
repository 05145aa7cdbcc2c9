package spade

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"
)

const DefaultCatmullRomTension = 0.5

// A Curve is a path that can be evaluated at a normalized parameter t in the
// range [0, 1].
//
// Implementations must be safe to query from multiple Goroutines.
type Curve interface {
	// Length is the total arc length of the curve.
	Length() float64

	// Eval returns the position on the curve at parameter t.
	Eval(t float64) model3d.Coord3D

	// Tangent returns the unit direction of the curve at parameter t, or
	// the zero vector if the direction is undefined.
	Tangent(t float64) model3d.Coord3D
}

// Endpoints returns the positions of a curve at t=0 and t=1.
func Endpoints(c Curve) (model3d.Coord3D, model3d.Coord3D) {
	return c.Eval(0), c.Eval(1)
}

// IsReversed checks if the end of the curve (t=1) is closer to start than
// the beginning of the curve (t=0), in which case a path starting at start
// walks the curve backwards.
//
// This only looks at the endpoints, so it may be misleading for curves that
// wander back towards start.
func IsReversed(start model3d.Coord3D, c Curve) bool {
	p0, p1 := Endpoints(c)
	return start.Dist(p1) < start.Dist(p0)
}

// A Segment is a straight line Curve between two points.
type Segment [2]model3d.Coord3D

func (s Segment) Length() float64 {
	return s[0].Dist(s[1])
}

func (s Segment) Eval(t float64) model3d.Coord3D {
	return s[0].Add(s[1].Sub(s[0]).Scale(t))
}

func (s Segment) Tangent(t float64) model3d.Coord3D {
	return unitOrZero(s[1].Sub(s[0]))
}

// A Polyline is a Curve through a chain of points, parameterized by arc
// length so that Eval(0.5) is halfway along the total length.
type Polyline struct {
	points []model3d.Coord3D

	// cumulative[i] is the arc length from points[0] to points[i].
	cumulative []float64
}

// NewPolyline creates a polyline through the points.
//
// Consecutive duplicate points are dropped. At least two distinct points are
// required.
func NewPolyline(points ...model3d.Coord3D) (*Polyline, error) {
	var pts []model3d.Coord3D
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			return nil, errors.Wrap(ErrInvalidCurve, "create polyline: NaN coordinate")
		}
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, errors.Wrapf(ErrInvalidCurve,
			"create polyline: need two distinct points, got %d", len(pts))
	}
	cumulative := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cumulative[i] = cumulative[i-1] + pts[i-1].Dist(pts[i])
	}
	return &Polyline{points: pts, cumulative: cumulative}, nil
}

// Points returns a copy of the polyline's vertices.
func (p *Polyline) Points() []model3d.Coord3D {
	return slices.Clone(p.points)
}

func (p *Polyline) Length() float64 {
	return p.cumulative[len(p.cumulative)-1]
}

func (p *Polyline) Eval(t float64) model3d.Coord3D {
	idx, frac := p.locate(t)
	return p.points[idx].Add(p.points[idx+1].Sub(p.points[idx]).Scale(frac))
}

// Tangent returns the direction of the segment containing t. At an interior
// vertex, the incoming segment is used.
func (p *Polyline) Tangent(t float64) model3d.Coord3D {
	idx, _ := p.locate(t)
	return unitOrZero(p.points[idx+1].Sub(p.points[idx]))
}

// locate finds the segment index and the fraction along that segment for
// the normalized parameter t.
func (p *Polyline) locate(t float64) (int, float64) {
	target := clamp(t, 0, 1) * p.Length()
	idx, _ := slices.BinarySearch(p.cumulative, target)
	seg := idx - 1
	if seg < 0 {
		seg = 0
	} else if seg > len(p.points)-2 {
		seg = len(p.points) - 2
	}
	segLen := p.cumulative[seg+1] - p.cumulative[seg]
	return seg, clamp((target-p.cumulative[seg])/segLen, 0, 1)
}

// NewCatmullRom creates a smooth polyline passing through every control
// point, using a cardinal spline with the given tension.
//
// The spline is flattened into samplesPerSegment pieces between each pair
// of control points. A tension of 0.5 gives a standard Catmull-Rom spline.
func NewCatmullRom(
	control []model3d.Coord3D,
	samplesPerSegment int,
	tension float64,
) (*Polyline, error) {
	n := len(control)
	if n < 3 {
		return NewPolyline(control...)
	}
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}

	// Phantom endpoints reflect the first and last segments.
	extended := make([]model3d.Coord3D, n+2)
	extended[0] = control[0].Add(control[0].Sub(control[1]))
	copy(extended[1:], control)
	extended[n+1] = control[n-1].Add(control[n-1].Sub(control[n-2]))

	pts := make([]model3d.Coord3D, 0, (n-1)*samplesPerSegment+1)
	for i := 1; i < n; i++ {
		p0, p1, p2, p3 := extended[i-1], extended[i], extended[i+1], extended[i+2]
		for j := 0; j < samplesPerSegment; j++ {
			t := float64(j) / float64(samplesPerSegment)
			pts = append(pts, cardinalPoint(p0, p1, p2, p3, t, tension))
		}
	}
	pts = append(pts, control[n-1])

	return NewPolyline(pts...)
}

func cardinalPoint(p0, p1, p2, p3 model3d.Coord3D, t, s float64) model3d.Coord3D {
	t2 := t * t
	t3 := t2 * t

	c1 := p2.Sub(p0).Scale(s)
	c2 := p0.Scale(2 * s).Add(p1.Scale(s - 3)).Add(p2.Scale(3 - 2*s)).Sub(p3.Scale(s))
	c3 := p0.Scale(-s).Add(p1.Scale(2 - s)).Add(p2.Scale(s - 2)).Add(p3.Scale(s))

	return p1.Add(c1.Scale(t)).Add(c2.Scale(t2)).Add(c3.Scale(t3))
}

func unitOrZero(c model3d.Coord3D) model3d.Coord3D {
	n := c.Norm()
	if n == 0 || math.IsNaN(n) {
		return model3d.Origin
	}
	return c.Scale(1 / n)
}
