package spade

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"
)

// MinPointSpacing is the default horizontal distance within which a new
// point on a PointSurface collides with an existing one.
const MinPointSpacing = 0.25

var (
	ErrNoTransaction     = errors.New("surface edit requires an open transaction")
	ErrTransactionOpen   = errors.New("surface already has an open transaction")
	ErrTransactionClosed = errors.New("transaction already finished")
)

// A ShapeEditor adds elevation points to an editable surface, such as a
// host application's slab shape editor.
type ShapeEditor interface {
	AddPoint(c model3d.Coord3D) error
}

// A Transaction groups surface edits so they can be undone together.
type Transaction interface {
	Commit() error
	Rollback() error
}

// Apply adds every point to the editor in order and commits tx.
//
// If any point fails, tx is rolled back and no points are reported as
// added.
func Apply(tx Transaction, editor ShapeEditor, points []model3d.Coord3D) (int, error) {
	for i, p := range points {
		if err := editor.AddPoint(p); err != nil {
			err = errors.Wrapf(err, "apply point %d of %d", i, len(points))
			if rbErr := tx.Rollback(); rbErr != nil {
				return 0, errors.Wrapf(rbErr, "rollback after error (%s)", err)
			}
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "apply points")
	}
	return len(points), nil
}

// A PointSurface is an in-memory ShapeEditor holding a cloud of elevation
// points.
//
// A point added within Spacing of an existing point (measured in the XY
// plane) collides with it. By default the existing point is moved to the
// new elevation; with SkipNear set the new point is dropped and the
// surface keeps its old elevation there.
//
// A PointSurface is not safe for concurrent use.
type PointSurface struct {
	// Spacing is the collision distance. If zero, MinPointSpacing is used.
	Spacing float64

	// SkipNear drops colliding points instead of merging them.
	SkipNear bool

	points   []model3d.Coord3D
	snapshot []model3d.Coord3D
	open     bool
}

// NewPointSurface creates a surface with initial points.
func NewPointSurface(points ...model3d.Coord3D) *PointSurface {
	return &PointSurface{points: slices.Clone(points)}
}

// Points returns a copy of the surface's points.
func (p *PointSurface) Points() []model3d.Coord3D {
	return slices.Clone(p.points)
}

func (p *PointSurface) Len() int {
	return len(p.points)
}

// Begin opens a transaction. Only one transaction may be open at once.
func (p *PointSurface) Begin() (Transaction, error) {
	if p.open {
		return nil, ErrTransactionOpen
	}
	p.open = true
	p.snapshot = slices.Clone(p.points)
	return &surfaceTransaction{surface: p}, nil
}

// AddPoint adds, merges, or skips a point. A transaction must be open.
func (p *PointSurface) AddPoint(c model3d.Coord3D) error {
	if !p.open {
		return ErrNoTransaction
	}
	for _, x := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Errorf("invalid point: %v", c)
		}
	}
	if idx := p.nearest(c); idx >= 0 {
		if !p.SkipNear {
			p.points[idx].Z = c.Z
		}
	} else {
		p.points = append(p.points, c)
	}
	return nil
}

func (p *PointSurface) nearest(c model3d.Coord3D) int {
	spacing := p.Spacing
	if spacing == 0 {
		spacing = MinPointSpacing
	}
	flat := model2d.XY(c.X, c.Y)
	best := -1
	bestDist := spacing
	for i, x := range p.points {
		if d := flat.Dist(model2d.XY(x.X, x.Y)); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

type surfaceTransaction struct {
	surface *PointSurface
	done    bool
}

func (s *surfaceTransaction) Commit() error {
	if s.done {
		return ErrTransactionClosed
	}
	s.done = true
	s.surface.open = false
	s.surface.snapshot = nil
	return nil
}

func (s *surfaceTransaction) Rollback() error {
	if s.done {
		return ErrTransactionClosed
	}
	s.done = true
	s.surface.open = false
	s.surface.points = s.surface.snapshot
	s.surface.snapshot = nil
	return nil
}
