package spade

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

var (
	// ErrInvalidCurve is returned when a curve has no usable length, making
	// elevation interpolation undefined.
	ErrInvalidCurve = errors.New("curve length must be positive and finite")

	// ErrInvalidStep is returned when the sampling step would never advance
	// along the curve.
	ErrInvalidStep = errors.New("sampling step must be positive and finite")

	// ErrMissingEnd is returned when an end stake is required but absent.
	ErrMissingEnd = errors.New("end stake is required in stakes mode")
)

// A DegenerateTangentError is returned by Generate when the curve's tangent
// at a sample has no horizontal component, so there is no left or right.
//
// Callers can recover by setting Options.SkipDegenerate.
type DegenerateTangentError struct {
	// Distance is the arc-length distance of the sample from the start.
	Distance float64

	// Param is the normalized curve parameter of the sample.
	Param float64

	Tangent model3d.Coord3D
}

func (d *DegenerateTangentError) Error() string {
	return fmt.Sprintf(
		"degenerate tangent %v at distance %f (t=%f): no horizontal direction",
		d.Tangent, d.Distance, d.Param,
	)
}
