package spade

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// VerticalRunTolerance is the horizontal run below which two points are
// considered vertically aligned by MeasureSlope.
const VerticalRunTolerance = 0.001

// A Mode determines how the elevation at the end of a path is chosen.
type Mode int

const (
	// ModeStakes grades between the elevations of two stakes.
	ModeStakes Mode = iota

	// ModeSlope grades from the start stake at a fixed percent slope.
	ModeSlope
)

// ParseMode parses "stakes" or "slope".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stakes", "":
		return ModeStakes, nil
	case "slope":
		return ModeSlope, nil
	}
	return 0, errors.Errorf("unknown grading mode: %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeStakes:
		return "stakes"
	case ModeSlope:
		return "slope"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeStakes && m != ModeSlope {
		return nil, errors.Errorf("cannot marshal grading mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ResolveEnd computes the end point to pass to Generate.
//
// In ModeStakes, end must be non-nil and is returned as-is.
//
// In ModeSlope, the end elevation is start.Z plus slopePercent percent of
// the curve length. The horizontal position comes from end if it is given,
// otherwise from the endpoint of the curve farthest along the path.
func ResolveEnd(
	start model3d.Coord3D,
	end *model3d.Coord3D,
	curve Curve,
	mode Mode,
	slopePercent float64,
) (model3d.Coord3D, error) {
	switch mode {
	case ModeStakes:
		if end == nil {
			return model3d.Coord3D{}, ErrMissingEnd
		}
		return *end, nil
	case ModeSlope:
		length := curve.Length()
		if !(length > 0) || math.IsInf(length, 0) {
			return model3d.Coord3D{}, errors.Wrap(ErrInvalidCurve, "resolve end")
		}
		var res model3d.Coord3D
		if end != nil {
			res = *end
		} else if IsReversed(start, curve) {
			res = curve.Eval(0)
		} else {
			res = curve.Eval(1)
		}
		res.Z = start.Z + length*slopePercent/100
		return res, nil
	}
	return model3d.Coord3D{}, errors.Errorf("resolve end: unknown mode %v", mode)
}

// A SlopeReport describes the grade from one point to another.
type SlopeReport struct {
	// Run is the horizontal distance between the points.
	Run float64

	// Rise is the change in elevation, positive when going uphill.
	Rise float64

	// Percent is 100*Rise/Run, or 0 if Vertical.
	Percent float64

	// Degrees is the angle above the horizontal, in [-90, 90].
	Degrees float64

	// Vertical is true if Run is below VerticalRunTolerance.
	Vertical bool
}

// MeasureSlope computes the grade walking from a to b.
func MeasureSlope(a, b model3d.Coord3D) SlopeReport {
	run := model2d.XY(a.X, a.Y).Dist(model2d.XY(b.X, b.Y))
	rise := b.Z - a.Z
	res := SlopeReport{
		Run:     run,
		Rise:    rise,
		Degrees: math.Atan2(rise, run) * 180 / math.Pi,
	}
	if run < VerticalRunTolerance {
		res.Vertical = true
	} else {
		res.Percent = 100 * rise / run
	}
	return res
}

// Ratio formats the grade as "1:N" (N units of run per unit of rise), or
// "-" when the rise is within VerticalRunTolerance or the run is vertical.
func (s SlopeReport) Ratio() string {
	if s.Vertical || math.Abs(s.Rise) <= VerticalRunTolerance {
		return "-"
	}
	return fmt.Sprintf("1:%.2f", s.Run/math.Abs(s.Rise))
}

func (s SlopeReport) String() string {
	if s.Vertical {
		return fmt.Sprintf("vertical (rise %.3f)", s.Rise)
	}
	return fmt.Sprintf("%.2f%% (%.2f deg, run %.3f, rise %.3f)", s.Percent, s.Degrees, s.Run, s.Rise)
}
