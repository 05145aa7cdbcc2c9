package spade

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

const (
	DefaultWidth = 6.0
	DefaultBank  = 0.0
	DefaultStep  = 2.0

	// DegenerateTangentEpsilon is the smallest horizontal tangent magnitude
	// that still defines a left and right direction.
	DegenerateTangentEpsilon = 1e-9

	// MaxSamples bounds the number of samples a single profile may take.
	MaxSamples = 1 << 24
)

// Options controls the shape of a spade profile.
type Options struct {
	// Width is the total lateral spread of the ribbon. Each rail is offset
	// by Width/2 from the center line.
	Width float64

	// Bank is added to the center elevation to get the rail elevation.
	Bank float64

	// Step is the arc-length distance between samples.
	Step float64

	// SkipDegenerate drops samples whose tangent has no horizontal
	// component instead of failing with a *DegenerateTangentError.
	SkipDegenerate bool
}

// DefaultOptions returns a 6ft wide, flat profile sampled every 2ft.
func DefaultOptions() *Options {
	return &Options{
		Width: DefaultWidth,
		Bank:  DefaultBank,
		Step:  DefaultStep,
	}
}

// A Sample is one cross-section of a Profile.
type Sample struct {
	Center model3d.Coord3D
	Left   model3d.Coord3D
	Right  model3d.Coord3D
}

// A Profile is the ordered list of points produced by Generate.
//
// Points come in (center, left, right) triples, one per sample, followed by
// a single trailing point which is exactly the requested end point.
type Profile []model3d.Coord3D

// NumSamples returns the number of cross-sections in the profile.
func (p Profile) NumSamples() int {
	if len(p) == 0 {
		return 0
	}
	return (len(p) - 1) / 3
}

// Samples groups the profile into cross-sections, omitting the end pin.
func (p Profile) Samples() []Sample {
	res := make([]Sample, p.NumSamples())
	for i := range res {
		res[i] = Sample{Center: p[3*i], Left: p[3*i+1], Right: p[3*i+2]}
	}
	return res
}

// End returns the end pin of the profile.
//
// The profile must not be empty. Every profile from Generate has an end
// pin, but one read with LoadProfile may not.
func (p Profile) End() model3d.Coord3D {
	return p[len(p)-1]
}

// CenterLine returns the center of each sample followed by the end pin.
func (p Profile) CenterLine() []model3d.Coord3D {
	res := make([]model3d.Coord3D, 0, p.NumSamples()+1)
	for _, s := range p.Samples() {
		res = append(res, s.Center)
	}
	if len(p) > 0 {
		res = append(res, p.End())
	}
	return res
}

// Exaggerate scales elevations about the lowest point of the profile,
// leaving horizontal positions unchanged.
func (p Profile) Exaggerate(factor float64) Profile {
	if len(p) == 0 {
		return Profile{}
	}
	minZ := p[0].Z
	for _, c := range p[1:] {
		minZ = math.Min(minZ, c.Z)
	}
	res := make(Profile, len(p))
	for i, c := range p {
		res[i] = model3d.XYZ(c.X, c.Y, minZ+(c.Z-minZ)*factor)
	}
	return res
}

// Generate walks the curve from start at fixed arc-length steps and creates
// a spade profile.
//
// The elevation at distance d along the curve is start.Z + d*slope, where
// slope is the total rise from start to end divided by the curve length.
// The curve is walked backwards if its t=1 endpoint is closer to start.
//
// If opts is nil, DefaultOptions() is used.
func Generate(start, end model3d.Coord3D, curve Curve, opts *Options) (Profile, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	length := curve.Length()
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, errors.Wrapf(ErrInvalidCurve, "generate profile: length %v", length)
	}
	step := opts.Step
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, errors.Wrapf(ErrInvalidStep, "generate profile: step %v", step)
	}
	numSamples := math.Floor(length/step) + 1
	if numSamples > MaxSamples {
		return nil, errors.Wrapf(ErrInvalidStep,
			"generate profile: step %v yields %.0f samples", step, numSamples)
	}

	reversed := IsReversed(start, curve)
	slope := (end.Z - start.Z) / length
	offset := opts.Width / 2

	res := make(Profile, 0, int(numSamples)*3+1)
	for i := 0; i < int(numSamples); i++ {
		dist := float64(i) * step
		t := clamp(dist/length, 0, 1)
		if reversed {
			t = 1 - t
		}

		pos := curve.Eval(t)
		tangent := curve.Tangent(t)
		normal := model3d.XYZ(-tangent.Y, tangent.X, 0)
		n := normal.Norm()
		if !(n >= DegenerateTangentEpsilon) {
			if opts.SkipDegenerate {
				continue
			}
			return nil, &DegenerateTangentError{Distance: dist, Param: t, Tangent: tangent}
		}
		normal = normal.Scale(offset / n)

		centerZ := start.Z + dist*slope
		bankZ := centerZ + opts.Bank

		left := pos.Add(normal)
		right := pos.Sub(normal)
		res = append(
			res,
			model3d.XYZ(pos.X, pos.Y, centerZ),
			model3d.XYZ(left.X, left.Y, bankZ),
			model3d.XYZ(right.X, right.Y, bankZ),
		)
	}

	// The last sample may fall short of the end, so pin it exactly.
	return append(res, end), nil
}
