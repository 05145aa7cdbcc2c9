package spade

import (
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSlopePercent = 2.0

	// DefaultSplineSamples is the number of polyline pieces used per
	// control point span when a recipe path is smoothed.
	DefaultSplineSamples = 16
)

// A Recipe stores every input needed to grade one path.
//
// All lengths and coordinates are in Units; the profile produced by
// Profile() is in feet.
type Recipe struct {
	Units LengthUnit `yaml:"units"`
	Width float64    `yaml:"width"`
	Bank  float64    `yaml:"bank"`
	Step  float64    `yaml:"step"`

	Mode Mode `yaml:"mode"`

	// Slope is the grade in percent used in ModeSlope.
	Slope float64 `yaml:"slope"`

	SkipDegenerate bool `yaml:"skip_degenerate,omitempty"`

	// Smooth passes a Catmull-Rom spline through Path instead of
	// connecting the points with straight segments.
	Smooth bool `yaml:"smooth,omitempty"`

	Start model3d.Coord3D   `yaml:"start"`
	End   *model3d.Coord3D  `yaml:"end,omitempty"`
	Path  []model3d.Coord3D `yaml:"path"`
}

// DefaultRecipe creates a recipe with default settings and no geometry.
func DefaultRecipe() *Recipe {
	return &Recipe{
		Units: Feet,
		Width: DefaultWidth,
		Bank:  DefaultBank,
		Step:  DefaultStep,
		Mode:  ModeStakes,
		Slope: DefaultSlopePercent,
	}
}

// LoadRecipe reads a YAML recipe. Missing settings keep their defaults.
func LoadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load recipe")
	}
	r := DefaultRecipe()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, errors.Wrap(err, "load recipe")
	}
	return r, nil
}

// SaveRecipe writes r as YAML.
func SaveRecipe(path string, r *Recipe) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "save recipe")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "save recipe")
	}
	return nil
}

// Options converts the recipe's settings to feet.
func (r *Recipe) Options() *Options {
	return &Options{
		Width:          r.Units.ToInternal(r.Width),
		Bank:           r.Units.ToInternal(r.Bank),
		Step:           r.Units.ToInternal(r.Step),
		SkipDegenerate: r.SkipDegenerate,
	}
}

// Curve creates the path curve in feet.
func (r *Recipe) Curve() (Curve, error) {
	if !r.Units.valid() {
		return nil, errors.Errorf("recipe curve: unknown length unit %d", int(r.Units))
	}
	path := make([]model3d.Coord3D, len(r.Path))
	for i, c := range r.Path {
		path[i] = r.toInternal(c)
	}
	if len(path) == 2 && path[0] != path[1] {
		return Segment{path[0], path[1]}, nil
	}
	var res *Polyline
	var err error
	if r.Smooth {
		res, err = NewCatmullRom(path, DefaultSplineSamples, DefaultCatmullRomTension)
	} else {
		res, err = NewPolyline(path...)
	}
	if err != nil {
		return nil, errors.Wrap(err, "recipe curve")
	}
	return res, nil
}

// Profile generates the spade profile described by the recipe, in feet.
func (r *Recipe) Profile() (Profile, error) {
	curve, err := r.Curve()
	if err != nil {
		return nil, err
	}
	start := r.toInternal(r.Start)
	var end *model3d.Coord3D
	if r.End != nil {
		e := r.toInternal(*r.End)
		end = &e
	}
	endPt, err := ResolveEnd(start, end, curve, r.Mode, r.Slope)
	if err != nil {
		return nil, errors.Wrap(err, "recipe profile")
	}
	return Generate(start, endPt, curve, r.Options())
}

func (r *Recipe) toInternal(c model3d.Coord3D) model3d.Coord3D {
	return c.Scale(r.Units.ToInternal(1))
}
