package spade

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func TestGenerateStraightLine(t *testing.T) {
	curve := Segment{model3d.XYZ(0, 0, 0), model3d.XYZ(10, 0, 0)}
	start := model3d.XYZ(0, 0, 0)
	end := model3d.XYZ(10, 0, 5)
	profile, err := Generate(start, end, curve, &Options{Width: 6, Bank: 0, Step: 5})
	if err != nil {
		t.Fatal(err)
	}
	expected := Profile{
		model3d.XYZ(0, 0, 0), model3d.XYZ(0, 3, 0), model3d.XYZ(0, -3, 0),
		model3d.XYZ(5, 0, 2.5), model3d.XYZ(5, 3, 2.5), model3d.XYZ(5, -3, 2.5),
		model3d.XYZ(10, 0, 5), model3d.XYZ(10, 3, 5), model3d.XYZ(10, -3, 5),
		model3d.XYZ(10, 0, 5),
	}
	if len(profile) != len(expected) {
		t.Fatalf("expected %d points but got %d", len(expected), len(profile))
	}
	for i, x := range expected {
		if a := profile[i]; a.Dist(x) > 1e-8 {
			t.Errorf("point %d: expected %v but got %v", i, x, a)
		}
	}
}

func TestGenerateDefaultOptions(t *testing.T) {
	curve := Segment{model3d.XYZ(0, 0, 0), model3d.XYZ(0, 9, 0)}
	profile, err := Generate(model3d.XYZ(0, 0, 1), model3d.XYZ(0, 9, 1), curve, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Samples at 0, 2, 4, 6, 8.
	if n := profile.NumSamples(); n != 5 {
		t.Fatalf("expected 5 samples but got %d", n)
	}
	for _, s := range profile.Samples() {
		checkSymmetric(t, s, DefaultWidth, DefaultBank)
	}
}

func TestGenerateCount(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	steps := []float64{0.25, 0.5, 1, 2, 4}
	for i := 0; i < 100; i++ {
		curve := randomPolyline(r)
		step := steps[r.Intn(len(steps))]
		start, end := Endpoints(curve)
		start.Z = r.NormFloat64()
		end.Z = r.NormFloat64()
		profile, err := Generate(start, end, curve, &Options{Width: 3, Step: step})
		if err != nil {
			t.Fatal(err)
		}
		k := int(math.Floor(curve.Length()/step)) + 1
		if len(profile) != 3*k+1 {
			t.Fatalf("length %f step %f: expected %d points but got %d",
				curve.Length(), step, 3*k+1, len(profile))
		}
		if profile.End() != end {
			t.Fatalf("expected end pin %v but got %v", end, profile.End())
		}
	}
}

func TestGenerateElevationAndRails(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		curve := randomPolyline(r)
		start, end := Endpoints(curve)
		start.Z = r.NormFloat64() * 3
		end.Z = r.NormFloat64() * 3
		opts := &Options{
			Width: r.Float64()*10 + 0.1,
			Bank:  r.NormFloat64(),
			Step:  r.Float64() + 0.1,
		}
		profile, err := Generate(start, end, curve, opts)
		if err != nil {
			t.Fatal(err)
		}
		slope := (end.Z - start.Z) / curve.Length()
		samples := profile.Samples()
		for j, s := range samples {
			checkSymmetric(t, s, opts.Width, opts.Bank)
			expectedZ := start.Z + float64(j)*opts.Step*slope
			if math.Abs(s.Center.Z-expectedZ) > 1e-8 {
				t.Fatalf("sample %d: expected elevation %f but got %f", j, expectedZ, s.Center.Z)
			}
			if j > 0 {
				d1, d2 := float64(j-1)*opts.Step, float64(j)*opts.Step
				actual := (s.Center.Z - samples[j-1].Center.Z) / (d2 - d1)
				if math.Abs(actual-slope) > 1e-6 {
					t.Fatalf("sample %d: expected slope %f but got %f", j, slope, actual)
				}
			}
		}
	}
}

func TestGenerateReversed(t *testing.T) {
	forward := Segment{model3d.XYZ(0, 0, 0), model3d.XYZ(7, 0, 0)}
	backward := Segment{forward[1], forward[0]}
	start := model3d.XYZ(0, 0, 2)
	end := model3d.XYZ(7, 0, 9)

	p1, err := Generate(start, end, forward, nil)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Generate(start, end, backward, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(p1) != len(p2) {
		t.Fatalf("point counts differ: %d and %d", len(p1), len(p2))
	}
	s1, s2 := p1.Samples(), p2.Samples()
	for i := range s1 {
		// Both walk away from start, so centers match even though the
		// curves are parameterized in opposite directions.
		if s1[i].Center.Dist(s2[i].Center) > 1e-8 {
			t.Errorf("sample %d: centers %v and %v differ", i, s1[i].Center, s2[i].Center)
		}
	}
	if s2[0].Center.X != 0 {
		t.Errorf("reversed walk should start at x=0 but got %v", s2[0].Center)
	}

	// Starting next to the far end flips the direction of interpolation.
	p3, err := Generate(end, start, forward, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(p3) != len(p1) {
		t.Fatalf("point counts differ: %d and %d", len(p1), len(p3))
	}
	if c := p3.Samples()[0].Center; c.Dist(end) > 1e-8 {
		t.Errorf("expected first center at %v but got %v", end, c)
	}
}

func TestGenerateErrors(t *testing.T) {
	zero := Segment{model3d.XYZ(1, 1, 1), model3d.XYZ(1, 1, 1)}
	_, err := Generate(model3d.Origin, model3d.X(1), zero, nil)
	if !errors.Is(err, ErrInvalidCurve) {
		t.Errorf("expected ErrInvalidCurve but got %v", err)
	}

	curve := Segment{model3d.Origin, model3d.X(10)}
	for _, step := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = Generate(model3d.Origin, model3d.X(10), curve, &Options{Step: step})
		if !errors.Is(err, ErrInvalidStep) {
			t.Errorf("step %f: expected ErrInvalidStep but got %v", step, err)
		}
	}

	_, err = Generate(model3d.Origin, model3d.X(10), curve, &Options{Step: 1e-12})
	if !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep for tiny step but got %v", err)
	}
}

func TestGenerateDegenerateTangent(t *testing.T) {
	curve := Segment{model3d.Origin, model3d.Z(10)}
	_, err := Generate(model3d.Origin, model3d.Z(10), curve, nil)
	var degenerate *DegenerateTangentError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateTangentError but got %v", err)
	}
	if degenerate.Distance != 0 {
		t.Errorf("expected failure at first sample but got distance %f", degenerate.Distance)
	}

	profile, err := Generate(model3d.Origin, model3d.Z(10), curve, &Options{
		Width:          6,
		Step:           2,
		SkipDegenerate: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(profile) != 1 || profile.End() != model3d.Z(10) {
		t.Errorf("expected only the end pin but got %v", profile)
	}

	// Only the vertical part of the path is skipped.
	mixed, err := NewPolyline(model3d.Origin, model3d.Z(4), model3d.XYZ(4, 0, 4))
	if err != nil {
		t.Fatal(err)
	}
	profile, err = Generate(model3d.Origin, model3d.XYZ(4, 0, 4), mixed, &Options{
		Width:          2,
		Step:           1,
		SkipDegenerate: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := profile.NumSamples(); n != 4 {
		t.Errorf("expected 4 horizontal samples but got %d", n)
	}
}

func checkSymmetric(t *testing.T, s Sample, width, bank float64) {
	t.Helper()
	flatCenter := model3d.XYZ(s.Center.X, s.Center.Y, 0)
	flatLeft := model3d.XYZ(s.Left.X, s.Left.Y, 0)
	flatRight := model3d.XYZ(s.Right.X, s.Right.Y, 0)
	if d := flatCenter.Dist(flatLeft); math.Abs(d-width/2) > 1e-8 {
		t.Fatalf("left rail is %f from center, expected %f", d, width/2)
	}
	if d := flatCenter.Dist(flatRight); math.Abs(d-width/2) > 1e-8 {
		t.Fatalf("right rail is %f from center, expected %f", d, width/2)
	}
	if math.Abs(s.Left.Z-(s.Center.Z+bank)) > 1e-8 || s.Left.Z != s.Right.Z {
		t.Fatalf("bad rail elevations: center=%f left=%f right=%f bank=%f",
			s.Center.Z, s.Left.Z, s.Right.Z, bank)
	}
}

func randomPolyline(r *rand.Rand) *Polyline {
	points := make([]model3d.Coord3D, r.Intn(5)+2)
	for i := range points {
		points[i] = model3d.XYZ(r.NormFloat64()*10, r.NormFloat64()*10, r.NormFloat64())
	}
	p, err := NewPolyline(points...)
	if err != nil {
		panic(err)
	}
	return p
}

func TestEmptyProfile(t *testing.T) {
	var b bytes.Buffer
	if err := WriteProfile(&b, nil); err != nil {
		t.Fatal(err)
	}
	profile, err := ReadProfile(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(profile) != 0 {
		t.Fatalf("expected empty profile but got %v", profile)
	}
	if n := profile.NumSamples(); n != 0 {
		t.Errorf("expected 0 samples but got %d", n)
	}
	if s := profile.Samples(); len(s) != 0 {
		t.Errorf("expected no samples but got %v", s)
	}
	if c := profile.CenterLine(); len(c) != 0 {
		t.Errorf("expected empty center line but got %v", c)
	}
	if e := profile.Exaggerate(3); len(e) != 0 {
		t.Errorf("expected empty exaggerated profile but got %v", e)
	}
}

func TestProfileExaggerate(t *testing.T) {
	curve := Segment{model3d.XYZ(0, 0, 0), model3d.XYZ(10, 0, 0)}
	profile, err := Generate(model3d.XYZ(0, 0, 2), model3d.XYZ(10, 0, 3), curve,
		&Options{Width: 4, Bank: 0.5, Step: 5})
	if err != nil {
		t.Fatal(err)
	}
	scaled := profile.Exaggerate(10)
	if len(scaled) != len(profile) {
		t.Fatalf("expected %d points but got %d", len(profile), len(scaled))
	}
	for i, c := range profile {
		expected := model3d.XYZ(c.X, c.Y, 2+(c.Z-2)*10)
		if scaled[i].Dist(expected) > 1e-8 {
			t.Errorf("point %d: expected %v but got %v", i, expected, scaled[i])
		}
	}
	if profile[0].Z != 2 || profile.End().Z != 3 {
		t.Error("exaggerate modified the original profile")
	}
}
