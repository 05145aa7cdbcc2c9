package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/spade-grade/spade"
)

func main() {
	var unitsName string
	flag.StringVar(&unitsName, "units", "ft", "display units (ft, in, m, cm, mm)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: profile_info [flags] <profile>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	units, err := spade.ParseLengthUnit(unitsName)
	essentials.Must(err)

	profile, err := spade.LoadProfile(args[0])
	essentials.Must(err)
	if len(profile) == 0 {
		essentials.Die("profile is empty")
	}

	center := profile.CenterLine()
	var length float64
	for i := 1; i < len(center); i++ {
		length += center[i-1].Dist(center[i])
	}
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, c := range profile {
		minZ = math.Min(minZ, c.Z)
		maxZ = math.Max(maxZ, c.Z)
	}

	disp := func(v float64) string {
		return fmt.Sprintf("%.3f %s", units.FromInternal(v), units.Symbol())
	}
	fmt.Println("Number of samples:", profile.NumSamples())
	fmt.Println("Number of points:", len(profile))
	fmt.Println("Center line length:", disp(length))
	fmt.Println("Elevation range:", disp(minZ), "to", disp(maxZ))
	fmt.Println("Grade:", spade.MeasureSlope(center[0], profile.End()))
}
