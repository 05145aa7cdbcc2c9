package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/spade-grade/spade"
)

func main() {
	var unitsName string
	flag.StringVar(&unitsName, "units", "ft", "units of the input and output (ft, in, m, cm, mm)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: find_slope [flags] <x1,y1,z1> <x2,y2,z2>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	units, err := spade.ParseLengthUnit(unitsName)
	essentials.Must(err)

	p1, err := parseCoord(args[0])
	essentials.Must(err)
	p2, err := parseCoord(args[1])
	essentials.Must(err)

	report := spade.MeasureSlope(p1, p2)
	if report.Vertical {
		fmt.Println("Slope: VERTICAL")
	} else {
		fmt.Printf("Slope: %.2f%%\n", report.Percent)
		fmt.Printf("Angle: %.2f deg\n", report.Degrees)
		fmt.Printf("Ratio: %s\n", report.Ratio())
	}
	fmt.Printf("Horizontal distance: %.3f %s\n", report.Run, units.Symbol())
	fmt.Printf("Elevation change: %.3f %s\n", report.Rise, units.Symbol())
}

func parseCoord(s string) (model3d.Coord3D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return model3d.Coord3D{}, errors.Errorf("expected x,y,z but got %q", s)
	}
	var values [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return model3d.Coord3D{}, errors.Wrapf(err, "parse coordinate %q", s)
		}
		values[i] = v
	}
	return model3d.NewCoord3DArray(values), nil
}
