package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/spade-grade/spade"
)

func main() {
	var meshPath string
	var surfacePath string
	var surfaceOutPath string
	var spacing float64
	var skipNear bool
	flag.StringVar(&meshPath, "mesh", "", "optional STL output path for the profile ribbon")
	flag.StringVar(&surfacePath, "surface", "", "optional point file of an existing surface to grade")
	flag.StringVar(&surfaceOutPath, "surface-out", "", "output path for the graded surface points")
	flag.Float64Var(&spacing, "spacing", spade.MinPointSpacing,
		"distance within which profile points collide with surface points (feet)")
	flag.BoolVar(&skipNear, "skip-near", false,
		"drop colliding profile points instead of moving surface points")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: spade_profile [flags] <recipe.yaml> <output.bin>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	if surfacePath != "" && surfaceOutPath == "" {
		essentials.Die("-surface requires -surface-out")
	}

	log.Println("Loading recipe...")
	recipe, err := spade.LoadRecipe(inputPath)
	essentials.Must(err)
	log.Printf(" => mode=%s width=%.2f%s step=%.2f%s bank=%.2f%s",
		recipe.Mode, recipe.Width, recipe.Units, recipe.Step, recipe.Units,
		recipe.Bank, recipe.Units)

	log.Println("Generating profile...")
	profile, err := recipe.Profile()
	essentials.Must(err)
	log.Printf(" => %d samples (%d points)", profile.NumSamples(), len(profile))

	log.Println("Writing output...")
	essentials.Must(spade.SaveProfile(outputPath, profile))

	if meshPath != "" {
		log.Println("Writing ribbon mesh...")
		essentials.Must(spade.ProfileMesh(profile).SaveGroupedSTL(meshPath))
	}

	if surfacePath != "" {
		log.Println("Grading surface...")
		points, err := spade.LoadProfile(surfacePath)
		essentials.Must(err)
		surface := spade.NewPointSurface(points...)
		surface.Spacing = spacing
		surface.SkipNear = skipNear
		tx, err := surface.Begin()
		essentials.Must(err)
		added, err := spade.Apply(tx, surface, profile)
		essentials.Must(err)
		log.Printf(" => applied %d points: %d -> %d surface points", added, len(points),
			surface.Len())
		essentials.Must(spade.SaveProfile(surfaceOutPath, surface.Points()))
	}
}
