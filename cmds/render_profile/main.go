package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/model3d/render3d"
	"github.com/unixpickle/spade-grade/spade"
)

func main() {
	var gridSize int
	var imageSize int
	var fps float64
	var frames int
	var exaggerate float64
	flag.IntVar(&gridSize, "grid-size", 3, "grid size (used for rows and columns)")
	flag.IntVar(&imageSize, "image-size", 300, "size of each image in the grid")
	flag.Float64Var(&fps, "fps", 10.0, "FPS for GIF outputs")
	flag.IntVar(&frames, "frames", 20, "total number of frames for GIF outputs")
	flag.Float64Var(&exaggerate, "exaggerate", 1, "vertical exaggeration of elevations")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: render_profile [flags] <profile> <output.png>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	log.Println("Loading profile...")
	profile, err := spade.LoadProfile(inputPath)
	essentials.Must(err)
	if exaggerate <= 0 {
		essentials.Die("-exaggerate must be positive")
	}
	if exaggerate != 1 {
		log.Printf(" => exaggerating elevations %.1fx", exaggerate)
		profile = profile.Exaggerate(exaggerate)
	}

	log.Println("Creating renderable object...")
	mesh := spade.ProfileMesh(profile)
	if len(mesh.TriangleSlice()) == 0 {
		essentials.Die("profile has fewer than two samples")
	}
	object := render3d.Objectify(model3d.MeshToCollider(mesh), nil)

	log.Println("Rendering...")
	ext := filepath.Ext(outputPath)
	if strings.ToLower(ext) == ".gif" {
		essentials.Must(
			render3d.SaveRotatingGIF(
				outputPath,
				object,
				model3d.Z(1),
				model3d.YZ(-1, 0.1).Normalize(),
				imageSize,
				frames,
				fps,
				nil,
			),
		)
	} else {
		essentials.Must(
			render3d.SaveRandomGrid(outputPath, object, gridSize, gridSize, imageSize, nil),
		)
	}
}
