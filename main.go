package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/export"
	"github.com/df07/go-lensmaker/pkg/renderer"
	"github.com/df07/go-lensmaker/pkg/scene"
	"github.com/df07/go-lensmaker/pkg/trainer"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "parabolic-mirror", "Scene id, 'all' for every builtin scene, or a path to a .json scene")
	iterations := flag.Int("iterations", 100, "Maximum number of optimizer iterations")
	method := flag.String("method", "bfgs", "Optimizer: gradient-descent, bfgs, lbfgs or nelder-mead")
	rays := flag.Int("rays", 0, "Rays per source (0 = scene default)")
	objectSamples := flag.Int("object", 0, "Samples across extended objects (0 = scene default)")
	outputRoot := flag.String("output", "output", "Output directory")
	width := flag.Int("width", 800, "Diagram width in pixels")
	height := flag.Int("height", 600, "Diagram height in pixels")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Lensmaker")
		fmt.Println("Usage: lensmaker [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/ as before/after PNG diagrams and lens SVG outlines")
		return
	}

	if *iterations < 1 {
		fmt.Printf("Error: -iterations must be at least 1, got %d\n", *iterations)
		os.Exit(1)
	}

	logger := trainer.NewDefaultLogger()
	config := trainer.DefaultConfig()
	config.Iterations = *iterations
	config.Method = *method
	camera := renderer.DefaultCameraConfig()
	camera.Width, camera.Height = *width, *height

	var ids []string
	if *sceneType == "all" {
		for _, info := range scene.ListBuiltinScenes() {
			ids = append(ids, info.ID)
		}
	} else {
		ids = []string{*sceneType}
	}

	// Scenes are trained one at a time so that before images can be taken
	// first, except for 'all' which trains them in parallel
	if len(ids) > 1 {
		results := trainer.TrainScenes(ids, config, logger)
		for i, r := range results {
			if r.Error != nil {
				fmt.Printf("Error training %s: %v\n", ids[i], r.Error)
				continue
			}
			if err := saveOutputs(r.Scene, "after", *outputRoot, camera, logger); err != nil {
				fmt.Printf("Error saving %s: %v\n", ids[i], err)
			}
		}
		return
	}

	selected, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	applySampling(selected, *rays, *objectSamples)
	config.Sampling = selected.Sampling

	fmt.Printf("Using %s (%d learnable coefficients, %d rays per source)...\n",
		selected.Info.Name, selected.NumParameters(), selected.Sampling.Rays)

	if err := saveOutputs(selected, "before", *outputRoot, camera, logger); err != nil {
		fmt.Printf("Error saving initial diagram: %v\n", err)
		os.Exit(1)
	}

	result, err := trainer.Run(selected.System, config, logger)
	if err != nil {
		fmt.Printf("Error training: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Best coefficients: %v (loss reduced by %.1f%%)\n", result.Parameters, 100*result.Improvement())

	if err := saveOutputs(selected, "after", *outputRoot, camera, logger); err != nil {
		fmt.Printf("Error saving final diagram: %v\n", err)
		os.Exit(1)
	}
}

// createScene resolves a builtin id, a file scene id or a direct path to a JSON scene
func createScene(sceneType string) (*scene.Scene, error) {
	if strings.HasSuffix(sceneType, ".json") {
		return scene.LoadScene(sceneType)
	}
	return scene.NewScene(sceneType)
}

func applySampling(s *scene.Scene, rays, object int) {
	if rays > 0 {
		s.Sampling.Rays = rays
	}
	if object > 0 {
		s.Sampling.Object = object
	}
}

func printScenes() {
	groups, err := scene.ListAllScenes("")
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}
	for _, group := range groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
	}
}

// sceneDir returns the output directory of a scene, named after its id
func sceneDir(root string, s *scene.Scene) string {
	name := strings.TrimPrefix(s.Info.ID, "file:")
	return filepath.Join(root, name)
}

// saveOutputs renders the current state of a scene and exports its lenses
func saveOutputs(s *scene.Scene, stage, root string, camera renderer.CameraConfig, logger core.Logger) error {
	dir := sceneDir(root, s)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")

	r := renderer.NewRenderer()
	out := r.Render(s.System, s.Sampling)
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stage, timestamp))
	if err := r.SavePNG(filename, camera); err != nil {
		return err
	}
	logger.Printf("Diagram saved as %s (loss %.6g, %d rays out)\n", filename, out.Loss.Real, out.NumRays())

	lenses, offsets := export.Lenses(s.System)
	if len(lenses) == 0 {
		return nil
	}
	profiles := make([]*export.Profile, len(lenses))
	for i, lens := range lenses {
		p, err := export.LensProfile(lens)
		if err != nil {
			return err
		}
		profiles[i] = p
	}

	filename = filepath.Join(dir, fmt.Sprintf("%s_lenses_%s.svg", stage, timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := export.WriteSVG(file, profiles, offsets...); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	logger.Printf("Lens outlines saved as %s\n", filename)
	return nil
}
