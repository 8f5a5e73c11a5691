package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/loaders"
	"github.com/df07/go-implicit-raytracer/pkg/output"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// options holds the command line configuration. Zero values keep the scene's own settings.
type options struct {
	sceneName string
	width     int
	height    int
	samples   int
	blockSize int
	bounces   int // -1 keeps the scene value
	workers   int
	tileSize  int
	format    string
	scale     float64
	output    string
	help      bool
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneName, "scene", "default", "Scene: a built-in name, json:<name> from scenes/, or a path to a .json file")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Rays per block, rounded down to a square (0 = scene default)")
	fs.IntVar(&opts.blockSize, "block", 0, "Pixels per side of each traced block (0 = scene default)")
	fs.IntVar(&opts.bounces, "bounces", -1, "Maximum reflection depth (-1 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.tileSize, "tile", renderer.DefaultRenderConfig().TileSize, "Tile size in pixels")
	fs.StringVar(&opts.format, "format", "png", "Output format: png, jpeg, webp or tga")
	fs.Float64Var(&opts.scale, "scale", 1, "Resize the final image by this factor")
	fs.StringVar(&opts.output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<ext>)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	return opts, fs, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Implicit Surface Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	if response, err := scene.ListAllScenes(""); err == nil {
		for _, group := range response.Groups {
			for _, info := range group.Scenes {
				fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<ext>")
}

// createScene resolves the scene and applies the command line overrides
func createScene(opts options) (*scene.Scene, error) {
	if opts.sceneName == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}

	s, err := loaders.ResolveScene(opts.sceneName, "", scene.SamplingConfig{
		Width:           opts.width,
		Height:          opts.height,
		SamplesPerPixel: opts.samples,
		BlockSize:       opts.blockSize,
	})
	if err != nil {
		return nil, err
	}
	if opts.bounces >= 0 {
		s.MaxBounces = opts.bounces
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %q: %w", opts.sceneName, err)
	}
	return s, nil
}

// outputPath returns the file the render is written to
func outputPath(opts options, s *scene.Scene, format output.Format, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}
	dir := strings.TrimSuffix(filepath.Base(s.Name), filepath.Ext(s.Name))
	filename := fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), format.Extension())
	return filepath.Join("output", dir, filename)
}

// run renders the configured scene and saves it, returning the written path
func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return "", err
	}

	s, err := createScene(opts)
	if err != nil {
		return "", err
	}
	logger.Printf("Using scene %s (%dx%d, %d samples, block %d, %d bounces)\n",
		s.Name, s.SamplingConfig.Width, s.SamplingConfig.Height,
		s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.BlockSize, s.MaxBounces)

	raytracer := renderer.NewRaytracer(s, renderer.RenderConfig{
		TileSize:   opts.tileSize,
		NumWorkers: opts.workers,
	}, logger)

	rendered, stats, err := raytracer.Render(ctx)
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Traced %d blocks with %d rays per block (%d rays total, deepest bounce %d)\n",
		stats.TotalBlocks, stats.SamplesPerBlock, stats.Rays.Total(), stats.Rays.DeepestBounce)

	var img image.Image = rendered
	if opts.scale != 1 {
		img, err = output.Resize(rendered, opts.scale)
		if err != nil {
			return "", err
		}
	}

	path := outputPath(opts, s, format, time.Now())
	if err := output.Save(path, img, format); err != nil {
		return "", err
	}
	return path, nil
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		opts.help = true
	} else if err != nil {
		os.Exit(2)
	}

	if opts.help {
		printHelp(os.Stdout, fs)
		return
	}

	fmt.Println("Starting Implicit Surface Raytracer...")

	path, err := run(context.Background(), opts, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", path)
}
