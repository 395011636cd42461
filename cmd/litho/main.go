// litho - headless glTF 2.0 software rasterizer
//
// litho render walks a .gltf or .glb file's default scene, rasterizes
// every opaque, masked, and blended triangle primitive it finds
// with a single directional light, and writes the result to a PNG.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/arnemq/litho/internal/raster"
	"github.com/arnemq/litho/pkg/math3d"
	"github.com/arnemq/litho/pkg/scene"
)

func main() {
	root := newRootCmd()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := fang.Execute(ctx, root); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "litho",
		Short: "A headless glTF 2.0 software rasterizer",
	}
	root.AddCommand(newRenderCmd())
	return root
}

// renderFlags holds the flag values newRenderCmd wires in.
type renderFlags struct {
	out          string
	width        int
	height       int
	fov          float64
	ambient      float64
	light        string
	cam          string
	look         string
	noCull       bool
	noGamma      bool
	background   string
	grid         bool
	gridSize     float64
	verbose      bool
}

func newRenderCmd() *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render MODEL",
		Short: "Render a glTF/GLB model to a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.out, "out", "out.png", "output PNG path")
	flags.IntVar(&f.width, "w", 800, "image width")
	flags.IntVar(&f.height, "h", 600, "image height")
	flags.Float64Var(&f.fov, "fov", 60, "vertical field of view in degrees")
	flags.Float64Var(&f.ambient, "ambient", 0.15, "ambient light term, 0-1")
	flags.StringVar(&f.light, "light", "", "directional light vector as x,y,z (the direction the light travels, from the light toward the scene)")
	flags.StringVar(&f.cam, "cam", "", "explicit camera position as x,y,z (default: auto-frame the scene)")
	flags.StringVar(&f.look, "look", "", "explicit look-at target as x,y,z (default: scene AABB center)")
	flags.BoolVar(&f.noCull, "noCull", false, "disable backface culling")
	flags.BoolVar(&f.noGamma, "noGamma", false, "disable sRGB gamma encoding")
	flags.StringVar(&f.background, "background", "", "background color as r,g,b in 0-1 (default: transparent)")
	flags.BoolVar(&f.grid, "grid", false, "overlay a reference grid under the scene")
	flags.Float64Var(&f.gridSize, "gridSize", 0, "grid extent in world units (default: sized from the scene)")
	flags.BoolVar(&f.verbose, "verbose", false, "print scene stats before rendering")

	return cmd
}

func runRender(ctx context.Context, modelPath string, f *renderFlags) error {
	calls, err := scene.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load %q: %w", modelPath, err)
	}
	if f.verbose {
		fmt.Fprintf(os.Stderr, "loaded %d draw call(s) from %s\n", len(calls), modelPath)
	}

	opts := raster.RenderOptions{
		Width:        f.width,
		Height:       f.height,
		FOVDeg:       f.fov,
		Ambient:      f.ambient,
		DisableCull:  f.noCull,
		DisableGamma: f.noGamma,
		Grid:         f.grid,
		GridSize:     f.gridSize,
	}

	if f.light != "" {
		v, err := parseVec3(f.light)
		if err != nil {
			return fmt.Errorf("--light: %w", err)
		}
		opts.LightDir = v
	}
	if f.cam != "" {
		v, err := parseVec3(f.cam)
		if err != nil {
			return fmt.Errorf("--cam: %w", err)
		}
		opts.CamPos = &v
	}
	if f.look != "" {
		v, err := parseVec3(f.look)
		if err != nil {
			return fmt.Errorf("--look: %w", err)
		}
		opts.LookAt = &v
	}
	if f.background != "" {
		c, err := parseColor(f.background)
		if err != nil {
			return fmt.Errorf("--background: %w", err)
		}
		opts.Background = &c
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := raster.Render(calls, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	out, err := os.Create(f.out)
	if err != nil {
		return fmt.Errorf("create %q: %w", f.out, err)
	}
	defer out.Close()

	if err := result.EncodePNG(out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if f.verbose {
		fmt.Fprintf(os.Stderr, "wrote %dx%d PNG to %s\n", result.Options.Width, result.Options.Height, f.out)
	}
	return nil
}

// parseVec3 parses a "x,y,z" flag value.
func parseVec3(s string) (math3d.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3{}, fmt.Errorf("expected \"x,y,z\", got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%f", &v[i]); err != nil {
			return math3d.Vec3{}, fmt.Errorf("%q is not a number: %w", p, err)
		}
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

// parseColor parses a "r,g,b" flag value with components in 0-1.
func parseColor(s string) (raster.Color, error) {
	v, err := parseVec3(s)
	if err != nil {
		return raster.Color{}, err
	}
	return raster.Color{R: v.X, G: v.Y, B: v.Z, A: 1}, nil
}
