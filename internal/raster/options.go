package raster

import "github.com/arnemq/litho/pkg/math3d"

// DefaultFOVURLHelper is the narrower 35-degree field of view a
// remote-fetch helper would use in place of the 60-degree render
// default. Nothing in this module wires it to a flag; it is kept for
// a future caller.
const DefaultFOVURLHelper = 35.0

// RenderOptions configures one render. Unknown fields passed through
// a higher-level config (CLI flags, JSON) are ignored by
// construction: this struct simply doesn't have a field for them.
type RenderOptions struct {
	Width, Height int
	FOVDeg        float64
	CamPos        *math3d.Vec3
	LookAt        *math3d.Vec3
	LightDir      math3d.Vec3
	Ambient       float64
	// DisableCull and DisableGamma mirror the CLI's --noCull/--noGamma
	// flags: both behaviors default to on, so the zero value of a
	// struct literal keeps them enabled.
	DisableCull   bool
	DisableGamma  bool
	Background    *Color // nil means transparent clear
	Grid          bool
	GridSize      float64 // grid extent in world units; <= 0 sizes from the scene AABB
}

// Resolve returns a copy of o with every zero-valued field replaced by
// its documented default; this is the one place user-supplied partial
// options are merged.
func (o RenderOptions) Resolve() RenderOptions {
	r := o
	if r.Width == 0 {
		r.Width = 800
	}
	if r.Height == 0 {
		r.Height = 600
	}
	if r.FOVDeg == 0 {
		r.FOVDeg = 60
	}
	if r.LightDir == (math3d.Vec3{}) {
		r.LightDir = math3d.V3(-0.4, -0.9, -0.2)
	}
	if r.Ambient == 0 {
		r.Ambient = 0.15
	}
	r.Ambient = clampFloat(r.Ambient, 0, 1)
	return r
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
