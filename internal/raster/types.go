package raster

import "github.com/arnemq/litho/pkg/math3d"

// AlphaMode selects how a draw call's fragments are composited.
type AlphaMode int

const (
	// AlphaOpaque ignores alpha: write depth, write pixel.
	AlphaOpaque AlphaMode = iota
	// AlphaMask hard-cutoffs on alpha_cutoff, then behaves like opaque.
	AlphaMask
	// AlphaBlend source-over composites without writing depth.
	AlphaBlend
)

// PrimitiveMode selects the rasterization path for a draw call,
// matching the glTF primitive mode values the loader passes through.
type PrimitiveMode int

const (
	// ModeLines rasterizes index pairs with the DDA line path.
	ModeLines PrimitiveMode = 1
	// ModeTriangles rasterizes index triples with the edge-function path.
	ModeTriangles PrimitiveMode = 4
)

// Material carries the shading parameters for a draw call, mirroring
// glTF's base-color-only material subset (metallic-roughness PBR is
// out of scope).
type Material struct {
	BaseColorFactor Color
	BaseColorTex    *Texture
	AlphaMode       AlphaMode
	AlphaCutoff     float64
}

// DefaultMaterial returns the material glTF implies when a primitive
// carries none: opaque white.
func DefaultMaterial() Material {
	return Material{
		BaseColorFactor: White(),
		AlphaMode:       AlphaOpaque,
		AlphaCutoff:     0.5,
	}
}

// DrawCall is a flat, loader-agnostic primitive batch. Positions,
// normals, UVs, and colors are packed tuples rather than a []Vertex
// slice of structs, so a loader can hand over accessor-backed data
// without per-vertex struct construction.
type DrawCall struct {
	Positions []float64 // 3*N
	Normals   []float64 // 3*N, or nil to synthesize
	UVs       []float64 // 2*N, or nil
	Colors    []float64 // 3*N or 4*N, or nil
	Indices   []uint32  // or nil for implicit 0..N
	Model     math3d.Mat4
	Material  Material
	Mode      PrimitiveMode
}

// VertexCount returns N, the number of attribute tuples.
func (d *DrawCall) VertexCount() int {
	return len(d.Positions) / 3
}

// EffectiveIndices returns d.Indices, or the implicit 0..N-1 sequence
// when none is given.
func (d *DrawCall) EffectiveIndices() []uint32 {
	if d.Indices != nil {
		return d.Indices
	}
	n := d.VertexCount()
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}

// position returns vertex i's object-space position.
func (d *DrawCall) position(i int) math3d.Vec3 {
	o := i * 3
	return math3d.V3(d.Positions[o], d.Positions[o+1], d.Positions[o+2])
}

// normal returns vertex i's object-space normal, or the zero vector
// if none is present (callers must synthesize first).
func (d *DrawCall) normal(i int) math3d.Vec3 {
	if d.Normals == nil {
		return math3d.Zero3()
	}
	o := i * 3
	return math3d.V3(d.Normals[o], d.Normals[o+1], d.Normals[o+2])
}

// uv returns vertex i's texture coordinate, or the zero vector.
func (d *DrawCall) uv(i int) math3d.Vec2 {
	if d.UVs == nil {
		return math3d.Zero2()
	}
	o := i * 2
	return math3d.V2(d.UVs[o], d.UVs[o+1])
}

// color returns vertex i's per-vertex tint, or opaque white when
// absent (or when the index would run past a short colors array).
func (d *DrawCall) color(i int) Color {
	if d.Colors == nil {
		return White()
	}
	stride := 3
	if len(d.Colors)/d.VertexCount() == 4 {
		stride = 4
	}
	o := i * stride
	if o+stride > len(d.Colors) {
		return White()
	}
	if stride == 4 {
		return Color{d.Colors[o], d.Colors[o+1], d.Colors[o+2], d.Colors[o+3]}
	}
	return Color{d.Colors[o], d.Colors[o+1], d.Colors[o+2], 1}
}

// Validate checks the index invariants for a draw call's mode,
// returning a wrapped ErrInvalidGeometry on violation.
func (d *DrawCall) Validate() error {
	n := d.VertexCount()
	if len(d.Positions)%3 != 0 {
		return wrapInvalidGeometry("position count %d is not a multiple of 3", len(d.Positions))
	}
	idx := d.EffectiveIndices()
	switch d.Mode {
	case ModeTriangles:
		if len(idx)%3 != 0 {
			return wrapInvalidGeometry("triangle index count %d is not a multiple of 3", len(idx))
		}
	case ModeLines:
		if len(idx)%2 != 0 {
			return wrapInvalidGeometry("line index count %d is not a multiple of 2", len(idx))
		}
	}
	for _, i := range idx {
		if int(i) >= n {
			return wrapInvalidGeometry("index %d out of range for %d vertices", i, n)
		}
	}
	return nil
}
