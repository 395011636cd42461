package raster

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/arnemq/litho/pkg/math3d"
)

// Result is what a render hands back to the caller: the finished
// bitmap, the camera that was used (callers often want it to debug or
// re-project), and the fully-resolved options.
type Result struct {
	Bitmap  *Bitmap
	Camera  Camera
	Options RenderOptions
}

// Render resolves options, builds the camera, clears the framebuffer,
// optionally appends a grid overlay, and dispatches every draw call in
// opaque -> mask -> blend order. The camera is built before the grid
// is appended so the overlay doesn't skew auto-framing. Each draw call
// is fully rasterized before the next begins; the blend pass order is
// part of the contract, since blend fragments are order-dependent.
func Render(calls []*DrawCall, opts RenderOptions) (*Result, error) {
	resolved := opts.Resolve()
	if resolved.Width <= 0 || resolved.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", resolved.Width, resolved.Height, ErrDimension)
	}

	for _, d := range calls {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	camera := BuildCamera(calls, resolved.Width, resolved.Height, resolved.FOVDeg, resolved.CamPos, resolved.LookAt)

	bmp := NewBitmap(resolved.Width, resolved.Height)
	if resolved.Background != nil {
		r, g, b, _ := resolved.Background.ToRGBA8(false)
		bmp.Clear(r, g, b, 255)
	} else {
		bmp.Clear(0, 0, 0, 0)
	}

	depth := make([]float32, resolved.Width*resolved.Height)
	for i := range depth {
		depth[i] = float32(math.Inf(1))
	}

	all := calls
	if resolved.Grid {
		aabb := ComputeWorldAABB(calls)
		all = append(append([]*DrawCall{}, calls...), buildGridDrawCall(aabb, resolved.GridSize))
	}

	ordered := orderByAlphaMode(all)
	for _, d := range ordered {
		renderDrawCall(bmp, depth, d, camera, resolved)
	}

	return &Result{Bitmap: bmp, Camera: camera, Options: resolved}, nil
}

// orderByAlphaMode returns calls sorted opaque -> mask -> blend,
// stable within each group so input order is preserved.
func orderByAlphaMode(calls []*DrawCall) []*DrawCall {
	out := make([]*DrawCall, len(calls))
	copy(out, calls)
	sort.SliceStable(out, func(i, j int) bool {
		return alphaRank(out[i].Material.AlphaMode) < alphaRank(out[j].Material.AlphaMode)
	})
	return out
}

func alphaRank(m AlphaMode) int {
	switch m {
	case AlphaOpaque:
		return 0
	case AlphaMask:
		return 1
	default:
		return 2
	}
}

// renderDrawCall transforms every vertex of d and dispatches its
// triangles or lines.
func renderDrawCall(bmp *Bitmap, depth []float32, d *DrawCall, camera Camera, opts RenderOptions) {
	mvp := camera.Proj.Mul(camera.View).Mul(d.Model)
	normalMatrix := math3d.NormalFromMat4(d.Model)

	// Synthesize normals into a local copy; the caller's draw call is
	// borrowed read-only for the duration of the render.
	if d.Normals == nil {
		synth := *d
		synth.Normals = ComputeSmoothNormals(d.Positions, d.EffectiveIndices())
		d = &synth
	}

	n := d.VertexCount()
	verts := make([]screenVertex, n)
	for i := 0; i < n; i++ {
		sv := transformVertex(d, mvp, normalMatrix, i)
		if !sv.Clipped {
			toScreenSpace(&sv, bmp.Width, bmp.Height, d.Mode != ModeLines)
		}
		verts[i] = sv
	}

	idx := d.EffectiveIndices()
	switch d.Mode {
	case ModeLines:
		for i := 0; i+1 < len(idx); i += 2 {
			drawLine(bmp, depth, d, verts[idx[i]], verts[idx[i+1]], opts)
		}
	default: // ModeTriangles
		for i := 0; i+2 < len(idx); i += 3 {
			drawTriangle(bmp, depth, d, verts[idx[i]], verts[idx[i+1]], verts[idx[i+2]], opts)
		}
	}
}

// EncodePNG writes r's bitmap to w as a PNG.
func (r *Result) EncodePNG(w io.Writer) error {
	return r.Bitmap.EncodePNG(w)
}
