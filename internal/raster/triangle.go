package raster

import (
	"math"

	"github.com/arnemq/litho/pkg/math3d"
)

// screenVertex is a fully-transformed vertex ready for rasterization:
// screen-space position, NDC depth, reciprocal clip W for
// perspective-correct interpolation, and the interpolatable
// attributes carried together.
type screenVertex struct {
	X, Y, Z, InvW float64 // screen XY, NDC Z, 1/clip-W
	Normal        math3d.Vec3
	UV            math3d.Vec2
	Color         Color
	Clipped       bool
}

// transformVertex builds a screenVertex for draw-call vertex i under
// mvp/normalMatrix: clip space, perspective divide, then NDC. The
// world-space normal is stored un-normalized; normalization happens
// per fragment after interpolation.
func transformVertex(d *DrawCall, mvp, normalMatrix math3d.Mat4, i int) screenVertex {
	pos := d.position(i)
	clip := mvp.MulVec4(math3d.V4FromV3(pos, 1))

	// w <= 0 means the point is at or behind the camera's eye plane;
	// trivially reject it rather than dividing by a non-positive w,
	// which would mirror the point through the origin instead of
	// discarding it.
	invW := 1.0 / clip.W
	if clip.W <= 0 || math.IsNaN(invW) || math.IsInf(invW, 0) {
		return screenVertex{Clipped: true}
	}

	ndcX := clip.X * invW
	ndcY := clip.Y * invW
	ndcZ := clip.Z * invW

	sv := screenVertex{
		X:     ndcX,
		Y:     ndcY,
		Z:     ndcZ,
		InvW:  invW,
		UV:    d.uv(i),
		Color: d.color(i),
	}
	sv.Normal = normalMatrix.MulVec3Dir(d.normal(i))
	return sv
}

// toScreenSpace maps a screenVertex's NDC X/Y to pixel coordinates in
// a width x height bitmap, Y flipped so row 0 is the top. Triangle
// vertices snap to pixel centers via round; line endpoints keep their
// sub-pixel position so the DDA walk stays smooth.
func toScreenSpace(sv *screenVertex, width, height int, round bool) {
	sv.X = (sv.X*0.5 + 0.5) * float64(width-1)
	sv.Y = (1 - (sv.Y*0.5 + 0.5)) * float64(height-1)
	if round {
		sv.X = math.Round(sv.X)
		sv.Y = math.Round(sv.Y)
	}
}

// edgeCoeffs returns the linear coefficients A,B,C of
// edge(a,b,p) = (p.x-a.x)(b.y-a.y) - (p.y-a.y)(b.x-a.x) as a function
// of p=(x,y), so the edge function can be stepped incrementally
// across a scanline instead of recomputed per pixel. With Y down in
// screen space, the function is positive for points left of a->b and
// the triple is positive inside a counter-clockwise triangle.
func edgeCoeffs(ax, ay, bx, by float64) (a, b, c float64) {
	a = by - ay
	b = ax - bx
	c = ay*bx - ax*by
	return
}

func edgeFunc(a, b, c, x, y float64) float64 {
	return a*x + b*y + c
}

// drawTriangle rasterizes one triangle of draw call d: edge-function
// coverage over the clipped bounding box, z-buffered linear depth,
// perspective-correct interpolation of UV, normal, and color, Lambert
// plus ambient shading, then alpha-mode dispatch and gamma encode on
// write.
func drawTriangle(bmp *Bitmap, depth []float32, d *DrawCall, v0, v1, v2 screenVertex, opts RenderOptions) {
	if v0.Clipped || v1.Clipped || v2.Clipped {
		return
	}

	a0, b0, c0 := edgeCoeffs(v1.X, v1.Y, v2.X, v2.Y)
	a1, b1, c1 := edgeCoeffs(v2.X, v2.Y, v0.X, v0.Y)
	a2, b2, c2 := edgeCoeffs(v0.X, v0.Y, v1.X, v1.Y)

	// area is edge(v1,v2,p) evaluated at the opposite vertex v0, which
	// equals edge(v0,v1,v2): all three edge functions agree on 2x the
	// signed area when evaluated at their opposite vertex.
	area := edgeFunc(a0, b0, c0, v0.X, v0.Y)
	if area == 0 {
		return
	}
	if !opts.DisableCull && area < 0 {
		return
	}

	minX := clampInt(int(math.Floor(minOf3(v0.X, v1.X, v2.X))), 0, bmp.Width-1)
	maxX := clampInt(int(math.Ceil(maxOf3(v0.X, v1.X, v2.X))), 0, bmp.Width-1)
	minY := clampInt(int(math.Floor(minOf3(v0.Y, v1.Y, v2.Y))), 0, bmp.Height-1)
	maxY := clampInt(int(math.Ceil(maxOf3(v0.Y, v1.Y, v2.Y))), 0, bmp.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1.0 / area
	// Inside a negative-area (back-facing) triangle all three edge
	// functions are <= 0; flip the inside test so it still rasterizes
	// when culling is disabled.
	sign := 1.0
	if area < 0 {
		sign = -1
	}

	px, py := float64(minX)+0.5, float64(minY)+0.5
	w0Row := edgeFunc(a0, b0, c0, px, py)
	w1Row := edgeFunc(a1, b1, c1, px, py)
	w2Row := edgeFunc(a2, b2, c2, px, py)

	mat := d.Material
	lightDir := opts.LightDir.Normalize().Negate()

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := y * bmp.Width

		for x := minX; x <= maxX; x++ {
			if w0*sign < 0 || w1*sign < 0 || w2*sign < 0 {
				w0 += a0
				w1 += a1
				w2 += a2
				continue
			}

			l0, l1, l2 := w0*invArea, w1*invArea, w2*invArea
			zNDC := l0*v0.Z + l1*v1.Z + l2*v2.Z
			z01 := zNDC*0.5 + 0.5

			idx := row + x
			if z01 >= float64(depth[idx]) {
				w0 += a0
				w1 += a1
				w2 += a2
				continue
			}

			pw0, pw1, pw2 := l0*v0.InvW, l1*v1.InvW, l2*v2.InvW
			denom := pw0 + pw1 + pw2
			if denom == 0 {
				w0 += a0
				w1 += a1
				w2 += a2
				continue
			}
			invDenom := 1.0 / denom

			uv := math3d.V2(
				(pw0*v0.UV.X+pw1*v1.UV.X+pw2*v2.UV.X)*invDenom,
				(pw0*v0.UV.Y+pw1*v1.UV.Y+pw2*v2.UV.Y)*invDenom,
			)
			normal := math3d.V3(
				(pw0*v0.Normal.X+pw1*v1.Normal.X+pw2*v2.Normal.X)*invDenom,
				(pw0*v0.Normal.Y+pw1*v1.Normal.Y+pw2*v2.Normal.Y)*invDenom,
				(pw0*v0.Normal.Z+pw1*v1.Normal.Z+pw2*v2.Normal.Z)*invDenom,
			)
			vcolor := Color{
				R: (pw0*v0.Color.R + pw1*v1.Color.R + pw2*v2.Color.R) * invDenom,
				G: (pw0*v0.Color.G + pw1*v1.Color.G + pw2*v2.Color.G) * invDenom,
				B: (pw0*v0.Color.B + pw1*v1.Color.B + pw2*v2.Color.B) * invDenom,
				A: (pw0*v0.Color.A + pw1*v1.Color.A + pw2*v2.Color.A) * invDenom,
			}

			texSample := White()
			if mat.BaseColorTex != nil {
				texSample = mat.BaseColorTex.Sample(uv.X, uv.Y)
			}
			base := mat.BaseColorFactor.Mul(texSample).MulRGB(vcolor)

			nHat := normal.Normalize()
			ndotl := clampFloat(nHat.Dot(lightDir), 0, 1)
			lit := opts.Ambient + (1-opts.Ambient)*ndotl
			alpha := base.A
			base = base.Scale(lit)
			base.A = alpha

			switch mat.AlphaMode {
			case AlphaMask:
				if base.A < mat.AlphaCutoff {
					w0 += a0
					w1 += a1
					w2 += a2
					continue
				}
				base.A = 1
				depth[idx] = float32(z01)
				bmp.writeColor(x, y, base, opts)
			case AlphaBlend:
				dst := bmp.readColor(x, y, opts)
				out := SrcOver(base, dst)
				bmp.writeColor(x, y, out, opts)
			default: // AlphaOpaque
				depth[idx] = float32(z01)
				bmp.writeColor(x, y, base, opts)
			}

			w0 += a0
			w1 += a1
			w2 += a2
		}

		w0Row += b0
		w1Row += b1
		w2Row += b2
	}
}

func minOf3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func maxOf3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

// writeColor quantizes c and writes it to the bitmap, applying gamma
// encode unless disabled.
func (b *Bitmap) writeColor(x, y int, c Color, opts RenderOptions) {
	r, g, bl, a := c.ToRGBA8(!opts.DisableGamma)
	b.SetPixel(x, y, r, g, bl, a)
}

// readColor reads the bitmap pixel at (x,y) back into a linear Color,
// un-doing gamma encode if it was applied, for BLEND compositing
// against whatever is already there.
func (b *Bitmap) readColor(x, y int, opts RenderOptions) Color {
	r, g, bl, a := b.GetPixel(x, y)
	dec := func(v uint8) float64 {
		l := float64(v) / 255
		if !opts.DisableGamma {
			l = srgbDecode(l)
		}
		return l
	}
	return Color{R: dec(r), G: dec(g), B: dec(bl), A: float64(a) / 255}
}
