package raster

import "math"

// drawLine rasterizes one index pair of a line-mode draw call with a
// float DDA. Endpoints keep their sub-pixel position; each step
// interpolates depth and per-vertex RGBA and runs its own depth test.
// Lines never back-face cull.
func drawLine(bmp *Bitmap, depth []float32, d *DrawCall, v0, v1 screenVertex, opts RenderOptions) {
	if v0.Clipped || v1.Clipped {
		return
	}

	z0 := v0.Z*0.5 + 0.5
	z1 := v1.Z*0.5 + 0.5
	if (z0 < 0 || z0 > 1) && (z1 < 0 || z1 > 1) && sameSide(z0, z1) {
		return
	}

	dx := v1.X - v0.X
	dy := v1.Y - v0.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}

	mat := d.Material
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(math.Round(v0.X + dx*t))
		y := int(math.Round(v0.Y + dy*t))
		if x < 0 || x >= bmp.Width || y < 0 || y >= bmp.Height {
			continue
		}

		z01 := z0 + (z1-z0)*t
		idx := y*bmp.Width + x
		if z01 >= float64(depth[idx]) {
			continue
		}

		c := v0.Color.Lerp(v1.Color, t)

		if mat.AlphaMode == AlphaBlend && c.A < 1 {
			dst := bmp.readColor(x, y, opts)
			out := SrcOver(c, dst)
			bmp.writeColor(x, y, out, opts)
			continue
		}

		depth[idx] = float32(z01)
		bmp.writeColor(x, y, c, opts)
	}
}

// sameSide reports whether a and b lie on the same side of the [0,1]
// depth range, the trivial reject for a segment entirely in front of
// the near plane or beyond the far plane.
func sameSide(a, b float64) bool {
	return (a < 0 && b < 0) || (a > 1 && b > 1)
}
