package scene

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/arnemq/litho/internal/raster"
)

// resolveImageBytes returns the raw encoded bytes of doc.Images[imgIdx],
// handling the three ways glTF can carry an image: embedded in a
// buffer view (most GLB textures), a base64 data URI, or a path
// relative to the document on disk.
func resolveImageBytes(doc *gltf.Document, basePath string, imgIdx int) ([]byte, error) {
	img := doc.Images[imgIdx]

	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil, fmt.Errorf("image %d: buffer %d has no resolved data", imgIdx, bv.Buffer)
		}
		start := bv.ByteOffset
		end := start + bv.ByteLength
		return buf.Data[start:end], nil
	}

	if img.URI == "" {
		return nil, fmt.Errorf("image %d: neither buffer view nor URI", imgIdx)
	}

	if strings.HasPrefix(img.URI, "data:") {
		comma := strings.IndexByte(img.URI, ',')
		if comma < 0 {
			return nil, fmt.Errorf("image %d: malformed data URI", imgIdx)
		}
		return base64.StdEncoding.DecodeString(img.URI[comma+1:])
	}

	if basePath == "" {
		return nil, fmt.Errorf("image %d: external URI %q with no base path", imgIdx, img.URI)
	}
	return os.ReadFile(filepath.Join(filepath.Dir(basePath), img.URI))
}

// decodeTexture decodes doc.Textures[texIdx]'s source image into a
// raster.Texture, caching by texture index so a base-color texture
// shared by multiple primitives is only decoded once. Pixels are
// stored exactly as decoded, with no V-flip and no sRGB decode.
func decodeTexture(doc *gltf.Document, basePath string, texIdx int, cache map[int]*raster.Texture) (*raster.Texture, error) {
	if cached, ok := cache[texIdx]; ok {
		return cached, nil
	}

	tex := doc.Textures[texIdx]
	if tex.Source == nil {
		return nil, nil
	}
	imgIdx := int(*tex.Source)

	raw, err := resolveImageBytes(doc, basePath, imgIdx)
	if err != nil {
		return nil, fmt.Errorf("texture %d: %w", texIdx, err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("texture %d: image format: %w", texIdx, raster.ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("texture %d: decode: %w", texIdx, err)
	}

	bounds := decoded.Bounds()
	out := raster.NewTexture(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, a := decoded.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.SetPixel(x, y, raster.Color{
				R: float64(r) / 65535,
				G: float64(g) / 65535,
				B: float64(b) / 65535,
				A: float64(a) / 65535,
			})
		}
	}

	cache[texIdx] = out
	return out, nil
}
