package scene

import (
	"github.com/qmuntal/gltf"

	"github.com/arnemq/litho/internal/raster"
)

// convertMaterial maps a glTF material (nil meaning "use the
// default") onto raster.Material, reading only the base-color subset
// the rasterizer understands: baseColorFactor, baseColorTexture,
// alphaMode, and alphaCutoff. metallicFactor, roughnessFactor, the
// normal/occlusion/emissive textures, and doubleSided are left
// unread; the shader is Lambert-plus-ambient with a single global
// cull mode.
func convertMaterial(doc *gltf.Document, materialIdx *int, basePath string, texCache map[int]*raster.Texture) (raster.Material, error) {
	out := raster.DefaultMaterial()
	if materialIdx == nil {
		return out, nil
	}

	m := doc.Materials[*materialIdx]

	switch m.AlphaMode {
	case gltf.AlphaMask:
		out.AlphaMode = raster.AlphaMask
	case gltf.AlphaBlend:
		out.AlphaMode = raster.AlphaBlend
	default:
		out.AlphaMode = raster.AlphaOpaque
	}
	if m.AlphaCutoff != nil {
		out.AlphaCutoff = *m.AlphaCutoff
	}

	pbr := m.PBRMetallicRoughness
	if pbr == nil {
		return out, nil
	}

	if pbr.BaseColorFactor != nil {
		f := *pbr.BaseColorFactor
		out.BaseColorFactor = raster.Color{R: float64(f[0]), G: float64(f[1]), B: float64(f[2]), A: float64(f[3])}
	}

	if pbr.BaseColorTexture != nil {
		tex, err := decodeTexture(doc, basePath, int(pbr.BaseColorTexture.Index), texCache)
		if err != nil {
			return out, err
		}
		out.BaseColorTex = tex
	}

	return out, nil
}
