package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/arnemq/litho/internal/raster"
	"github.com/arnemq/litho/pkg/math3d"
)

// Load opens a .gltf or .glb file and flattens its default scene into
// one raster.DrawCall per triangle-mode primitive, with world
// transforms baked in from the node graph. gltf.Open resolves GLB
// binary-chunk and data-URI buffers into Buffer.Data before this
// runs, so every buffer reaches the accessor readers already inlined.
//
// Triangle winding is passed through unchanged: the rasterizer treats
// positive edge-function area as front-facing, which agrees with
// glTF's CCW-front-face convention after the screen-space Y flip.
func Load(path string) ([]*raster.DrawCall, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	return flatten(doc, path)
}

func flatten(doc *gltf.Document, basePath string) ([]*raster.DrawCall, error) {
	texCache := make(map[int]*raster.Texture)
	var calls []*raster.DrawCall
	var walkErr error

	roots := defaultSceneRoots(doc)
	walkScene(doc, roots, math3d.Identity(), func(nodeIdx int, world math3d.Mat4) {
		if walkErr != nil {
			return
		}
		node := doc.Nodes[nodeIdx]
		if node.Mesh == nil {
			return
		}
		mesh := doc.Meshes[int(*node.Mesh)]
		for _, prim := range mesh.Primitives {
			dc, err := convertPrimitive(doc, prim, world, basePath, texCache)
			if err != nil {
				walkErr = fmt.Errorf("node %d mesh %q: %w", nodeIdx, mesh.Name, err)
				return
			}
			if dc != nil {
				calls = append(calls, dc)
			}
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return calls, nil
}

// convertPrimitive reads one primitive's attributes, indices, and
// material into a DrawCall under world, returning (nil, nil) for a
// primitive glTF allows but litho doesn't rasterize (points, lines,
// strips, fans) or one with no POSITION attribute. Only triangle-mode
// primitives become draw calls; the line path is reserved for the
// internally-synthesized grid overlay.
func convertPrimitive(doc *gltf.Document, prim *gltf.Primitive, world math3d.Mat4, basePath string, texCache map[int]*raster.Texture) (*raster.DrawCall, error) {
	// qmuntal/gltf remaps the wire enum so the glTF default (triangles)
	// is the Go zero value.
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, _, err := readFloats(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals []float64
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, _, err = readFloats(doc, idx); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}

	var uvs []float64
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, _, err = readFloats(doc, idx); err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
	}

	var colors []float64
	if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		if colors, _, err = readFloats(doc, idx); err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = readIndices(doc, *prim.Indices); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	mat, err := convertMaterial(doc, prim.Material, basePath, texCache)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}

	return &raster.DrawCall{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Colors:    colors,
		Indices:   indices,
		Model:     world,
		Material:  mat,
		Mode:      raster.ModeTriangles,
	}, nil
}
