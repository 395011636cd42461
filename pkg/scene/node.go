package scene

import (
	"github.com/qmuntal/gltf"

	"github.com/arnemq/litho/pkg/math3d"
)

// localTransform returns a node's local transform: its explicit
// matrix if one is set, otherwise T*R*S composed from translation,
// rotation, and scale. gltf.Open fills absent fields with the library
// defaults (identity matrix, identity rotation, unit scale), so the
// MatrixOrDefault/RotationOrDefault/ScaleOrDefault accessors cover
// both a decoded document and one built directly in code, where the
// zero values appear instead.
func localTransform(n *gltf.Node) math3d.Mat4 {
	if mat := n.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m math3d.Mat4
		for i, v := range mat {
			m[i] = v
		}
		return m
	}

	rot := n.RotationOrDefault()
	scale := n.ScaleOrDefault()
	t := n.Translation

	return math3d.FromRotationTranslationScale(
		math3d.V3(t[0], t[1], t[2]),
		math3d.QFromXYZW(rot[0], rot[1], rot[2], rot[3]),
		math3d.V3(scale[0], scale[1], scale[2]),
	)
}

// walkScene recursively visits every node reachable from roots,
// calling visit(nodeIdx, worldMatrix) for each. parent starts as
// identity for the scene's root nodes. glTF forbids node cycles, so
// this does not track visited nodes the way a general graph walk
// would.
func walkScene(doc *gltf.Document, roots []int, parent math3d.Mat4, visit func(nodeIdx int, world math3d.Mat4)) {
	for _, idx := range roots {
		node := doc.Nodes[idx]
		world := parent.Mul(localTransform(node))
		visit(idx, world)
		walkScene(doc, node.Children, world, visit)
	}
}

// defaultSceneRoots returns the node indices to traverse: the
// document's default scene if one is set, otherwise every root-level
// node reachable from doc.Scenes[0], otherwise (a bare glTF with nodes
// but no scene) every node in the document treated as a root.
func defaultSceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	roots := make([]int, len(doc.Nodes))
	for i := range doc.Nodes {
		roots[i] = i
	}
	return roots
}
