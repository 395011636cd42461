package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/arnemq/litho/internal/raster"
)

// componentSize returns the byte width of one component of ct, or 0
// for an unrecognized component type.
func componentSize(ct gltf.ComponentType) int {
	switch ct {
	case gltf.ComponentByte, gltf.ComponentUbyte:
		return 1
	case gltf.ComponentShort, gltf.ComponentUshort:
		return 2
	case gltf.ComponentUint, gltf.ComponentFloat:
		return 4
	default:
		return 0
	}
}

// accessorWidth returns the number of components accessor type t
// packs per element (SCALAR=1 .. VEC4=4).
func accessorWidth(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	default:
		return 0
	}
}

// rawAccessorBytes resolves an accessor's buffer view and buffer down
// to the byte slice its data starts at, relying on gltf.Open having
// already populated Buffer.Data for every buffer (embedded,
// GLB-binary-chunk, or data URI).
func rawAccessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, error) {
	compSize := componentSize(accessor.ComponentType)
	if compSize == 0 {
		return nil, 0, fmt.Errorf("component type %d: %w", accessor.ComponentType, raster.ErrUnsupported)
	}
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view: %w", raster.ErrUnsupported)
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d: unresolved data", bv.Buffer)
	}
	start := bv.ByteOffset + accessor.ByteOffset
	if start > len(buf.Data) {
		return nil, 0, fmt.Errorf("buffer %d: accessor offset %d past end of %d-byte buffer", bv.Buffer, start, len(buf.Data))
	}
	return buf.Data[start:], compSize, nil
}

// elementStride returns the byte view's stride between consecutive
// elements, falling back to the tightly packed size when the view
// carries no explicit ByteStride (interleaved attributes).
func elementStride(doc *gltf.Document, accessor *gltf.Accessor, tight int) int {
	if accessor.BufferView == nil {
		return tight
	}
	bv := doc.BufferViews[*accessor.BufferView]
	if bv.ByteStride != 0 {
		return bv.ByteStride
	}
	return tight
}

// decodeComponent reads one component of ct at the front of b,
// applying the normalized-integer rescale when asked: signed types
// map to [-1,1] clamped at -1, unsigned types to [0,1].
func decodeComponent(b []byte, ct gltf.ComponentType, normalized bool) float64 {
	switch ct {
	case gltf.ComponentByte:
		v := int8(b[0])
		if normalized {
			return math.Max(float64(v)/127.0, -1)
		}
		return float64(v)
	case gltf.ComponentUbyte:
		v := b[0]
		if normalized {
			return float64(v) / 255.0
		}
		return float64(v)
	case gltf.ComponentShort:
		v := int16(binary.LittleEndian.Uint16(b))
		if normalized {
			return math.Max(float64(v)/32767.0, -1)
		}
		return float64(v)
	case gltf.ComponentUshort:
		v := binary.LittleEndian.Uint16(b)
		if normalized {
			return float64(v) / 65535.0
		}
		return float64(v)
	case gltf.ComponentUint:
		return float64(binary.LittleEndian.Uint32(b))
	case gltf.ComponentFloat:
		bits := binary.LittleEndian.Uint32(b)
		return float64(math.Float32frombits(bits))
	default:
		return 0
	}
}

// readFloats decodes the accessor at accessorIdx into a flat
// []float64 of accessor.Count*width values, honoring interleaved
// (ByteStride != 0) buffer views. Sparse accessors are rejected
// outright rather than silently misread.
func readFloats(doc *gltf.Document, accessorIdx int) (data []float64, width int, err error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Sparse != nil {
		return nil, 0, fmt.Errorf("accessor %d is sparse: %w", accessorIdx, raster.ErrUnsupported)
	}

	width = accessorWidth(accessor.Type)
	if width == 0 {
		return nil, 0, fmt.Errorf("accessor %d: unsupported type %v: %w", accessorIdx, accessor.Type, raster.ErrUnsupported)
	}

	raw, compSize, err := rawAccessorBytes(doc, accessor)
	if err != nil {
		return nil, 0, fmt.Errorf("accessor %d: %w", accessorIdx, err)
	}
	stride := elementStride(doc, accessor, width*compSize)

	out := make([]float64, accessor.Count*width)
	for i := 0; i < accessor.Count; i++ {
		base := i * stride
		for c := 0; c < width; c++ {
			off := base + c*compSize
			out[i*width+c] = decodeComponent(raw[off:], accessor.ComponentType, accessor.Normalized)
		}
	}
	return out, width, nil
}

// readIndices decodes an index accessor into []uint32. BYTE/SHORT/
// FLOAT indices are not valid glTF, but a malformed file could still
// claim one; those fail with ErrUnsupported.
func readIndices(doc *gltf.Document, accessorIdx int) ([]uint32, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Sparse != nil {
		return nil, fmt.Errorf("index accessor %d is sparse: %w", accessorIdx, raster.ErrUnsupported)
	}

	compSize := componentSize(accessor.ComponentType)
	raw, _, err := rawAccessorBytes(doc, accessor)
	if err != nil {
		return nil, fmt.Errorf("index accessor %d: %w", accessorIdx, err)
	}
	stride := elementStride(doc, accessor, compSize)

	out := make([]uint32, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		off := i * stride
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			out[i] = uint32(raw[off])
		case gltf.ComponentUshort:
			out[i] = uint32(binary.LittleEndian.Uint16(raw[off:]))
		case gltf.ComponentUint:
			out[i] = binary.LittleEndian.Uint32(raw[off:])
		default:
			return nil, fmt.Errorf("index accessor %d: component type %d: %w", accessorIdx, accessor.ComponentType, raster.ErrUnsupported)
		}
	}
	return out, nil
}
