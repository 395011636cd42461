package scene

import (
	"errors"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/arnemq/litho/internal/raster"
)

func TestDecodeTextureRejectsUnknownImageFormat(t *testing.T) {
	raw := []byte("this is not an encoded image")
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: len(raw), Data: raw}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: len(raw)}},
		Images:      []*gltf.Image{{BufferView: ip(0)}},
		Textures:    []*gltf.Texture{{Source: ip(0)}},
	}

	_, err := decodeTexture(doc, "", 0, map[int]*raster.Texture{})
	if !errors.Is(err, raster.ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestDecodeTextureCachesByIndex(t *testing.T) {
	// A 1x1 transparent PNG, the smallest valid image the decoder
	// accepts.
	raw := []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
	}
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: len(raw), Data: raw}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: len(raw)}},
		Images:      []*gltf.Image{{BufferView: ip(0)}},
		Textures:    []*gltf.Texture{{Source: ip(0)}},
	}

	cache := map[int]*raster.Texture{}
	first, err := decodeTexture(doc, "", 0, cache)
	if err != nil {
		t.Fatalf("decodeTexture: %v", err)
	}
	second, err := decodeTexture(doc, "", 0, cache)
	if err != nil {
		t.Fatalf("decodeTexture (cached): %v", err)
	}
	if first != second {
		t.Error("second decode of the same texture index did not hit the cache")
	}
}
