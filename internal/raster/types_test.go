package raster

import (
	"errors"
	"testing"

	"github.com/arnemq/litho/pkg/math3d"
)

func TestValidate(t *testing.T) {
	tri := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}

	tests := []struct {
		name    string
		d       DrawCall
		wantErr bool
	}{
		{
			name: "valid indexed triangle",
			d:    DrawCall{Positions: tri, Indices: []uint32{0, 1, 2}, Mode: ModeTriangles},
		},
		{
			name: "valid implicit indices",
			d:    DrawCall{Positions: tri, Mode: ModeTriangles},
		},
		{
			name:    "position count not a multiple of 3",
			d:       DrawCall{Positions: []float64{0, 0, 0, 1}, Mode: ModeTriangles},
			wantErr: true,
		},
		{
			name:    "triangle index count not a multiple of 3",
			d:       DrawCall{Positions: tri, Indices: []uint32{0, 1}, Mode: ModeTriangles},
			wantErr: true,
		},
		{
			name:    "index out of range",
			d:       DrawCall{Positions: tri, Indices: []uint32{0, 1, 7}, Mode: ModeTriangles},
			wantErr: true,
		},
		{
			name:    "line index count not a multiple of 2",
			d:       DrawCall{Positions: tri, Indices: []uint32{0, 1, 2}, Mode: ModeLines},
			wantErr: true,
		},
		{
			name: "valid line pair",
			d:    DrawCall{Positions: tri, Indices: []uint32{0, 1}, Mode: ModeLines},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("err = %v, want ErrInvalidGeometry", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRenderSurfacesInvalidGeometry(t *testing.T) {
	bad := &DrawCall{
		Positions: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 9},
		Model:     math3d.Identity(),
		Mode:      ModeTriangles,
	}
	_, err := Render([]*DrawCall{bad}, RenderOptions{Width: 8, Height: 8})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestEffectiveIndicesImplicitSequence(t *testing.T) {
	d := DrawCall{Positions: make([]float64, 9)}
	idx := d.EffectiveIndices()
	if len(idx) != 3 {
		t.Fatalf("len = %d, want 3", len(idx))
	}
	for i, v := range idx {
		if v != uint32(i) {
			t.Errorf("idx[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestColorStrideDetection(t *testing.T) {
	d := DrawCall{
		Positions: make([]float64, 6),
		Colors:    []float64{1, 0, 0, 0.5, 0, 1, 0, 0.25},
	}
	if got := d.color(1); got != (Color{0, 1, 0, 0.25}) {
		t.Errorf("RGBA stride color(1) = %v", got)
	}

	d.Colors = []float64{1, 0, 0, 0, 1, 0}
	if got := d.color(1); got != (Color{0, 1, 0, 1}) {
		t.Errorf("RGB stride color(1) = %v, want alpha forced to 1", got)
	}
}
