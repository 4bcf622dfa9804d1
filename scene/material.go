package scene

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Side selects which triangle faces are visible to rays.
type Side uint8

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case FrontSide:
		return "front"
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// Material is a physically based surface description shared by meshes.
type Material struct {
	Name      string
	Color     [4]float64
	Metallic  float64
	Roughness float64
	Side      Side

	disposed atomic.Bool
}

// NewMaterial creates an opaque, rough, front-sided material.
func NewMaterial(name string, color [4]float64) *Material {
	return &Material{Name: name, Color: color, Roughness: 1}
}

// DefaultMaterial is used for surfaces that do not define one.
func DefaultMaterial() *Material {
	return NewMaterial("default", [4]float64{0.7, 0.7, 0.7, 1})
}

// Clone returns an independent copy that is not disposed.
func (m *Material) Clone() *Material {
	return &Material{
		Name:      m.Name,
		Color:     m.Color,
		Metallic:  m.Metallic,
		Roughness: m.Roughness,
		Side:      m.Side,
	}
}

// Dispose marks the material as released.
func (m *Material) Dispose() {
	m.disposed.Store(true)
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m.disposed.Load()
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into normalized RGBA.
func ParseHexColor(hex string) ([4]float64, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return [4]float64{}, fmt.Errorf("invalid hex color: %q", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return [4]float64{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	out := [4]float64{1, 1, 1, 1}
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return [4]float64{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		out[i] = float64(v) / 255
	}
	return out, nil
}
