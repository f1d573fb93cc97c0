package geom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLayer is returned when a layer name cannot be parsed.
var ErrUnknownLayer = errors.New("unknown render layer")

// Layer is a render pass. Each Face commits to exactly one.
type Layer uint8

// Render layers in draw order.
const (
	Solid Layer = iota
	CutoutMipped
	Cutout
	Translucent
)

// LayerCount is the number of render layers.
const LayerCount = 4

// Layers lists every layer in draw order.
var Layers = [LayerCount]Layer{Solid, CutoutMipped, Cutout, Translucent}

var layerNames = [LayerCount]string{"solid", "cutout_mipped", "cutout", "translucent"}

// Valid reports whether l is a known layer.
func (l Layer) Valid() bool {
	return l < LayerCount
}

func (l Layer) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Layer(%d)", uint8(l))
	}
	return layerNames[l]
}

// ParseLayer converts a layer name ("solid", "cutout_mipped", "cutout",
// "translucent") to a Layer. Dashes are accepted in place of underscores.
func ParseLayer(name string) (Layer, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, ln := range layerNames {
		if ln == n {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

// MarshalText implements encoding.TextMarshaler.
func (l Layer) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLayer, uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layer) UnmarshalText(text []byte) error {
	parsed, err := ParseLayer(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
