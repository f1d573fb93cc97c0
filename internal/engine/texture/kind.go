// Package texture defines the texture transform protocol, the per-render
// context registry, and the built-in transforms (normal, ctm, v4, v9, random).
package texture

import (
	"errors"
	"fmt"
	"strings"
)

// Texture and context errors.
var (
	ErrUnknownKind      = errors.New("unknown texture kind")
	ErrContextKind      = errors.New("context does not match texture kind")
	ErrDuplicateContext = errors.New("context already registered for kind")
	ErrNoSprites        = errors.New("texture has no sprites")
	ErrSpriteCount      = errors.New("wrong sprite count for texture kind")
)

// Kind identifies a texture transform strategy. The set is closed.
type Kind uint8

const (
	KindNormal Kind = iota
	KindCTM
	KindV4
	KindV9
	KindRandom
	kindCount
)

// Kinds lists every texture kind.
var Kinds = [kindCount]Kind{KindNormal, KindCTM, KindV4, KindV9, KindRandom}

var kindNames = [kindCount]string{"normal", "ctm", "v4", "v9", "r"}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// QuadsPerSide returns how many quads the kind emits per input quad when
// rendered in the world.
func (k Kind) QuadsPerSide() int {
	if k == KindCTM {
		return 4
	}
	return 1
}

// NeedsContext reports whether the kind reads per-render context state.
func (k Kind) NeedsContext() bool {
	return k.Valid() && k != KindNormal
}

// GridSize returns the cell count per axis for variation kinds, 1 otherwise.
func (k Kind) GridSize() int {
	switch k {
	case KindV4:
		return 2
	case KindV9:
		return 3
	default:
		return 1
	}
}

// ParseKind converts a kind name to a Kind. "random" is accepted for "r".
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "random" {
		return KindRandom, nil
	}
	for i, kn := range kindNames {
		if kn == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}
