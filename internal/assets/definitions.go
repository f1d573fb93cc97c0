package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/carvemesh/internal/engine/texture"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Definition errors.
var (
	ErrUnknownBlock      = errors.New("unknown block")
	ErrInvalidDefinition = errors.New("invalid block definition")
)

// File is a parsed block definitions file.
type File struct {
	Blocks []BlockDef `yaml:"blocks"`
}

// BlockDef describes one carvable block and its variants in index order.
type BlockDef struct {
	Name     string       `yaml:"name"`
	Variants []VariantDef `yaml:"variants"`
}

// VariantDef describes the faces of one variant.
type VariantDef struct {
	Name     string             `yaml:"name"`
	Particle string             `yaml:"particle,omitempty"` // Defaults to the default face's first sprite
	Default  *FaceDef           `yaml:"default"`
	Sides    map[string]FaceDef `yaml:"sides,omitempty"` // Per-facing overrides
	Omit     []geom.Facing      `yaml:"omit,omitempty"`  // Facings without a face
}

// FaceDef describes one face: its layer and textures in paint order.
type FaceDef struct {
	Layer    geom.Layer   `yaml:"layer"`
	Textures []TextureDef `yaml:"textures"`
}

// TextureDef names a transform kind and its sprites.
type TextureDef struct {
	Kind    texture.Kind `yaml:"kind"`
	Sprites []string     `yaml:"sprites"`
}

// Parse decodes a definitions file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the structure of every block. Sprite lookups are left to
// the loader.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Blocks))
	for i, b := range f.Blocks {
		if b.Name == "" {
			return fmt.Errorf("%w: block %d has no name", ErrInvalidDefinition, i)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: block %s defined twice", ErrInvalidDefinition, b.Name)
		}
		seen[b.Name] = true

		if len(b.Variants) == 0 {
			return fmt.Errorf("%w: block %s has no variants", ErrInvalidDefinition, b.Name)
		}
		for j, v := range b.Variants {
			if err := v.validate(); err != nil {
				return fmt.Errorf("%w: block %s variant %d: %v", ErrInvalidDefinition, b.Name, j, err)
			}
		}
	}
	return nil
}

func (v VariantDef) validate() error {
	if v.Default == nil {
		return errors.New("missing default face")
	}
	if err := v.Default.validate(); err != nil {
		return fmt.Errorf("default: %v", err)
	}
	for name, fd := range v.Sides {
		if _, err := geom.ParseFacing(name); err != nil {
			return err
		}
		if err := fd.validate(); err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}
	}
	return nil
}

// sideDefs returns the overrides indexed by facing. Names that do not parse
// are dropped; validate reports them.
func (v VariantDef) sideDefs() [geom.FacingCount]*FaceDef {
	var sides [geom.FacingCount]*FaceDef
	for name, fd := range v.Sides {
		if f, err := geom.ParseFacing(name); err == nil {
			sides[f] = &fd
		}
	}
	return sides
}

func (fd FaceDef) validate() error {
	for i, td := range fd.Textures {
		if len(td.Sprites) == 0 {
			return fmt.Errorf("texture %d (%s): %w", i, td.Kind, texture.ErrNoSprites)
		}
		if td.Kind == texture.KindCTM && len(td.Sprites) < 2 {
			return fmt.Errorf("texture %d: ctm needs base and connected sprites", i)
		}
	}
	return nil
}

// SpriteNames returns every sprite referenced by the file, in first-use order.
func (f *File) SpriteNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range f.Blocks {
		for _, v := range b.Variants {
			for _, n := range v.SpriteNames() {
				if !seen[n] {
					seen[n] = true
					names = append(names, n)
				}
			}
		}
	}
	return names
}

// SpriteNames returns the sprites used by the variant's textures: the default
// face first, then the overrides in facing order.
func (v VariantDef) SpriteNames() []string {
	seen := make(map[string]bool)
	var names []string
	addFace := func(fd *FaceDef) {
		for _, td := range fd.Textures {
			for _, n := range td.Sprites {
				if n != "" && !seen[n] {
					seen[n] = true
					names = append(names, n)
				}
			}
		}
	}

	if v.Default != nil {
		addFace(v.Default)
	}
	for _, fd := range v.sideDefs() {
		if fd != nil {
			addFace(fd)
		}
	}
	return names
}
