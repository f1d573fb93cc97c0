package texture

import (
	"fmt"

	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Context is mutable per-render state owned by one texture kind.
// The host creates contexts before compositing and drops them afterwards;
// transforms may update their own context while transforming.
type Context interface {
	Kind() Kind
}

// ContextList maps each texture kind to at most one context.
// A nil *ContextList behaves as an empty list.
type ContextList struct {
	contexts [kindCount]Context
	count    int
}

// NewContextList creates an empty context list.
func NewContextList() *ContextList {
	return &ContextList{}
}

// Register adds ctx under its kind. The concrete type is validated against
// the kind, so transforms can rely on the type they receive.
func (l *ContextList) Register(ctx Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: nil context", ErrContextKind)
	}
	kind := ctx.Kind()
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
	if !accepts(kind, ctx) {
		return fmt.Errorf("%w: %T for %s", ErrContextKind, ctx, kind)
	}
	if l.contexts[kind] != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateContext, kind)
	}
	l.contexts[kind] = ctx
	l.count++
	return nil
}

// Get returns the context registered for kind, or nil.
func (l *ContextList) Get(kind Kind) Context {
	if l == nil || !kind.Valid() {
		return nil
	}
	return l.contexts[kind]
}

// Len returns the number of registered contexts.
func (l *ContextList) Len() int {
	if l == nil {
		return 0
	}
	return l.count
}

// accepts reports whether ctx is the concrete context type kind reads.
func accepts(kind Kind, ctx Context) bool {
	switch ctx.(type) {
	case *ConnectionContext:
		return kind == KindCTM
	case *PositionContext:
		return kind == KindV4 || kind == KindV9 || kind == KindRandom
	default:
		return false
	}
}

// EdgeMask records which edges of a face connect to a matching neighbour.
// Edges are named in the face's UV frame: left is -U, top is -V.
type EdgeMask uint8

const (
	EdgeLeft EdgeMask = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// EdgeAll has every edge connected.
const EdgeAll = EdgeLeft | EdgeRight | EdgeTop | EdgeBottom

// Has reports whether every edge in e is set.
func (m EdgeMask) Has(e EdgeMask) bool {
	return m&e == e
}

// ConnectionContext holds per-facing edge connections for connected textures.
type ConnectionContext struct {
	masks [geom.FacingCount]EdgeMask
}

// NewConnectionContext creates a context with nothing connected.
func NewConnectionContext() *ConnectionContext {
	return &ConnectionContext{}
}

// Kind implements Context.
func (c *ConnectionContext) Kind() Kind {
	return KindCTM
}

// Connections returns the edge mask of facing f.
func (c *ConnectionContext) Connections(f geom.Facing) EdgeMask {
	if !f.Valid() {
		return 0
	}
	return c.masks[f]
}

// SetConnections replaces the edge mask of facing f.
func (c *ConnectionContext) SetConnections(f geom.Facing, m EdgeMask) {
	if f.Valid() {
		c.masks[f] = m
	}
}

// PositionContext carries the block position for position-keyed textures.
type PositionContext struct {
	kind Kind
	Pos  Pos
}

// NewPositionContext creates a position context for kind (v4, v9 or r).
func NewPositionContext(kind Kind, pos Pos) *PositionContext {
	return &PositionContext{kind: kind, Pos: pos}
}

// Kind implements Context.
func (c *PositionContext) Kind() Kind {
	return c.kind
}
