package texture

import (
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// Pos is an integer block position.
type Pos struct {
	X, Y, Z int
}

// Add returns p offset by d.
func (p Pos) Add(d [3]int) Pos {
	return Pos{p.X + d[0], p.Y + d[1], p.Z + d[2]}
}

// Sub returns p offset by -d.
func (p Pos) Sub(d [3]int) Pos {
	return Pos{p.X - d[0], p.Y - d[1], p.Z - d[2]}
}

// Dot projects p onto an integer axis.
func (p Pos) Dot(d [3]int) int {
	return p.X*d[0] + p.Y*d[1] + p.Z*d[2]
}

// World is the block neighbourhood contexts are computed from.
type World interface {
	// BlockAt returns the id of the block at p, ok=false for air.
	BlockAt(p Pos) (id string, ok bool)
}

// MapWorld is a sparse in-memory World.
type MapWorld map[Pos]string

// BlockAt implements World.
func (w MapWorld) BlockAt(p Pos) (string, bool) {
	id, ok := w[p]
	return id, ok
}

// BuildContexts creates one context per distinct kind in kinds that reads
// context state, computed from the neighbourhood of pos.
func BuildContexts(kinds []Kind, w World, pos Pos) (*ContextList, error) {
	list := NewContextList()
	for _, k := range kinds {
		if !k.NeedsContext() || list.Get(k) != nil {
			continue
		}

		var ctx Context
		if k == KindCTM {
			ctx = Connections(w, pos)
		} else {
			ctx = NewPositionContext(k, pos)
		}
		if err := list.Register(ctx); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Connections computes, for every facing of the block at pos, which edges
// border a block with the same id.
func Connections(w World, pos Pos) *ConnectionContext {
	ctx := NewConnectionContext()
	self, ok := w.BlockAt(pos)
	if !ok {
		return ctx
	}

	same := func(p Pos) bool {
		id, ok := w.BlockAt(p)
		return ok && id == self
	}

	for _, f := range geom.Facings {
		u, v := f.Frame()
		var m EdgeMask
		if same(pos.Sub(u)) {
			m |= EdgeLeft
		}
		if same(pos.Add(u)) {
			m |= EdgeRight
		}
		if same(pos.Sub(v)) {
			m |= EdgeTop
		}
		if same(pos.Add(v)) {
			m |= EdgeBottom
		}
		ctx.SetConnections(f, m)
	}
	return ctx
}
