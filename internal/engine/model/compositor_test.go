package model

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/carvemesh/internal/engine/face"
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/internal/engine/texture"
	"github.com/Faultbox/carvemesh/internal/logger"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

// stubTexture emits out copies of each input quad tagged "<label>/<i>" and
// records the arguments of every call.
type stubTexture struct {
	label string
	kind  texture.Kind
	qps   int
	out   int

	goals []int
	ctxs  []texture.Context
}

func (s *stubTexture) Kind() texture.Kind       { return s.kind }
func (s *stubTexture) QuadsPerSide() int        { return s.qps }
func (s *stubTexture) Particle() *sprite.Sprite { return &sprite.Sprite{Name: s.label} }

func (s *stubTexture) TransformQuad(q geom.Quad, ctx texture.Context, quadGoal int) []geom.Quad {
	s.goals = append(s.goals, quadGoal)
	s.ctxs = append(s.ctxs, ctx)
	out := make([]geom.Quad, s.out)
	for i := range out {
		out[i] = q.WithSprite(fmt.Sprintf("%s/%d", s.label, i))
	}
	return out
}

func newStub(label string, kind texture.Kind, qps, out int) *stubTexture {
	return &stubTexture{label: label, kind: kind, qps: qps, out: out}
}

var missing = &sprite.Sprite{Name: sprite.MissingName}

func sprites(quads []geom.Quad) []string {
	names := make([]string, len(quads))
	for i, q := range quads {
		names[i] = q.Sprite
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCompositeNilDataIsPlaceholder(t *testing.T) {
	c := NewCompositor(Cube(), nil, missing)
	m := c.Composite("stone", nil, texture.NewContextList())

	if _, ok := m.Binding().(face.Unresolved); !ok {
		t.Errorf("expected unresolved binding, got %T", m.Binding())
	}
	if m.QuadCount() != 0 {
		t.Errorf("expected empty placeholder, got %d quads", m.QuadCount())
	}
	if m.ParticleSprite() != missing {
		t.Errorf("expected missing particle, got %v", m.ParticleSprite())
	}
}

func TestCompositeExampleScenario(t *testing.T) {
	t1 := newStub("t1", texture.KindNormal, 1, 1)
	t2 := newStub("t2", texture.KindCTM, 2, 2)
	fc := face.New(geom.Solid, nil, t1, t2)

	overrides := map[geom.Facing]*face.Face{}
	for _, f := range geom.Facings {
		if f != geom.Up {
			overrides[f] = nil
		}
	}
	data := face.NewVariation("v", fc, overrides)

	conn := texture.NewConnectionContext()
	ctx := texture.NewContextList()
	if err := ctx.Register(conn); err != nil {
		t.Fatalf("register: %v", err)
	}

	// In-world on the matching pass
	c := NewCompositor(Cube(), FixedLayer(geom.Solid), missing)
	m := c.Composite("factory", data, ctx)

	want := []string{"t1/0", "t2/0", "t2/1"}
	if got := sprites(m.FaceQuads(geom.Up)); !equalStrings(got, want) {
		t.Errorf("expected up quads %v, got %v", want, got)
	}
	if t1.goals[0] != 2 || t2.goals[0] != 2 {
		t.Errorf("expected quad goal 2 for both, got %d and %d", t1.goals[0], t2.goals[0])
	}
	if t1.ctxs[0] != nil {
		t.Errorf("expected no context for normal kind, got %v", t1.ctxs[0])
	}
	if t2.ctxs[0] != conn {
		t.Errorf("expected connection context for ctm kind, got %v", t2.ctxs[0])
	}
	for _, f := range geom.Facings {
		if f != geom.Up && len(m.FaceQuads(f)) != 0 {
			t.Errorf("expected no quads on %s, got %d", f, len(m.FaceQuads(f)))
		}
	}

	// In-world on another pass
	cutout := NewCompositor(Cube(), FixedLayer(geom.Cutout), missing)
	if n := cutout.Composite("factory", data, ctx).QuadCount(); n != 0 {
		t.Errorf("expected 0 quads on cutout pass, got %d", n)
	}

	// Item rendering
	t1.goals, t2.goals = nil, nil
	t1.ctxs, t2.ctxs = nil, nil
	item := cutout.Composite("factory", data, nil)
	if got := sprites(item.FaceQuads(geom.Up)); !equalStrings(got, want) {
		t.Errorf("expected item quads %v, got %v", want, got)
	}
	if t1.goals[0] != 1 || t2.goals[0] != 1 {
		t.Errorf("expected quad goal 1 for items, got %d and %d", t1.goals[0], t2.goals[0])
	}
	if t2.ctxs[0] != nil {
		t.Errorf("expected no context for items, got %v", t2.ctxs[0])
	}
}

func TestCompositeLayerPartition(t *testing.T) {
	solid := face.New(geom.Solid, nil, newStub("solid", texture.KindNormal, 1, 1))
	glass := face.New(geom.Translucent, nil, newStub("glass", texture.KindNormal, 1, 1))
	data := face.NewVariation("mixed", solid, map[geom.Facing]*face.Face{
		geom.Up:   glass,
		geom.Down: glass,
	})
	ctx := texture.NewContextList()

	total := 0
	for _, l := range geom.Layers {
		c := NewCompositor(Cube(), FixedLayer(l), missing)
		m := c.Composite("mixed", data, ctx)
		total += m.QuadCount()

		for _, f := range geom.Facings {
			if len(m.FaceQuads(f)) == 0 {
				continue
			}
			if fc, _ := data.Face(f); fc.Layer() != l {
				t.Errorf("pass %s: facing %s emitted quads from layer %s", l, f, fc.Layer())
			}
		}
	}

	item := NewCompositor(Cube(), nil, missing).Composite("mixed", data, nil)
	if total != item.QuadCount() {
		t.Errorf("expected passes to partition the item mesh (%d quads), got %d", item.QuadCount(), total)
	}
	if item.QuadCount() != geom.FacingCount {
		t.Errorf("expected %d item quads, got %d", geom.FacingCount, item.QuadCount())
	}
}

func TestCompositePassReadOnce(t *testing.T) {
	calls := 0
	pass := LayerFunc(func() geom.Layer {
		calls++
		return geom.Solid
	})
	fc := face.New(geom.Solid, nil, newStub("a", texture.KindNormal, 1, 1))
	data := face.NewVariation("v", fc, nil)

	c := NewCompositor(Cube(), pass, missing)
	c.Composite("b", data, texture.NewContextList())
	if calls != 1 {
		t.Errorf("expected active pass read once, got %d", calls)
	}

	c.Composite("b", data, nil)
	if calls != 1 {
		t.Errorf("expected item composite not to read the pass, got %d reads", calls)
	}
}

func TestCompositeFacingSubset(t *testing.T) {
	// A base mesh quad tagged with one facing stored under another bucket
	base := NewStaticMesh(map[geom.Facing][]geom.Quad{
		geom.North: {CubeFace(geom.North)},
	}, nil)
	fc := face.New(geom.Solid, nil, newStub("n", texture.KindNormal, 1, 1))
	overrides := map[geom.Facing]*face.Face{geom.South: nil}
	data := face.NewVariation("v", fc, overrides)

	m := NewCompositor(base, nil, missing).Composite("b", data, nil)
	for _, f := range geom.Facings {
		n := len(m.FaceQuads(f))
		switch {
		case f == geom.North && n != 1:
			t.Errorf("expected 1 north quad, got %d", n)
		case f != geom.North && n != 0:
			t.Errorf("expected no quads on %s, got %d", f, n)
		}
	}

	// Absent facing contributes nothing even with base quads
	data = face.NewVariation("v", fc, map[geom.Facing]*face.Face{geom.North: nil})
	m = NewCompositor(base, nil, missing).Composite("b", data, nil)
	if m.QuadCount() != 0 {
		t.Errorf("expected absent facing to contribute nothing, got %d quads", m.QuadCount())
	}
}

func TestCompositeGeneralQuads(t *testing.T) {
	general := []geom.Quad{
		CubeFace(geom.Up).WithSprite("g-up"),
		CubeFace(geom.East).WithSprite("g-east"),
		CubeFace(geom.Up).WithSprite("g-up-2"),
	}
	base := NewStaticMesh(nil, general)

	up := face.New(geom.Solid, nil, newStub("up", texture.KindNormal, 1, 1))
	east := face.New(geom.Cutout, nil, newStub("east", texture.KindNormal, 1, 2))
	data := face.NewVariation("v", nil, map[geom.Facing]*face.Face{
		geom.Up:   up,
		geom.East: east,
	})

	item := NewCompositor(base, nil, missing).Composite("b", data, nil)
	want := []string{"up/0", "up/0", "east/0", "east/1"}
	if got := sprites(item.GeneralQuads()); !equalStrings(got, want) {
		t.Errorf("expected general quads %v, got %v", want, got)
	}
	for _, f := range geom.Facings {
		if len(item.FaceQuads(f)) != 0 {
			t.Errorf("expected general quads to stay out of facing %s", f)
		}
	}

	world := NewCompositor(base, FixedLayer(geom.Cutout), missing).Composite("b", data, texture.NewContextList())
	want = []string{"east/0", "east/1"}
	if got := sprites(world.GeneralQuads()); !equalStrings(got, want) {
		t.Errorf("expected cutout general quads %v, got %v", want, got)
	}
}

func TestCompositeMultipleInputQuadsKeepOrder(t *testing.T) {
	base := NewStaticMesh(map[geom.Facing][]geom.Quad{
		geom.West: {CubeFace(geom.West), CubeFace(geom.West)},
	}, nil)
	a := newStub("a", texture.KindNormal, 1, 1)
	b := newStub("b", texture.KindRandom, 1, 1)
	data := face.NewVariation("v", face.New(geom.Solid, nil, a, b), nil)

	m := NewCompositor(base, nil, missing).Composite("blk", data, nil)
	want := []string{"a/0", "b/0", "a/0", "b/0"}
	if got := sprites(m.FaceQuads(geom.West)); !equalStrings(got, want) {
		t.Errorf("expected per-quad paint order %v, got %v", want, got)
	}
}

func TestCompositeLogsSkippedLayer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Set(zap.New(core))
	defer logger.Set(nil)

	fc := face.New(geom.Translucent, nil, newStub("glass", texture.KindNormal, 1, 1))
	data := face.NewVariation("v", fc, nil)
	NewCompositor(Cube(), FixedLayer(geom.Solid), missing).Composite("glass", data, texture.NewContextList())

	skipped := logs.FilterMessage("skipping layer").All()
	if len(skipped) != geom.FacingCount {
		t.Fatalf("expected %d skip entries, got %d", geom.FacingCount, len(skipped))
	}
	fields := skipped[0].ContextMap()
	if fields["block"] != "glass" {
		t.Errorf("expected block field 'glass', got %v", fields["block"])
	}
	if fields["layer"] != "translucent" || fields["pass"] != "solid" {
		t.Errorf("expected layer translucent and pass solid, got %v and %v", fields["layer"], fields["pass"])
	}
}

func TestMeshParticleSprite(t *testing.T) {
	p := &sprite.Sprite{Name: "particle"}
	def := face.New(geom.Solid, p, newStub("a", texture.KindNormal, 1, 1))
	data := face.NewVariation("v", def, nil)

	m := NewCompositor(Cube(), nil, missing).Composite("b", data, nil)
	if m.ParticleSprite() != p {
		t.Errorf("expected default face particle, got %v", m.ParticleSprite())
	}
	if r, ok := m.Binding().(face.Resolved); !ok || r.Data != data {
		t.Errorf("expected binding resolved to data, got %v", m.Binding())
	}
	if !m.AmbientOcclusion() || !m.Gui3D() || m.BuiltInRenderer() {
		t.Error("unexpected mesh capability flags")
	}
}

func TestMeshFaceQuadsInvalidFacing(t *testing.T) {
	m := NewCompositor(Cube(), nil, missing).Placeholder()
	if q := m.FaceQuads(geom.Facing(42)); q != nil {
		t.Errorf("expected nil quads for invalid facing, got %v", q)
	}
}

func TestMeshParticleSpriteFallsBackToMissing(t *testing.T) {
	up := face.New(geom.Solid, nil, newStub("up", texture.KindNormal, 1, 1))
	tests := []struct {
		name string
		def  *face.Face
	}{
		{"nil default face", nil},
		{"default face without textures", face.New(geom.Solid, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := face.NewVariation("v", tt.def, map[geom.Facing]*face.Face{geom.Up: up})
			m := NewCompositor(Cube(), nil, missing).Composite("b", data, nil)
			if p := m.ParticleSprite(); p != missing {
				t.Errorf("expected missing particle, got %v", p)
			}
		})
	}
}

func TestCompositeTagsFaceLayer(t *testing.T) {
	solid := face.New(geom.Solid, nil, newStub("solid", texture.KindNormal, 1, 1))
	glass := face.New(geom.Translucent, nil, newStub("glass", texture.KindNormal, 1, 2))
	data := face.NewVariation("v", solid, map[geom.Facing]*face.Face{geom.Up: glass})
	base := NewStaticMesh(map[geom.Facing][]geom.Quad{
		geom.Up:    {CubeFace(geom.Up)},
		geom.North: {CubeFace(geom.North)},
	}, []geom.Quad{CubeFace(geom.Up)})

	item := NewCompositor(base, nil, missing).Composite("window", data, nil)
	for _, q := range append(item.FaceQuads(geom.Up), item.GeneralQuads()...) {
		if q.Layer != geom.Translucent {
			t.Errorf("expected up quad %s on translucent, got %s", q.Sprite, q.Layer)
		}
	}
	for _, q := range item.FaceQuads(geom.North) {
		if q.Layer != geom.Solid {
			t.Errorf("expected north quad on solid, got %s", q.Layer)
		}
	}
	if n := len(item.FaceQuads(geom.Up)) + len(item.GeneralQuads()); n != 4 {
		t.Errorf("expected 4 up quads, got %d", n)
	}
}
