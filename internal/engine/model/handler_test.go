package model

import (
	"testing"

	"github.com/Faultbox/carvemesh/internal/engine/face"
	"github.com/Faultbox/carvemesh/internal/engine/texture"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

type stubBlock struct {
	name string
	data *face.BlockFaceData
}

func (b stubBlock) Name() string                  { return b.name }
func (b stubBlock) FaceData() *face.BlockFaceData { return b.data }

func newStubBlock(t *testing.T, name string, variants ...string) stubBlock {
	t.Helper()
	list := make([]*face.VariationFaceData, len(variants))
	for i, v := range variants {
		fc := face.New(geom.Solid, nil, newStub(v, texture.KindNormal, 1, 1))
		list[i] = face.NewVariation(v, fc, nil)
	}
	data, err := face.NewBlockFaceData(list...)
	if err != nil {
		t.Fatalf("NewBlockFaceData: %v", err)
	}
	return stubBlock{name: name, data: data}
}

func variantName(t *testing.T, m *Mesh) string {
	t.Helper()
	r, ok := m.Binding().(face.Resolved)
	if !ok {
		t.Fatalf("expected resolved binding, got %T", m.Binding())
	}
	return r.Data.Name()
}

func TestHandleBlockStateClampsVariant(t *testing.T) {
	block := newStubBlock(t, "marble", "raw", "bricks", "tiles")
	model := NewModel(NewCompositor(Cube(), nil, missing), Options{})

	tests := []struct {
		variant int
		want    string
	}{
		{-5, "raw"},
		{0, "raw"},
		{1, "bricks"},
		{2, "tiles"},
		{3, "tiles"},
		{100, "tiles"},
	}
	for _, tt := range tests {
		m := model.HandleBlockState(BlockState{Block: block, Variant: tt.variant, Contexts: texture.NewContextList()})
		if got := variantName(t, m); got != tt.want {
			t.Errorf("variant %d: expected %s, got %s", tt.variant, tt.want, got)
		}
	}
}

func TestHandleNonCarvable(t *testing.T) {
	model := NewModel(NewCompositor(Cube(), nil, missing), Options{CacheItems: true})

	if m := model.HandleBlockState(BlockState{}); m != model.Placeholder() {
		t.Error("expected placeholder for block state without a block")
	}
	if m := model.HandleItemState(ItemStack{Damage: 3}); m != model.Placeholder() {
		t.Error("expected placeholder for item without a block")
	}
	if m := model.HandleBlockState(BlockState{Block: stubBlock{name: "air"}}); m != model.Placeholder() {
		t.Error("expected placeholder for block without face data")
	}
	if model.ItemCache().Len() != 0 {
		t.Errorf("expected placeholders not to be cached, got %d entries", model.ItemCache().Len())
	}
}

func TestHandleItemStateCaches(t *testing.T) {
	block := newStubBlock(t, "factory", "dots", "rust")
	model := NewModel(NewCompositor(Cube(), nil, missing), Options{CacheItems: true})

	first := model.HandleItemState(ItemStack{Block: block, Damage: 1})
	second := model.HandleItemState(ItemStack{Block: block, Damage: 1})
	if first != second {
		t.Error("expected cached mesh to be reused")
	}

	// Out-of-range damage clamps onto the same key
	if m := model.HandleItemState(ItemStack{Block: block, Damage: 9}); m != first {
		t.Error("expected clamped damage to hit the cache")
	}
	if got := variantName(t, first); got != "rust" {
		t.Errorf("expected variant rust, got %s", got)
	}

	model.HandleItemState(ItemStack{Block: block, Damage: 0})

	cache := model.ItemCache()
	if cache.Len() != 2 {
		t.Errorf("expected 2 cached meshes, got %d", cache.Len())
	}
	hits, misses := cache.Stats()
	if hits != 2 || misses != 2 {
		t.Errorf("expected 2 hits and 2 misses, got %d and %d", hits, misses)
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", cache.Len())
	}
	if m := model.HandleItemState(ItemStack{Block: block, Damage: 1}); m == first {
		t.Error("expected a fresh mesh after Clear")
	}
}

func TestHandleItemStateWithoutCache(t *testing.T) {
	block := newStubBlock(t, "factory", "dots")
	model := NewModel(NewCompositor(Cube(), nil, missing), Options{})

	if model.ItemCache() != nil {
		t.Fatal("expected no item cache")
	}
	a := model.HandleItemState(ItemStack{Block: block})
	b := model.HandleItemState(ItemStack{Block: block})
	if a == b {
		t.Error("expected a new mesh per call without caching")
	}
	if a.QuadCount() != geom.FacingCount {
		t.Errorf("expected %d quads, got %d", geom.FacingCount, a.QuadCount())
	}
}

func TestHandleItemStateIgnoresPass(t *testing.T) {
	solid := face.New(geom.Solid, nil, newStub("s", texture.KindNormal, 1, 1))
	glass := face.New(geom.Translucent, nil, newStub("g", texture.KindNormal, 1, 1))
	v := face.NewVariation("v", solid, map[geom.Facing]*face.Face{geom.Up: glass})
	data, err := face.NewBlockFaceData(v)
	if err != nil {
		t.Fatalf("NewBlockFaceData: %v", err)
	}
	block := stubBlock{name: "window", data: data}
	model := NewModel(NewCompositor(Cube(), FixedLayer(geom.Cutout), missing), Options{})

	if n := model.HandleItemState(ItemStack{Block: block}).QuadCount(); n != geom.FacingCount {
		t.Errorf("expected item to merge every layer (%d quads), got %d", geom.FacingCount, n)
	}
	if n := model.HandleBlockState(BlockState{Block: block, Contexts: texture.NewContextList()}).QuadCount(); n != 0 {
		t.Errorf("expected no quads on the cutout pass, got %d", n)
	}
}

func TestItemCacheKeyedByFaceData(t *testing.T) {
	old := newStubBlock(t, "factory", "dots")
	redefined := newStubBlock(t, "factory", "rust")
	model := NewModel(NewCompositor(Cube(), nil, missing), Options{CacheItems: true})

	first := model.HandleItemState(ItemStack{Block: old})
	second := model.HandleItemState(ItemStack{Block: redefined})
	if first == second {
		t.Fatal("expected redefined block not to hit the old mesh")
	}
	if got := variantName(t, second); got != "rust" {
		t.Errorf("expected variant rust, got %s", got)
	}
	if n := model.ItemCache().Len(); n != 2 {
		t.Errorf("expected 2 cached meshes, got %d", n)
	}
}
