// meshtool is a CLI utility for inspecting carvable block definitions and
// the meshes composited from them.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/carvemesh/internal/assets"
	"github.com/Faultbox/carvemesh/internal/config"
	"github.com/Faultbox/carvemesh/internal/engine/model"
	"github.com/Faultbox/carvemesh/internal/engine/sprite"
	"github.com/Faultbox/carvemesh/internal/engine/texture"
	"github.com/Faultbox/carvemesh/internal/logger"
	"github.com/Faultbox/carvemesh/pkg/geom"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "composite", "c":
		cmdComposite(cfg, args)
	case "particle":
		cmdParticle(cfg, args)
	case "perspective":
		cmdPerspective(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - carvable block mesh utility

Usage:
  meshtool [-config file] [-debug] [-pass layer] [-defs a.yaml,b.yaml] <command> [options]

Commands:
  info [defs.yaml...]                          Show blocks, variants and atlas
  composite [-pass p] [-item] [-fill] <defs.yaml> <block> <variant>
                                               Composite a variant and list its quads
  particle <defs.yaml> <block> <variant>       Show a variant's particle sprite
  perspective <kind>                           Show the matrix for a camera transform

Layers: solid, cutout_mipped, cutout, translucent
Camera transforms: none, third_person, first_person, head, gui, ground, fixed

Examples:
  meshtool info blocks.yaml
  meshtool composite -pass cutout blocks.yaml factory 1
  meshtool composite -fill blocks.yaml factory 0
  meshtool composite -item blocks.yaml marble 2
  meshtool perspective third_person`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func loadManager(cfg *config.Config, paths []string) *assets.Manager {
	if len(paths) == 0 {
		paths = cfg.Assets.Definitions
	}
	m := assets.NewManager(sprite.NewAtlas(cfg.Assets.TileSize))
	if err := m.LoadAll(paths); err != nil {
		fail(err)
	}
	return m
}

func cmdInfo(cfg *config.Config, args []string) {
	m := loadManager(cfg, args)
	atlas := m.Atlas()

	blocks := m.Blocks()
	fmt.Printf("Blocks:  %d\n", len(blocks))
	fmt.Printf("Sprites: %d\n", atlas.Len())
	fmt.Printf("Atlas:   %dx%d (%dpx tiles)\n", atlas.Size(), atlas.Size(), atlas.TileSize())
	fmt.Println()

	for _, b := range blocks {
		fmt.Printf("%s\n", b.Name())
		for i, v := range b.FaceData().Variants() {
			kinds := v.Kinds()
			names := make([]string, len(kinds))
			for j, k := range kinds {
				names[j] = k.String()
			}
			fmt.Printf("  %2d %-16s %v\n", i, v.Name(), names)
		}
	}
}

func parseTarget(m *assets.Manager, blockName, variant string) (*assets.Block, int) {
	b, err := m.Block(blockName)
	if err != nil {
		fail(err)
	}
	idx, err := strconv.Atoi(variant)
	if err != nil {
		fail(fmt.Errorf("invalid variant %q: %w", variant, err))
	}
	return b, idx
}

func cmdComposite(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("composite", flag.ExitOnError)
	passName := fs.String("pass", "", "Render pass (defaults to render.pass)")
	item := fs.Bool("item", false, "Composite as an item: no context, every layer")
	fill := fs.Bool("fill", false, "Surround the block with copies of itself")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool composite [-pass p] [-item] [-fill] <defs.yaml> <block> <variant>")
		os.Exit(1)
	}

	pass := cfg.Pass()
	if *passName != "" {
		l, err := geom.ParseLayer(*passName)
		if err != nil {
			fail(err)
		}
		pass = l
	}

	m := loadManager(cfg, []string{fs.Arg(0)})
	b, idx := parseTarget(m, fs.Arg(1), fs.Arg(2))

	c := model.NewCompositor(model.Cube(), model.FixedLayer(pass), m.Atlas().Missing())
	mdl := model.NewModel(c, model.Options{CacheItems: cfg.Render.ItemCache})

	var mesh *model.Mesh
	if *item {
		mesh = mdl.HandleItemState(model.ItemStack{Block: b, Damage: idx})
		fmt.Printf("%s variant %d as item\n", b.Name(), b.FaceData().Clamp(idx))
	} else {
		ctx, err := neighbourhood(b, idx, *fill)
		if err != nil {
			fail(err)
		}
		mesh = mdl.HandleBlockState(model.BlockState{Block: b, Variant: idx, Contexts: ctx})
		fmt.Printf("%s variant %d on pass %s (%d contexts)\n", b.Name(), b.FaceData().Clamp(idx), pass, ctx.Len())
	}

	logger.Debug("composited",
		zap.String("block", b.Name()),
		zap.Int("quads", mesh.QuadCount()))

	for _, f := range geom.Facings {
		quads := mesh.FaceQuads(f)
		fmt.Printf("  %-6s %d quads\n", f, len(quads))
		for _, q := range quads {
			lo, hi := q.UVBounds()
			fmt.Printf("         %-24s uv %.4f,%.4f .. %.4f,%.4f  %s\n", q.Sprite, lo.X(), lo.Y(), hi.X(), hi.Y(), q.Layer)
		}
	}
	if general := mesh.GeneralQuads(); len(general) > 0 {
		fmt.Printf("  general %d quads\n", len(general))
	}
	fmt.Printf("Total: %d quads\n", mesh.QuadCount())
}

// neighbourhood builds the contexts for the block at the origin, optionally
// surrounded by copies of itself.
func neighbourhood(b *assets.Block, idx int, fill bool) (*texture.ContextList, error) {
	id := fmt.Sprintf("%s#%d", b.Name(), b.FaceData().Clamp(idx))
	origin := texture.Pos{}
	world := texture.MapWorld{origin: id}
	if fill {
		for x := -1; x <= 1; x++ {
			for y := -1; y <= 1; y++ {
				for z := -1; z <= 1; z++ {
					world[texture.Pos{X: x, Y: y, Z: z}] = id
				}
			}
		}
	}
	return texture.BuildContexts(b.FaceData().ForVariant(idx).Kinds(), world, origin)
}

func cmdParticle(cfg *config.Config, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool particle <defs.yaml> <block> <variant>")
		os.Exit(1)
	}

	m := loadManager(cfg, args[:1])
	b, idx := parseTarget(m, args[1], args[2])

	c := model.NewCompositor(model.Cube(), nil, m.Atlas().Missing())
	mesh := model.NewModel(c, model.Options{}).HandleItemState(model.ItemStack{Block: b, Damage: idx})

	s := mesh.ParticleSprite()
	fmt.Printf("Sprite: %s\n", s.Name)
	fmt.Printf("Tile:   %d,%d %dx%d\n", s.X, s.Y, s.Width, s.Height)
	fmt.Printf("UV:     %.4f,%.4f .. %.4f,%.4f\n", s.MinU, s.MinV, s.MaxU, s.MaxV)
}

func cmdPerspective(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool perspective <kind>")
		os.Exit(1)
	}

	kind, err := model.ParseCameraTransform(args[0])
	if err != nil {
		fail(err)
	}

	mesh := model.NewCompositor(model.Cube(), nil, nil).Placeholder()
	p := mesh.HandlePerspective(kind)
	if p.Matrix == nil {
		fmt.Printf("%s: no matrix\n", kind)
		return
	}

	fmt.Printf("%s:\n", kind)
	for row := 0; row < 4; row++ {
		r := p.Matrix.Row(row)
		fmt.Printf("  % .4f % .4f % .4f % .4f\n", r[0], r[1], r[2], r[3])
	}
}
