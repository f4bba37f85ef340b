package stage

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/lafriks/go-tiled"
)

//go:embed maps/*.tmx
var builtin embed.FS

// ErrNoSpawns is returned for maps without a Spawns object group.
var ErrNoSpawns = errors.New("stage: no spawn points")

const (
	slopeUpRight = "slope_up_right"
	slopeUpLeft  = "slope_up_left"
)

// Default loads the built-in arena.
func Default() (*Stage, error) {
	return Builtin("arena")
}

// Builtin loads an embedded map by name.
func Builtin(name string) (*Stage, error) {
	return Load(builtin, path.Join("maps", name+".tmx"))
}

// Names lists the embedded maps.
func Names() []string {
	entries, err := fs.ReadDir(builtin, "maps")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".tmx" {
			out = append(out, strings.TrimSuffix(e.Name(), ".tmx"))
		}
	}
	sort.Strings(out)
	return out
}

// Load parses a TMX file from fsys.
func Load(fsys fs.FS, tmxPath string) (*Stage, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("stage: load %s: %w", tmxPath, err)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("stage: load %s: tile size %dx%d", tmxPath, m.TileWidth, m.TileHeight)
	}

	ppu := float64(m.TileWidth)
	conv := converter{
		ppu:    ppu,
		width:  float64(m.Width),
		height: float64(m.Height*m.TileHeight) / ppu,
	}
	s := &Stage{
		Name:   strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath)),
		Bounds: gamemath.Rect{X: -conv.width / 2, Y: -conv.height / 2, W: conv.width, H: conv.height},
	}

	for _, og := range m.ObjectGroups {
		for _, o := range og.Objects {
			switch og.Name {
			case "Ground":
				if ramp, ok := conv.ramp(o); ok {
					s.Ramps = append(s.Ramps, ramp)
					continue
				}
				s.Ground = append(s.Ground, conv.rect(o))
			case "Platforms":
				s.Platforms = append(s.Platforms, conv.rect(o))
			case "Walls":
				s.Walls = append(s.Walls, conv.rect(o))
			case "Ramps":
				ramp, ok := conv.ramp(o)
				if !ok {
					ramp = Ramp{Rect: conv.rect(o), UpRight: true}
				}
				s.Ramps = append(s.Ramps, ramp)
			case "Spawns":
				s.Spawns = append(s.Spawns, conv.point(o))
			case "RespawnAnchors":
				s.Anchors = append(s.Anchors, conv.point(o))
			case "SerumSpawns":
				s.SerumPoints = append(s.SerumPoints, conv.point(o))
			}
		}
	}

	if len(s.Spawns) == 0 {
		return nil, fmt.Errorf("stage: load %s: %w", tmxPath, ErrNoSpawns)
	}
	// left to right so player slots are stable
	sort.Slice(s.Spawns, func(i, j int) bool { return s.Spawns[i].X < s.Spawns[j].X })
	return s, nil
}

// converter maps y-down pixel coordinates to centered y-up units.
type converter struct {
	ppu    float64
	width  float64
	height float64
}

func (c converter) x(px float64) float64 { return px/c.ppu - c.width/2 }
func (c converter) y(py float64) float64 { return c.height/2 - py/c.ppu }

func (c converter) rect(o *tiled.Object) gamemath.Rect {
	return gamemath.Rect{
		X: c.x(o.X),
		Y: c.y(o.Y + o.Height),
		W: o.Width / c.ppu,
		H: o.Height / c.ppu,
	}
}

func (c converter) point(o *tiled.Object) gamemath.Vec {
	return gamemath.Vec{X: c.x(o.X), Y: c.y(o.Y)}
}

func (c converter) ramp(o *tiled.Object) (Ramp, bool) {
	kind := o.Class
	if kind == "" {
		kind = o.Type //nolint:staticcheck // older maps use the type attribute
	}
	switch kind {
	case slopeUpRight:
		return Ramp{Rect: c.rect(o), UpRight: true}, true
	case slopeUpLeft:
		return Ramp{Rect: c.rect(o), UpRight: false}, true
	}
	return Ramp{}, false
}
