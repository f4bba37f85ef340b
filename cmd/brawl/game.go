package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/match"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	groundColor   = color.RGBA{0x55, 0x5a, 0x64, 0xff}
	platformColor = color.RGBA{0x8a, 0x94, 0xa6, 0xff}
	wallColor     = color.RGBA{0x3c, 0x40, 0x48, 0xff}
	rampColor     = color.RGBA{0x6e, 0x76, 0x82, 0xff}
	droneColor    = color.RGBA{0xf0, 0xc0, 0x40, 0xff}
	serumColor    = color.RGBA{0x40, 0xe0, 0x90, 0xff}

	fighterColors = []color.RGBA{
		{0xe0, 0x50, 0x50, 0xff},
		{0x50, 0x80, 0xe0, 0xff},
		{0xd0, 0x60, 0xd0, 0xff},
		{0x60, 0xd0, 0xd0, 0xff},
	}
)

type game struct {
	ctx   context.Context
	m     *match.Match
	debug bool
}

func newGame(ctx context.Context, m *match.Match) *game {
	return &game{ctx: ctx, m: m, debug: true}
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	g.m.Advance(1 / float64(ebiten.TPS()))
	return nil
}

// view maps y-up world units to screen pixels around the camera.
type view struct {
	center gamemath.Vec
	ppu    float64
}

func (g *game) view() view {
	cam := g.m.Camera()
	zoom := cam.Zoom()
	if zoom <= 0 {
		zoom = 1
	}
	// zoom is the half height of the view in world units
	return view{center: cam.View(), ppu: screenHeight / (2 * zoom)}
}

func (v view) rect(r gamemath.Rect) (x, y, w, h float32) {
	sx := (r.X-v.center.X)*v.ppu + screenWidth/2
	sy := (v.center.Y-r.Top())*v.ppu + screenHeight/2
	return float32(sx), float32(sy), float32(r.W * v.ppu), float32(r.H * v.ppu)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1a, 0x1c, 0x22, 0xff})
	v := g.view()
	st := g.m.Stage()

	fill := func(r gamemath.Rect, c color.Color) {
		x, y, w, h := v.rect(r)
		vector.FillRect(screen, x, y, w, h, c, false)
	}
	for _, r := range st.Ground {
		fill(r, groundColor)
	}
	for _, r := range st.Walls {
		fill(r, wallColor)
	}
	for _, r := range st.Platforms {
		fill(r, platformColor)
	}
	for _, r := range st.Ramps {
		// stair-step the slope
		const steps = 8
		sw := r.Rect.W / steps
		for i := 0; i < steps; i++ {
			h := r.Rect.H * float64(i+1) / steps
			x := r.Rect.X + float64(i)*sw
			if !r.UpRight {
				x = r.Rect.Right() - float64(i+1)*sw
			}
			fill(gamemath.Rect{X: x, Y: r.Rect.Y, W: sw, H: h}, rampColor)
		}
	}

	size := g.m.Config().Pickups.Size
	for _, s := range g.m.Serums() {
		fill(gamemath.RectAround(s.Pos, size, size), serumColor)
	}
	for _, d := range g.m.Drones() {
		fill(gamemath.RectAround(d.Position(), 0.6, 0.3), droneColor)
	}
	for i, f := range g.m.Fighters() {
		c := fighterColors[i%len(fighterColors)]
		x, y, w, h := v.rect(f.Body().Rect())
		vector.FillRect(screen, x, y, w, h, c, false)
		if g.debug && f.Combat().Locked() {
			vector.StrokeRect(screen, x-2, y-2, w+4, h+4, 1, color.White, false)
		}
	}

	g.drawHUD(screen)
}

func (g *game) drawHUD(screen *ebiten.Image) {
	scores := g.m.Scores()
	for i, f := range g.m.Fighters() {
		s := scores[i]
		line := fmt.Sprintf("%s  %3.0f%%  KO %d  falls %d", f.Name, f.Damage(), s.KOs, s.Falls)
		ebitenutil.DebugPrintAt(screen, line, 10+i*240, 10)
	}
	if !g.debug {
		return
	}
	f := g.m.Fighters()[0]
	mv := f.Movement()
	info := fmt.Sprintf("tps %.0f  t %.1fs\npos %.2f,%.2f  vel %.2f,%.2f\ngrounded %v jumps %d dashing %v sliding %v wall %v\ncombo %d",
		ebiten.ActualTPS(), g.m.Time(),
		mv.Pos.X, mv.Pos.Y, mv.Vel.X, mv.Vel.Y,
		mv.Grounded, mv.JumpCount, mv.Dashing, mv.Sliding, mv.WallSliding,
		f.Combat().Combo())
	ebitenutil.DebugPrintAt(screen, info, 10, screenHeight-70)
}

func (g *game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}
