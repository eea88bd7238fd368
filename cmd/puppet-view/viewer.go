package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/internal/presentation/avatar"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

var background = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}

// Viewer is the render loop and input surface. It implements ebiten.Game.
type Viewer struct {
	ctx       context.Context
	engine    *puppet.Engine
	model     image.Rectangle
	fightIdle []domain.ClipName

	last   time.Time
	cursor image.Point
	snap   domain.Snapshot
}

// NewViewer creates a viewer for engine. The engine loop must already be running.
func NewViewer(ctx context.Context, engine *puppet.Engine) *Viewer {
	return &Viewer{
		ctx:       ctx,
		engine:    engine,
		model:     image.Rect(screenWidth/2-80, 120, screenWidth/2+80, 420),
		fightIdle: engine.Config().Sequences.FightIdle,
		last:      time.Now(),
	}
}

// Update advances playback by the real frame time and forwards input.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	if err := v.engine.Advance(v.ctx, now.Sub(v.last)); err != nil {
		return err
	}
	v.last = now

	for _, t := range avatar.Triggers(v.sample(), v.model) {
		if _, err := v.engine.Dispatch(v.ctx, t); err != nil {
			return err
		}
	}

	snap, err := v.engine.Snapshot(v.ctx)
	if err != nil {
		return err
	}
	v.snap = snap
	return nil
}

func (v *Viewer) sample() avatar.Frame {
	x, y := ebiten.CursorPosition()
	cursor := image.Pt(x, y)
	f := avatar.Frame{
		Cursor:  cursor,
		Moved:   cursor != v.cursor,
		Clicked: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Keys:    len(inpututil.AppendJustPressedKeys(nil)) > 0 || len(inpututil.AppendJustPressedTouchIDs(nil)) > 0,
		Toggle:  inpututil.IsKeyJustPressed(ebiten.KeyF),
	}
	v.cursor = cursor
	return f
}

// Draw renders the model tinted by mode, one bar per pose layer and the status text.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	fill(screen, v.model, avatar.Tint(v.snap, v.fightIdle))

	for i, layer := range v.snap.Pose.Layers {
		y := v.model.Max.Y + 16 + i*14
		width := int(float64(v.model.Dx()) * layer.Weight)
		fill(screen, image.Rect(v.model.Min.X, y, v.model.Min.X+width, y+8), color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff})
	}

	status := fmt.Sprintf("mode: %s   hits: %d   busy: %v\nclip: %s\nidle timer: %v   fight timer: %v",
		v.snap.Mode, v.snap.HitCount, v.snap.Busy, v.snap.CurrentClip, v.snap.IdleArmed, v.snap.FightArmed)
	ebitenutil.DebugPrintAt(screen, status, 10, 10)
	ebitenutil.DebugPrintAt(screen, "hover: fight   click: hit   F: toggle   Esc: quit", 10, screenHeight-20)
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func fill(screen *ebiten.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	screen.SubImage(r).(*ebiten.Image).Fill(c)
}
