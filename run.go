package glade

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	ShowHUD   bool
	Resizable bool

	// OnUpdate, when set, is called after the garden's Update each tick.
	// Returning an error stops the game (ebiten.Termination exits cleanly).
	OnUpdate func(g *Garden) error
}

// game adapts a Garden to ebiten.Game.
type game struct {
	garden  *Garden
	cfg     RunConfig
	clock   *Clock
	pointer PointerInput
	fps     fpsWidget
}

func (a *game) Update() error {
	f := a.clock.Frame()
	ps := a.pointer.Read()
	if len(a.garden.injectQueue) == 0 {
		a.garden.SetPointer(ps.X, ps.Y, ps.OK)
		if ps.Clicked {
			a.garden.Click(ps.X, ps.Y)
		}
	}
	a.garden.Update(f)
	if a.cfg.ShowFPS {
		a.fps.update(f.Delta)
	}
	if a.cfg.OnUpdate != nil {
		return a.cfg.OnUpdate(a.garden)
	}
	return nil
}

func (a *game) Draw(screen *ebiten.Image) {
	a.garden.Draw(screen)
	if a.cfg.ShowHUD {
		a.garden.DrawHUD(screen)
	}
	if a.cfg.ShowFPS {
		a.fps.draw(screen)
	}
}

func (a *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !a.cfg.Resizable {
		return a.cfg.Width, a.cfg.Height
	}
	a.garden.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and drives g with wall-clock frames until the window
// closes. Clock is the garden's clock; call Clock().Sync to follow a server.
func Run(g *Garden, cfg RunConfig) error {
	if g == nil {
		return fmt.Errorf("glade: run: nil garden")
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "Glade"
	}
	g.Resize(cfg.Width, cfg.Height)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(&game{garden: g, cfg: cfg, clock: g.Clock()}); err != nil {
		return fmt.Errorf("glade: run: %w", err)
	}
	return nil
}
