package render

import (
	"github.com/go-faster/errors"
	"github.com/hajimehoshi/ebiten/v2"
)

// Backend draws the presented texture onto the window.
type Backend interface {
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int) (int, int)
}

// Game adapts a Loop to ebiten.Game. Update is the loop's tick.
type Game struct {
	loop    *Loop
	backend Backend
}

func NewGame(loop *Loop, backend Backend) *Game {
	return &Game{loop: loop, backend: backend}
}

func (g *Game) Update() error {
	err := g.loop.Tick()
	if errors.Is(err, ErrShutdown) {
		return ebiten.Termination
	}
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.backend.Layout(outsideWidth, outsideHeight)
}

// Run blocks in the Ebitengine main loop until the user quits (nil) or
// presentation fails. Must be called from the main goroutine.
func Run(g *Game) error {
	return ebiten.RunGame(g)
}
