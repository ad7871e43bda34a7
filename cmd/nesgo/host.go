package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nesgo/nesgo/gamepad"
	"github.com/nesgo/nesgo/ppu"
)

// keys mirrors console/controller.go's bit ordering: A, B, Select,
// Start, Up, Down, Left, Right — gamepad 1 only, matching
// SPEC_FULL.md §5's single mutable borrow (gamepad 2 is present on
// the bus but never modeled as a real device).
var keys = [8]ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeySpace, ebiten.KeyEnter,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
}

var buttonOrder = [8]gamepad.Button{
	gamepad.A, gamepad.B, gamepad.Select, gamepad.Start,
	gamepad.Up, gamepad.Down, gamepad.Left, gamepad.Right,
}

// Host implements ebiten.Game and owns only display state: the
// upload image and the screen ebiten.Image. It never touches the bus
// or CPU directly — its one point of contact with the core is vsync,
// installed as bus.New's callback, which is invoked from the
// emulation goroutine once per completed frame. A mutex guards the
// handoff between that goroutine and ebiten's Draw, since (unlike the
// teacher, which reads b.ppu.GetPixels() from Draw with no
// synchronization at all) two real goroutines are involved here.
type Host struct {
	mu     sync.Mutex
	img    *image.RGBA
	frame  *ppu.Frame
	screen *ebiten.Image
}

// NewHost allocates the upload buffers at the NES's fixed resolution.
func NewHost() *Host {
	return &Host{
		img:    image.NewRGBA(image.Rect(0, 0, ppu.FrameWidth, ppu.FrameHeight)),
		frame:  ppu.NewFrame(),
		screen: ebiten.NewImage(ppu.FrameWidth, ppu.FrameHeight),
	}
}

// vsync is the bus's per-frame callback: render the PPU's current
// state into the frame buffer and poll real keys into gamepad 1. It
// runs on the emulation goroutine, borrowing the PPU read-only and
// gamepad 1 mutably for its duration, per SPEC_FULL.md §5.
func (h *Host) vsync(p *ppu.PPU, pad *gamepad.Gamepad) {
	ppu.Render(p, h.frame)

	for i, k := range keys {
		pad.SetStatus(buttonOrder[i], ebiten.IsKeyPressed(k))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for y := 0; y < ppu.FrameHeight; y++ {
		for x := 0; x < ppu.FrameWidth; x++ {
			base := (y*ppu.FrameWidth + x) * 3
			h.img.SetRGBA(x, y, color.RGBA{
				R: h.frame.Pix[base],
				G: h.frame.Pix[base+1],
				B: h.frame.Pix[base+2],
				A: 0xFF,
			})
		}
	}
	h.screen.WritePixels(h.img.Pix)
}

// Update is a no-op: the emulation advances on its own goroutine,
// driven by CPU cycles rather than ebiten's frame callback, matching
// the teacher's console.Bus.Update (console/bus.go).
func (h *Host) Update() error { return nil }

// Draw copies the most recently rendered frame onto screen.
func (h *Host) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	screen.DrawImage(h.screen, nil)
}

// Layout returns the NES's fixed resolution so ebiten scales the
// window instead of the framebuffer, matching the teacher's
// console.Bus.Layout.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.FrameWidth, ppu.FrameHeight
}

// runWindow opens the ebiten window and blocks until it's closed.
func runWindow(h *Host) {
	ebiten.SetWindowSize(ppu.FrameWidth*2, ppu.FrameHeight*2)
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(h); err != nil {
		glog.Fatalf("nesgo: ebiten: %v", err)
	}
}
