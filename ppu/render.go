package ppu

import "github.com/nesgo/nesgo/cartridge"

const (
	// FrameWidth and FrameHeight are the NES's fixed output resolution.
	FrameWidth  = 256
	FrameHeight = 240
)

// Frame is a 256x240 RGB framebuffer, three bytes per pixel, row-major.
type Frame struct {
	Pix []uint8
}

// NewFrame allocates a zeroed frame.
func NewFrame() *Frame {
	return &Frame{Pix: make([]uint8, FrameWidth*FrameHeight*3)}
}

// SetPixel stores an RGB triple at (x, y). Out-of-bounds writes are
// silently dropped, matching the scroll-shifted draws below which can
// compute coordinates slightly outside the frame.
func (f *Frame) SetPixel(x, y int, c Color) {
	if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
		return
	}
	base := y*3*FrameWidth + x*3
	f.Pix[base] = c.R
	f.Pix[base+1] = c.G
	f.Pix[base+2] = c.B
}

// bgPalette resolves the four-color background palette for the tile
// at (column, row), reading the attribute byte from the tail of the
// given nametable bank per SPEC_FULL.md §4.7.
func bgPalette(palette []byte, nametable []byte, column, row int) [4]uint8 {
	attrIndex := row/4*8 + column/4
	attrByte := nametable[0x3C0+attrIndex]

	var shift uint
	switch {
	case column%4/2 == 0 && row%4/2 == 0:
		shift = 0
	case column%4/2 == 1 && row%4/2 == 0:
		shift = 2
	case column%4/2 == 0 && row%4/2 == 1:
		shift = 4
	default:
		shift = 6
	}
	idx := (attrByte >> shift) & 0x03

	start := 1 + int(idx)*4
	return [4]uint8{palette[0], palette[start], palette[start+1], palette[start+2]}
}

func spritePalette(palette []byte, paletteIndex uint8) [4]uint8 {
	start := 0x11 + int(paletteIndex)*4
	return [4]uint8{0, palette[start], palette[start+1], palette[start+2]}
}

type viewRect struct {
	x1, y1, x2, y2 int
}

func renderNametable(p *PPU, frame *Frame, table []byte, view viewRect, shiftX, shiftY int) {
	bank := p.Ctrl.BackgroundPatternAddress()
	palette := p.Palette()

	for i := 0; i < 0x3C0; i++ {
		index := uint16(table[i])
		column := i % 32
		row := i / 32
		head := int(bank) + int(index)*16
		tile := p.CHR()[head : head+16]
		pal := bgPalette(palette, table, column, row)

		for y := 0; y < 8; y++ {
			hi := tile[y]
			lo := tile[y+8]
			for x := 7; x >= 0; x-- {
				value := ((hi >> uint(x)) & 1) | (((lo >> uint(x)) & 1) << 1)
				var c Color
				switch value {
				case 0:
					c = SystemPalette[palette[0]]
				default:
					c = SystemPalette[pal[value]]
				}

				pixelX := column*8 + (7 - x)
				pixelY := row*8 + y
				if pixelX >= view.x1 && pixelX < view.x2 && pixelY >= view.y1 && pixelY < view.y2 {
					frame.SetPixel(shiftX+pixelX, shiftY+pixelY, c)
				}
			}
		}
	}
}

// Render composites a full frame from the given PPU's current state:
// a background pass over the active (and, when scrolled, auxiliary)
// nametable, followed by a reverse OAM walk for sprites. Ported in
// meaning from original_source/src/renderer.rs.
func Render(p *PPU, frame *Frame) {
	scrollX := int(p.Scroll.X)
	scrollY := int(p.Scroll.Y)

	mainTable, auxTable := activeTables(p)

	renderNametable(p, frame, mainTable,
		viewRect{scrollX, scrollY, FrameWidth, FrameHeight},
		-scrollX, -scrollY)

	switch {
	case scrollX > 0:
		renderNametable(p, frame, auxTable,
			viewRect{0, 0, scrollX, FrameHeight},
			FrameWidth-scrollX, 0)
	case scrollY > 0:
		renderNametable(p, frame, auxTable,
			viewRect{0, 0, FrameWidth, scrollY},
			0, FrameHeight-scrollY)
	}

	renderSprites(p, frame)
}

// activeTables picks the main/auxiliary nametable pair the way
// renderer.rs does: by (mirroring, active nametable base address).
func activeTables(p *PPU) (main, aux []byte) {
	base := p.Ctrl.NametableAddress()
	mirroring := p.Mirroring()

	switch {
	case mirroring == cartridge.Vertical && (base == 0x2000 || base == 0x2800),
		mirroring == cartridge.Horizontal && (base == 0x2000 || base == 0x2400):
		return p.Nametable(0), p.Nametable(1)
	case mirroring == cartridge.Vertical && (base == 0x2400 || base == 0x2C00),
		mirroring == cartridge.Horizontal && (base == 0x2800 || base == 0x2C00):
		return p.Nametable(1), p.Nametable(0)
	default:
		table := int((base - 0x2000) / 0x400)
		return p.Nametable(table), p.Nametable((table + 1) % nametableBankCount)
	}
}

func renderSprites(p *PPU, frame *Frame) {
	oam := p.OAM()
	palette := p.Palette()
	bank := p.Ctrl.SpritePatternAddress()

	for i := len(oam) - 4; i >= 0; i -= 4 {
		tileIndex := uint16(oam[i+1])
		tx := int(oam[i+3])
		ty := int(oam[i])

		flipVertical := oam[i+2]&0x80 != 0
		flipHorizontal := oam[i+2]&0x40 != 0
		paletteIndex := oam[i+2] & 0x03
		sPalette := spritePalette(palette, paletteIndex)

		head := int(bank) + int(tileIndex)*16
		tile := p.CHR()[head : head+16]

		for y := 0; y < 8; y++ {
			hi := tile[y]
			lo := tile[y+8]
			for x := 7; x >= 0; x-- {
				value := ((hi >> uint(x)) & 1) | (((lo >> uint(x)) & 1) << 1)
				if value == 0 {
					continue
				}
				c := SystemPalette[sPalette[value]]

				px, py := 7-x, y
				switch {
				case flipHorizontal && flipVertical:
					frame.SetPixel(tx+7-px, ty+7-py, c)
				case flipHorizontal:
					frame.SetPixel(tx+7-px, ty+py, c)
				case flipVertical:
					frame.SetPixel(tx+px, ty+7-py, c)
				default:
					frame.SetPixel(tx+px, ty+py, c)
				}
			}
		}
	}
}
