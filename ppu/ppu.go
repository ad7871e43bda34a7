// Package ppu implements the NES Picture Processing Unit: its
// register set, VRAM/OAM/palette storage with nametable mirroring,
// and the scanline/dot state machine that drives VBlank and NMI.
package ppu

import (
	"fmt"

	"github.com/nesgo/nesgo/cartridge"
)

const (
	dotsPerScanline    = 341
	scanlinesPerFrame  = 262
	vblankScanline     = 241
	oamSize            = 256
	paletteSize        = 32
	nametableBankSize  = 0x400
	nametableBankCount = 4
)

// IllegalAddressError reports an access to the 0x3000-0x3EFF window,
// which is unmapped on real hardware.
type IllegalAddressError struct {
	Addr uint16
}

func (e *IllegalAddressError) Error() string {
	return fmt.Sprintf("ppu: illegal address %#04x", e.Addr)
}

// PPU is the pixel engine. It owns its CHR pattern bank (the
// cartridge's CHR slice, taken over at construction without copying —
// see SPEC_FULL.md's ownership note:
// CPU owns Bus, Bus owns PPU, PPU needs no back-pointer to Bus or CPU),
// its nametable/OAM/palette RAM, and its six registers.
type PPU struct {
	chr       []byte
	nametable [nametableBankCount][nametableBankSize]byte
	palette   [paletteSize]byte
	oam       [oamSize]byte
	oamAddr   uint8

	readBuffer uint8
	dot        int
	scanline   int
	pendingNMI bool

	mirroring cartridge.Mirroring

	Addr   *AddressLatch
	Scroll *ScrollRegister
	Ctrl   *ControlRegister
	Mask   *MaskRegister
	status *StatusRegister
}

// New returns a PPU that owns chr (the cartridge's CHR bank) and
// renders according to mirroring.
func New(chr []byte, mirroring cartridge.Mirroring) *PPU {
	return &PPU{
		chr:       chr,
		mirroring: mirroring,
		Addr:      newAddressLatch(),
		Scroll:    newScrollRegister(),
		Ctrl:      &ControlRegister{},
		Mask:      &MaskRegister{},
		status:    &StatusRegister{},
	}
}

// nametableSlot resolves a logical nametable index (0-3, selected by
// PPUCTRL's nametable-base bits) to the physical bank backing it,
// per SPEC_FULL.md §4.4's mirroring table. FourScreen mirroring on
// real hardware relies on extra cartridge-side VRAM (a mapper
// capability outside this emulator's scope); identity mapping here
// approximates it using the four physical banks this PPU always
// keeps, rather than panicking.
func (p *PPU) nametableSlot(table int) int {
	switch p.mirroring {
	case cartridge.Horizontal:
		return [4]int{0, 0, 1, 1}[table]
	case cartridge.Vertical:
		return [4]int{0, 1, 0, 1}[table]
	default: // FourScreen
		return table
	}
}

// Nametable returns the 1 KiB physical bank backing logical table
// index (0-3), resolved through the active mirroring mode. Used by
// the renderer, which otherwise never needs to know about mirroring.
func (p *PPU) Nametable(table int) []byte {
	return p.nametable[p.nametableSlot(table)][:]
}

func (p *PPU) mirrorNametableAddr(addr uint16) (table int, offset uint16) {
	idx := (addr - 0x2000) & 0x0FFF
	return int(idx / nametableBankSize), idx % nametableBankSize
}

func mirrorPaletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) % paletteSize
	switch idx {
	case 0x10, 0x14, 0x18, 0x1C:
		idx -= 0x10
	}
	return idx
}

// CHR returns the pattern-table bytes (read-only view for the renderer).
func (p *PPU) CHR() []byte { return p.chr }

// OAM returns the 256-byte sprite attribute table (read-only view).
func (p *PPU) OAM() []byte { return p.oam[:] }

// Palette returns the 32-byte palette RAM (read-only view).
func (p *PPU) Palette() []byte { return p.palette[:] }

// Mirroring reports the active nametable mirroring mode.
func (p *PPU) Mirroring() cartridge.Mirroring { return p.mirroring }

// WriteControl stores PPUCTRL and raises a pending NMI if the write
// turns on generate-NMI while status already has VBlank set and the
// previous control value had generate-NMI off.
func (p *PPU) WriteControl(b uint8) {
	prevNMI := p.Ctrl.GenerateNMI()
	p.Ctrl.Set(b)
	if p.Ctrl.GenerateNMI() && !prevNMI && p.status.VBlank() {
		p.pendingNMI = true
	}
}

// WriteMask stores PPUMASK.
func (p *PPU) WriteMask(b uint8) { p.Mask.Set(b) }

// ReadStatus returns PPUSTATUS, then clears VBlank and resets the
// address-latch and scroll-register write toggles.
func (p *PPU) ReadStatus() uint8 {
	v := p.status.Get()
	p.status.SetVBlank(false)
	p.Addr.Reset()
	p.Scroll.Reset()
	return v
}

// WriteOAMAddress stores OAMADDR.
func (p *PPU) WriteOAMAddress(b uint8) { p.oamAddr = b }

// ReadOAMData reads OAMDATA at the current OAM address.
func (p *PPU) ReadOAMData() uint8 { return p.oam[p.oamAddr] }

// WriteOAMData writes OAMDATA at the current OAM address and
// increments it, wrapping at 256.
func (p *PPU) WriteOAMData(b uint8) {
	p.oam[p.oamAddr] = b
	p.oamAddr++
}

// WriteOAMDMA streams 256 bytes into OAM starting at the current OAM
// address, as if each byte had been written through OAMDATA. The bus
// decodes the 0x4014 write and supplies the source bytes; this is the
// atomic 256-byte copy SPEC_FULL.md's concurrency model requires.
func (p *PPU) WriteOAMDMA(data []byte) {
	for _, b := range data {
		p.WriteOAMData(b)
	}
}

// WriteScroll forwards a byte to the scroll register's two-write sequence.
func (p *PPU) WriteScroll(b uint8) { p.Scroll.Update(b) }

// WriteAddress forwards a byte to the address latch's two-write sequence.
func (p *PPU) WriteAddress(b uint8) { p.Addr.Update(b) }

// ReadData implements PPUDATA's buffered-read semantics: it returns
// the previously buffered byte, refills the buffer from the current
// address, and advances the address by the control register's
// stride. Palette reads bypass the buffer and return immediately, but
// the buffer still gets refilled with the nametable byte that would
// sit "behind" the palette in address space.
func (p *PPU) ReadData() uint8 {
	addr := p.Addr.Get()
	p.Addr.Increment(p.Ctrl.VRAMIncrement())

	switch {
	case addr < 0x2000:
		result := p.readBuffer
		p.readBuffer = p.chr[addr]
		return result
	case addr < 0x3000:
		table, offset := p.mirrorNametableAddr(addr)
		result := p.readBuffer
		p.readBuffer = p.Nametable(table)[offset]
		return result
	case addr < 0x3F00:
		panic(&IllegalAddressError{Addr: addr})
	default:
		table, offset := p.mirrorNametableAddr(addr - 0x1000)
		p.readBuffer = p.Nametable(table)[offset]
		return p.palette[mirrorPaletteIndex(addr)]
	}
}

// WriteData implements PPUDATA's write semantics: write at the
// current address, then advance it. Writes into the CHR bank are
// accepted (so CHR-RAM boards work) but have no special side effect.
func (p *PPU) WriteData(b uint8) {
	addr := p.Addr.Get()
	p.Addr.Increment(p.Ctrl.VRAMIncrement())

	switch {
	case addr < 0x2000:
		p.chr[addr] = b
	case addr < 0x3000:
		table, offset := p.mirrorNametableAddr(addr)
		p.Nametable(table)[offset] = b
	case addr < 0x3F00:
		panic(&IllegalAddressError{Addr: addr})
	default:
		p.palette[mirrorPaletteIndex(addr)] = b
	}
}

// Tick advances the scanline/dot counter by ppuCycles dots. It
// reports whether a frame just completed (scanline wrapped from 261
// to 0). VBlank is set on entry to scanline 241, at which point a
// pending NMI is raised if PPUCTRL's generate-NMI bit is set.
func (p *PPU) Tick(ppuCycles uint16) (frameComplete bool) {
	p.dot += int(ppuCycles)
	for p.dot >= dotsPerScanline {
		p.dot -= dotsPerScanline
		p.scanline++

		if p.scanline == vblankScanline {
			p.status.SetVBlank(true)
			if p.Ctrl.GenerateNMI() {
				p.pendingNMI = true
			}
		}
		if p.scanline == scanlinesPerFrame {
			p.status.SetVBlank(false)
			p.scanline = 0
			frameComplete = true
		}
	}
	return frameComplete
}

// NMIPending peeks at the pending-NMI flag without clearing it. The
// bus uses this to detect the absent-to-present transition that marks
// a freshly completed frame.
func (p *PPU) NMIPending() bool { return p.pendingNMI }

// PollNMI takes and clears the pending-NMI flag. The CPU calls this
// once before every instruction fetch.
func (p *PPU) PollNMI() bool {
	v := p.pendingNMI
	p.pendingNMI = false
	return v
}
