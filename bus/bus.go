// Package bus implements the NES CPU memory map: RAM, PPU register
// mirroring, gamepad ports, OAM DMA, and PRG-ROM — the single
// concrete cpu.Memory the CPU is mounted on outside of tests.
package bus

import (
	"fmt"

	"github.com/nesgo/nesgo/cartridge"
	"github.com/nesgo/nesgo/gamepad"
	"github.com/nesgo/nesgo/ppu"
)

const (
	ramSize      = 0x0800
	ramMirror    = 0x1FFF
	ppuRegStart  = 0x2000
	ppuMirrorEnd = 0x3FFF
	ppuRegMask   = 0x2007
	apuStart     = 0x4000
	apuEnd       = 0x4015
	oamDMAAddr   = 0x4014
	gamepad1Addr = 0x4016
	gamepad2Addr = 0x4017
	unmappedEnd  = 0x7FFF
	prgStart     = 0x8000
)

// WriteToPRGROMError reports an attempted write into cartridge
// PRG-ROM space, which SPEC_FULL.md §7 treats as fatal: a ROM or
// mapper bug, not a recoverable condition.
type WriteToPRGROMError struct {
	Addr uint16
}

func (e *WriteToPRGROMError) Error() string {
	return fmt.Sprintf("bus: write to PRG-ROM at %#04x", e.Addr)
}

// Bus is the CPU-side memory map. It owns 2 KiB of work RAM, the PRG
// bank handed over by the cartridge, the PPU, and gamepad 1.
// Gamepad 2 is present in the address map (per SPEC_FULL.md §4.2) but
// not modeled as a device: reads return 0 and writes are dropped,
// exactly like the unimplemented APU registers.
type Bus struct {
	ram [ramSize]byte
	prg []byte

	PPU     *ppu.PPU
	Gamepad *gamepad.Gamepad

	cycles uint64
	vsync  func(*ppu.PPU, *gamepad.Gamepad)

	// OnLoggedEvent, if set, is called for the "logged, not fatal"
	// conditions SPEC_FULL.md §7 describes (write-only PPU register
	// reads, PPUSTATUS writes, unmapped-address accesses). The bus
	// never logs on its own — it only ever surfaces the condition as
	// a value passed to this hook, so cmd/nesgo can route it through
	// structured logging without the bus importing a logging package.
	OnLoggedEvent func(msg string)
}

// New returns a Bus that owns cart's PRG bank and a freshly built PPU
// over cart's CHR bank and mirroring mode. vsync is invoked once per
// completed frame; see Tick.
func New(cart *cartridge.Cartridge, vsync func(*ppu.PPU, *gamepad.Gamepad)) *Bus {
	return &Bus{
		prg:     cart.PRG,
		PPU:     ppu.New(cart.CHR, cart.Mirroring),
		Gamepad: gamepad.New(),
		vsync:   vsync,
	}
}

func (b *Bus) logf(format string, args ...any) {
	if b.OnLoggedEvent != nil {
		b.OnLoggedEvent(fmt.Sprintf(format, args...))
	}
}

// ReadU8 dispatches a CPU read through the memory map described in
// SPEC_FULL.md §4.5.
func (b *Bus) ReadU8(addr uint16) uint8 {
	switch {
	case addr <= ramMirror:
		return b.ram[addr&0x07FF]
	case addr <= ppuMirrorEnd:
		return b.readPPU(addr & ppuRegMask)
	case addr >= apuStart && addr <= apuEnd:
		return 0
	case addr == gamepad1Addr:
		return b.Gamepad.Read()
	case addr == gamepad2Addr:
		return 0
	case addr <= unmappedEnd:
		b.logf("bus: read from unmapped address %#04x", addr)
		return 0
	default:
		return b.readPRG(addr)
	}
}

func (b *Bus) readPPU(reg uint16) uint8 {
	switch reg {
	case 0x2002:
		return b.PPU.ReadStatus()
	case 0x2004:
		return b.PPU.ReadOAMData()
	case 0x2007:
		return b.PPU.ReadData()
	default:
		b.logf("bus: read from write-only PPU register %#04x", ppuRegStart+reg)
		return 0
	}
}

func (b *Bus) readPRG(addr uint16) uint8 {
	index := addr - prgStart
	if len(b.prg) == prgBlockSize16K {
		index &= 0x3FFF
	}
	return b.prg[index]
}

const prgBlockSize16K = 16384

// WriteU8 dispatches a CPU write through the memory map. Writes into
// PRG-ROM space panic with *WriteToPRGROMError, a fatal condition the
// host is expected to recover and log.
func (b *Bus) WriteU8(addr uint16, v uint8) {
	switch {
	case addr <= ramMirror:
		b.ram[addr&0x07FF] = v
	case addr <= ppuMirrorEnd:
		b.writePPU(addr&ppuRegMask, v)
	case addr == oamDMAAddr:
		b.doOAMDMA(v)
	case addr >= apuStart && addr <= apuEnd:
		// APU writes are accepted and ignored; out of scope.
	case addr == gamepad1Addr:
		b.Gamepad.Write(v)
	case addr == gamepad2Addr:
		// Gamepad 2 writes are ignored.
	case addr <= unmappedEnd:
		b.logf("bus: write to unmapped address %#04x", addr)
	default:
		panic(&WriteToPRGROMError{Addr: addr})
	}
}

func (b *Bus) writePPU(reg uint16, v uint8) {
	switch reg {
	case 0x2000:
		b.PPU.WriteControl(v)
	case 0x2001:
		b.PPU.WriteMask(v)
	case 0x2002:
		b.logf("bus: write to PPUSTATUS (%#02x) discarded", v)
	case 0x2003:
		b.PPU.WriteOAMAddress(v)
	case 0x2004:
		b.PPU.WriteOAMData(v)
	case 0x2005:
		b.PPU.WriteScroll(v)
	case 0x2006:
		b.PPU.WriteAddress(v)
	case 0x2007:
		b.PPU.WriteData(v)
	}
}

// doOAMDMA implements the 0x4014 write: read 256 bytes starting at
// CPU address value<<8 and stream them into OAM. Reading through
// ReadU8 (rather than poking ram/prg directly) means a DMA source
// page in RAM or PRG-ROM both work, matching real hardware.
func (b *Bus) doOAMDMA(value uint8) {
	base := uint16(value) << 8
	data := make([]byte, 256)
	for i := range data {
		data[i] = b.ReadU8(base + uint16(i))
	}
	b.PPU.WriteOAMDMA(data)
}

// Tick charges cpuCycles to the bus's running total, clocks the PPU
// three dots per CPU cycle, and invokes the vsync callback exactly
// once per completed frame — detected as the PPU's pending-NMI flag
// transitioning from absent to present, per SPEC_FULL.md §4.5.
func (b *Bus) Tick(cpuCycles uint8) {
	b.cycles += uint64(cpuCycles)

	before := b.PPU.NMIPending()
	b.PPU.Tick(uint16(cpuCycles) * 3)
	after := b.PPU.NMIPending()

	if after && !before && b.vsync != nil {
		b.vsync(b.PPU, b.Gamepad)
	}
}

// PollNMI takes and clears the PPU's pending-NMI flag; the CPU calls
// this once before every instruction fetch.
func (b *Bus) PollNMI() bool { return b.PPU.PollNMI() }

// Cycles reports the bus's running CPU-cycle total.
func (b *Bus) Cycles() uint64 { return b.cycles }
