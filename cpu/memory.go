package cpu

// Memory is the small capability set the CPU needs from whatever it's
// mounted on: byte-addressable read/write, a cycle clock, and an NMI
// poll. bus.Bus satisfies this with the full memory-mapped dispatcher;
// FlatMemory satisfies it with a bare 64 KiB array for opcode-table
// unit tests that don't need a PPU at all. Grounded on
// bdwalton-gintendo/mos6502/memory.go's Memory abstraction, widened to
// also carry Tick/PollNMI so the CPU never needs a second concrete
// dependency to receive interrupts.
type Memory interface {
	ReadU8(addr uint16) uint8
	WriteU8(addr uint16, v uint8)
	Tick(cycles uint8)
	PollNMI() bool
}

func readU16(m Memory, addr uint16) uint16 {
	lo := uint16(m.ReadU8(addr))
	hi := uint16(m.ReadU8(addr + 1))
	return hi<<8 | lo
}

func writeU16(m Memory, addr uint16, v uint16) {
	m.WriteU8(addr, uint8(v))
	m.WriteU8(addr+1, uint8(v>>8))
}

// FlatMemory is a 64 KiB array implementing Memory with no devices
// behind it: every address is plain RAM, Tick is a no-op, and NMI
// never fires. Used to run the CPU in isolation against canned
// programs (e.g. the nestest-derived arithmetic/opcode tests), the
// "flat memory" half of the two-implementation design SPEC_FULL.md
// §9 calls for.
type FlatMemory struct {
	ram [65536]uint8
}

// NewFlatMemory returns a zeroed 64 KiB memory.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

func (m *FlatMemory) ReadU8(addr uint16) uint8     { return m.ram[addr] }
func (m *FlatMemory) WriteU8(addr uint16, v uint8) { m.ram[addr] = v }
func (m *FlatMemory) Tick(cycles uint8)            {}
func (m *FlatMemory) PollNMI() bool                { return false }

// LoadAt copies program bytes into memory starting at addr. A test
// convenience, not part of the Memory interface.
func (m *FlatMemory) LoadAt(addr uint16, program []uint8) {
	copy(m.ram[addr:], program)
}
