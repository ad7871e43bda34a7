// Package cpu implements the 6502-family CPU interpreter: registers,
// status flags, addressing modes, the full official opcode set plus
// the common undocumented opcodes, NMI handling, and base-cycle
// accounting. It is deliberately ignorant of what it's plugged into —
// it only ever talks to the small Memory interface.
package cpu

import "fmt"

// Status flag bit positions, matching real 6502 hardware's packed
// status byte (N V - B D I Z C from bit 7 down to bit 0).
const (
	FlagCarry            uint8 = 1 << 0
	FlagZero             uint8 = 1 << 1
	FlagInterruptDisable uint8 = 1 << 2
	FlagDecimal          uint8 = 1 << 3
	FlagBreak1           uint8 = 1 << 4
	FlagBreak2           uint8 = 1 << 5
	FlagOverflow         uint8 = 1 << 6
	FlagNegative         uint8 = 1 << 7
)

const (
	stackBase   uint16 = 0x0100
	resetVector uint16 = 0xFFFC
	nmiVector   uint16 = 0xFFFA
)

// UnknownOpcodeError reports a fetched byte with no entry in the
// opcode table — an unimplemented instruction, which SPEC_FULL.md
// treats as fatal: it means the ROM needs a feature this emulator
// doesn't have.
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unknown opcode %#02x at %#04x", e.Opcode, e.PC)
}

// CPU is the complete, transparent register state of a 6502: every
// observable bit is one of these fields plus the Memory it's mounted
// on. Nothing here is hidden; PC may be forced directly by test
// harnesses (e.g. to start execution at nestest's automation entry
// point).
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  uint8

	Mem Memory

	// Halted is set by BRK, which this emulator treats as a program
	// terminator rather than a real interrupt (see SPEC_FULL.md §4.6).
	Halted bool
}

// New returns a CPU mounted on mem, in its post-power-on zero state.
// Call Reset before running a program.
func New(mem Memory) *CPU {
	return &CPU{Mem: mem}
}

// Reset performs the 6502 reset sequence: registers cleared, SP set
// to 0xFD, InterruptDisable and Break2 set, PC loaded from the reset
// vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.Status = FlagInterruptDisable | FlagBreak2
	c.Halted = false
	c.PC = readU16(c.Mem, resetVector)
}

func (c *CPU) setFlag(mask uint8, v bool) {
	if v {
		c.Status |= mask
	} else {
		c.Status &^= mask
	}
}

func (c *CPU) flag(mask uint8) bool { return c.Status&mask != 0 }

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

func (c *CPU) push(v uint8) {
	c.Mem.WriteU8(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.Mem.ReadU8(stackBase + uint16(c.SP))
}

func (c *CPU) pushU16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popU16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// serviceNMI runs the NMI sequence described in SPEC_FULL.md §4.6: push
// PC, push status with Break1 clear and Break2 set, set
// InterruptDisable, jump to the NMI vector, and charge the bus 2
// cycles for it.
func (c *CPU) serviceNMI() {
	c.pushU16(c.PC)
	status := (c.Status &^ FlagBreak1) | FlagBreak2
	c.push(status)
	c.setFlag(FlagInterruptDisable, true)
	c.PC = readU16(c.Mem, nmiVector)
	c.Mem.Tick(2)
}

// operandAddress resolves the effective address for mode, reading the
// byte(s) immediately following the opcode at c.PC. It never advances
// PC; Step does that afterward based on the opcode's length.
func (c *CPU) operandAddress(mode Mode) uint16 {
	return c.OperandAddressAt(mode, c.PC)
}

// OperandAddressAt resolves the effective address for mode as if the
// operand byte(s) started at pc, using the CPU's current X/Y register
// values but without reading c.PC or mutating anything. Exported so
// the trace package can recompute the same addressing the dispatch
// loop would use, for disassembly purposes, without duplicating this
// switch.
func (c *CPU) OperandAddressAt(mode Mode, pc uint16) uint16 {
	switch mode {
	case ModeImmediate, ModeRelative:
		return pc
	case ModeZeroPage:
		return uint16(c.Mem.ReadU8(pc))
	case ModeZeroPageX:
		return uint16(c.Mem.ReadU8(pc) + c.X)
	case ModeZeroPageY:
		return uint16(c.Mem.ReadU8(pc) + c.Y)
	case ModeAbsolute, ModeIndirect:
		return readU16(c.Mem, pc)
	case ModeAbsoluteX:
		return readU16(c.Mem, pc) + uint16(c.X)
	case ModeAbsoluteY:
		return readU16(c.Mem, pc) + uint16(c.Y)
	case ModeIndirectX:
		ptr := c.Mem.ReadU8(pc) + c.X
		lo := uint16(c.Mem.ReadU8(uint16(ptr)))
		hi := uint16(c.Mem.ReadU8(uint16(ptr + 1)))
		return hi<<8 | lo
	case ModeIndirectY:
		ptr := c.Mem.ReadU8(pc)
		lo := uint16(c.Mem.ReadU8(uint16(ptr)))
		hi := uint16(c.Mem.ReadU8(uint16(ptr + 1)))
		return (hi<<8 | lo) + uint16(c.Y)
	default: // ModeImplicit, ModeAccumulator
		return 0
	}
}

// Step executes exactly one instruction: service a pending NMI if
// present, fetch and decode the next opcode, dispatch it, and report
// its base cycle cost to the bus.
func (c *CPU) Step() {
	if c.Mem.PollNMI() {
		c.serviceNMI()
	}

	opByte := c.Mem.ReadU8(c.PC)
	opPC := c.PC
	c.PC++

	op, ok := opcodeTable[opByte]
	if !ok {
		panic(&UnknownOpcodeError{Opcode: opByte, PC: opPC})
	}

	addr := c.operandAddress(op.mode)
	savedPC := c.PC
	op.fn(c, op.mode, addr)
	if c.PC == savedPC {
		c.PC += uint16(op.length) - 1
	}

	c.Mem.Tick(op.cycles)
}

// RunWithCallback executes instructions until BRK halts the CPU,
// calling f(c) once before each fetch. This is the extension point
// tracing and the snake-test pseudo-random-input driver use.
func (c *CPU) RunWithCallback(f func(*CPU)) {
	for !c.Halted {
		if f != nil {
			f(c)
		}
		c.Step()
	}
}

// Run executes instructions until BRK halts the CPU.
func (c *CPU) Run() {
	c.RunWithCallback(nil)
}
