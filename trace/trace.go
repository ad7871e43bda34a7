// Package trace formats one CPU instruction as a single disassembly
// line: address, raw opcode bytes, mnemonic, addressing-mode operand
// text, and a register dump. It exists purely for diffing against a
// reference execution log (the nestest automation test) and for the
// -m nestest CLI mode; it never mutates the CPU it's given.
package trace

import (
	"fmt"
	"strings"

	"github.com/nesgo/nesgo/cpu"
)

// Format renders the instruction at c.PC. It only reads through
// c.Mem — never advances PC, touches registers, or charges cycles.
// Those reads are ordinary memory reads, so when c.Mem is a bus.Bus
// and an operand addresses a read-sensitive register (PPUSTATUS,
// PPUDATA, the gamepad port), formatting that line has the same side
// effect as the CPU reading it.
func Format(c *cpu.CPU) string {
	begin := c.PC
	code := c.Mem.ReadU8(begin)

	desc, ok := cpu.Lookup(code)
	if !ok {
		return fmt.Sprintf("%04X  %02X        .BYTE $%02X", begin, code, code)
	}

	dump := []uint8{code}
	operand := operandText(c, desc, begin, &dump)

	hexParts := make([]string, len(dump))
	for i, b := range dump {
		hexParts[i] = fmt.Sprintf("%02X", b)
	}

	asm := strings.TrimSpace(fmt.Sprintf("%04X  %-8s %4s %s",
		begin, strings.Join(hexParts, " "), desc.Mnemonic, operand))

	return fmt.Sprintf("%-47s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		asm, c.A, c.X, c.Y, c.Status, c.SP)
}

func operandText(c *cpu.CPU, desc cpu.Descriptor, begin uint16, dump *[]uint8) string {
	switch desc.Length {
	case 1:
		if desc.Mode == cpu.ModeAccumulator {
			return "A"
		}
		return ""
	case 2:
		return operandText2(c, desc, begin, dump)
	case 3:
		return operandText3(c, desc, begin, dump)
	default:
		return ""
	}
}

func operandText2(c *cpu.CPU, desc cpu.Descriptor, begin uint16, dump *[]uint8) string {
	b := c.Mem.ReadU8(begin + 1)
	*dump = append(*dump, b)

	switch desc.Mode {
	case cpu.ModeImmediate:
		return fmt.Sprintf("#$%02X", b)
	case cpu.ModeZeroPage:
		addr := uint16(b)
		return fmt.Sprintf("$%02X = %02X", addr, c.Mem.ReadU8(addr))
	case cpu.ModeZeroPageX:
		addr := uint16(b + c.X)
		return fmt.Sprintf("$%02X,X @ %02X = %02X", b, addr, c.Mem.ReadU8(addr))
	case cpu.ModeZeroPageY:
		addr := uint16(b + c.Y)
		return fmt.Sprintf("$%02X,Y @ %02X = %02X", b, addr, c.Mem.ReadU8(addr))
	case cpu.ModeIndirectX:
		ptr := b + c.X
		lo := uint16(c.Mem.ReadU8(uint16(ptr)))
		hi := uint16(c.Mem.ReadU8(uint16(ptr + 1)))
		addr := hi<<8 | lo
		return fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", b, ptr, addr, c.Mem.ReadU8(addr))
	case cpu.ModeIndirectY:
		lo := uint16(c.Mem.ReadU8(uint16(b)))
		hi := uint16(c.Mem.ReadU8(uint16(b + 1)))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		return fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", b, base, addr, c.Mem.ReadU8(addr))
	case cpu.ModeRelative:
		target := begin + 2 + uint16(int8(b))
		return fmt.Sprintf("$%04X", target)
	default:
		return fmt.Sprintf("$%02X", b)
	}
}

func operandText3(c *cpu.CPU, desc cpu.Descriptor, begin uint16, dump *[]uint8) string {
	lo := uint16(c.Mem.ReadU8(begin + 1))
	hi := uint16(c.Mem.ReadU8(begin + 2))
	addr := lo | hi<<8
	*dump = append(*dump, uint8(addr), uint8(addr>>8))

	switch {
	case desc.Mnemonic == "JMP" && desc.Mode == cpu.ModeIndirect:
		// Reproduce the documented page-wrap hardware bug (see
		// cpu/instructions.go's jmp): when the pointer's low byte is
		// 0xFF, the high byte comes from the start of the same page.
		targetLo := c.Mem.ReadU8(addr)
		var hiAddr uint16
		if addr&0x00FF == 0x00FF {
			hiAddr = addr & 0xFF00
		} else {
			hiAddr = addr + 1
		}
		targetHi := c.Mem.ReadU8(hiAddr)
		target := uint16(targetHi)<<8 | uint16(targetLo)
		return fmt.Sprintf("($%04X) = %04X", addr, target)
	case desc.Mnemonic == "JMP" || desc.Mnemonic == "JSR":
		return fmt.Sprintf("$%04X", addr)
	case desc.Mode == cpu.ModeAbsoluteX:
		eff := addr + uint16(c.X)
		return fmt.Sprintf("$%04X,X @ %04X = %02X", addr, eff, c.Mem.ReadU8(eff))
	case desc.Mode == cpu.ModeAbsoluteY:
		eff := addr + uint16(c.Y)
		return fmt.Sprintf("$%04X,Y @ %04X = %02X", addr, eff, c.Mem.ReadU8(eff))
	case desc.Mode == cpu.ModeAbsolute:
		return fmt.Sprintf("$%04X = %02X", addr, c.Mem.ReadU8(addr))
	default:
		return fmt.Sprintf("$%04X", addr)
	}
}
