package cpu

import "testing"

func TestADCArithmeticLaws(t *testing.T) {
	tests := []struct {
		name          string
		a, mem, carry uint8
		wantA         uint8
		wantCarry     bool
		wantOverflow  bool
	}{
		{"no carry no overflow", 0x55, 0x10, 0, 0x65, false, false},
		{"carry out no overflow", 0x55, 0xCC, 0, 0x21, true, false},
		{"signed overflow", 0x40, 0x40, 0, 0x80, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU()
			c.A = tt.a
			c.setFlag(FlagCarry, tt.carry != 0)
			c.adcValue(tt.mem)
			if c.A != tt.wantA {
				t.Errorf("A = %#02x, want %#02x", c.A, tt.wantA)
			}
			if c.flag(FlagCarry) != tt.wantCarry {
				t.Errorf("Carry = %v, want %v", c.flag(FlagCarry), tt.wantCarry)
			}
			if c.flag(FlagOverflow) != tt.wantOverflow {
				t.Errorf("Overflow = %v, want %v", c.flag(FlagOverflow), tt.wantOverflow)
			}
		})
	}
}

func TestSBC(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x10
	c.setFlag(FlagCarry, false)
	c.adcValue(^uint8(0x01))
	if c.A != 0x0E {
		t.Errorf("A = %#02x, want 0x0E", c.A)
	}
	if !c.flag(FlagCarry) {
		t.Error("Carry clear, want set")
	}
}

func TestCMP(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x88
	c.compare(c.A, 0x04)
	if !c.flag(FlagCarry) {
		t.Error("Carry clear, want set")
	}
	if c.flag(FlagZero) {
		t.Error("Zero set, want clear")
	}
	if !c.flag(FlagNegative) {
		t.Error("Negative clear, want set")
	}
}

func TestLAXLoadsBothAAndX(t *testing.T) {
	c, mem := newTestCPU()
	mem.WriteU8(0x10, 0x77)
	loadAndReset(c, mem, []uint8{0xA7, 0x10}, 0x8000) // LAX zeropage

	c.Step()

	if c.A != 0x77 || c.X != 0x77 {
		t.Errorf("A=%#02x X=%#02x, want both 0x77", c.A, c.X)
	}
}

func TestSAXStoresAANDX(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0x87, 0x10}, 0x8000) // SAX zeropage
	c.A = 0xF0
	c.X = 0x0F

	c.Step()

	if got := mem.ReadU8(0x10); got != 0x00 {
		t.Errorf("mem[0x10] = %#02x, want 0x00", got)
	}
}

func TestDCPDecrementsThenCompares(t *testing.T) {
	c, mem := newTestCPU()
	mem.WriteU8(0x10, 0x05)
	loadAndReset(c, mem, []uint8{0xC7, 0x10}, 0x8000) // DCP zeropage
	c.A = 0x04

	c.Step()

	if got := mem.ReadU8(0x10); got != 0x04 {
		t.Errorf("mem[0x10] = %#02x, want 0x04", got)
	}
	if !c.flag(FlagZero) {
		t.Error("Zero clear, want set (A == decremented value)")
	}
}

func TestISBIncrementsThenSubtracts(t *testing.T) {
	c, mem := newTestCPU()
	mem.WriteU8(0x10, 0x00)
	loadAndReset(c, mem, []uint8{0xE7, 0x10}, 0x8000) // ISB zeropage
	c.A = 0x05
	c.setFlag(FlagCarry, true)

	c.Step()

	if got := mem.ReadU8(0x10); got != 0x01 {
		t.Errorf("mem[0x10] = %#02x, want 0x01", got)
	}
	if c.A != 0x04 {
		t.Errorf("A = %#02x, want 0x04", c.A)
	}
}

func TestBranchTaken(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0xF0, 0x05}, 0x8000) // BEQ +5
	c.setFlag(FlagZero, true)

	c.Step()

	if c.PC != 0x8007 {
		t.Errorf("PC = %#04x, want 0x8007", c.PC)
	}
}

func TestBranchNotTaken(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0xF0, 0x05}, 0x8000) // BEQ +5
	c.setFlag(FlagZero, false)

	c.Step()

	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002", c.PC)
	}
}

func TestBranchNegativeOffset(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0xEA, 0xEA, 0xD0, 0xFC}, 0x8000) // NOP NOP BNE -4
	c.PC = 0x8002
	c.setFlag(FlagZero, false)

	c.Step()

	if c.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", c.PC)
	}
}

func TestStackOverflowWraps(t *testing.T) {
	c, _ := newTestCPU()
	c.SP = 0x00
	c.push(0xAB)
	if c.SP != 0xFF {
		t.Errorf("SP after push at 0x00 = %#02x, want 0xFF (wrap)", c.SP)
	}
}

func TestShiftsAndRotatesOnAccumulator(t *testing.T) {
	c, _ := newTestCPU()

	c.A = 0x81
	c.asl(ModeAccumulator, 0)
	if c.A != 0x02 || !c.flag(FlagCarry) {
		t.Errorf("ASL: A=%#02x Carry=%v, want A=0x02 Carry=true", c.A, c.flag(FlagCarry))
	}

	c.A = 0x01
	c.lsr(ModeAccumulator, 0)
	if c.A != 0x00 || !c.flag(FlagCarry) {
		t.Errorf("LSR: A=%#02x Carry=%v, want A=0x00 Carry=true", c.A, c.flag(FlagCarry))
	}

	c.A = 0x80
	c.setFlag(FlagCarry, true)
	c.rol(ModeAccumulator, 0)
	if c.A != 0x01 || !c.flag(FlagCarry) {
		t.Errorf("ROL: A=%#02x Carry=%v, want A=0x01 Carry=true", c.A, c.flag(FlagCarry))
	}

	c.A = 0x01
	c.setFlag(FlagCarry, true)
	c.ror(ModeAccumulator, 0)
	if c.A != 0x80 || !c.flag(FlagCarry) {
		t.Errorf("ROR: A=%#02x Carry=%v, want A=0x80 Carry=true", c.A, c.flag(FlagCarry))
	}
}

func TestBITSetsZeroOverflowNegativeFromMemoryNotResult(t *testing.T) {
	c, mem := newTestCPU()
	mem.WriteU8(0x10, 0xC0) // bits 7 and 6 set
	loadAndReset(c, mem, []uint8{0x24, 0x10}, 0x8000)
	c.A = 0x00

	c.Step()

	if !c.flag(FlagZero) {
		t.Error("Zero clear, want set (A & mem == 0)")
	}
	if !c.flag(FlagOverflow) {
		t.Error("Overflow clear, want set (mem bit 6)")
	}
	if !c.flag(FlagNegative) {
		t.Error("Negative clear, want set (mem bit 7)")
	}
}
