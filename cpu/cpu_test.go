package cpu

import "testing"

func newTestCPU() (*CPU, *FlatMemory) {
	mem := NewFlatMemory()
	c := New(mem)
	return c, mem
}

func loadAndReset(c *CPU, mem *FlatMemory, program []uint8, loadAt uint16) {
	mem.LoadAt(loadAt, program)
	mem.WriteU8(0xFFFC, uint8(loadAt))
	mem.WriteU8(0xFFFD, uint8(loadAt>>8))
	c.Reset()
}

func TestResetState(t *testing.T) {
	c, mem := newTestCPU()
	mem.WriteU8(0xFFFC, 0x00)
	mem.WriteU8(0xFFFD, 0x80)
	c.Reset()

	if c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Errorf("registers after reset = %#02x %#02x %#02x, want zero", c.A, c.X, c.Y)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after reset = %#02x, want 0xFD", c.SP)
	}
	if c.Status != FlagInterruptDisable|FlagBreak2 {
		t.Errorf("status after reset = %#02x, want %#02x", c.Status, FlagInterruptDisable|FlagBreak2)
	}
	if c.PC != 0x8000 {
		t.Errorf("PC after reset = %#04x, want 0x8000", c.PC)
	}
}

func TestEndToEndScenarioOne(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0xA9, 0xC0, 0xAA, 0xE8, 0x00}, 0x8000)

	c.Run()

	if c.X != 0xC1 {
		t.Errorf("X = %#02x, want 0xC1", c.X)
	}
	if !c.Halted {
		t.Error("CPU did not halt on BRK")
	}
}

func TestEndToEndScenarioTwo(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0xA9, 0xFF, 0xAA, 0xE8, 0xE8, 0x00}, 0x8000)

	c.Run()

	if c.X != 0x01 {
		t.Errorf("X = %#02x, want 0x01", c.X)
	}
	if c.flag(FlagZero) {
		t.Error("Zero flag set, want clear")
	}
}

func TestBRKSetsBothBreakFlags(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0x00}, 0x8000)

	c.Run()

	if !c.flag(FlagBreak1) || !c.flag(FlagBreak2) {
		t.Errorf("status = %#02x, want both break bits set", c.Status)
	}
}

func TestNMIServicing(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0xEA}, 0x8000)
	mem.WriteU8(0xFFFA, 0x00)
	mem.WriteU8(0xFFFB, 0x90)
	c.PC = 0x1234
	c.Status = FlagCarry

	c.serviceNMI()

	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI = %#04x, want 0x9000", c.PC)
	}
	if !c.flag(FlagInterruptDisable) {
		t.Error("InterruptDisable not set after NMI")
	}
	pushedStatus := mem.ReadU8(0x0100 + uint16(c.SP) + 1)
	if pushedStatus&FlagBreak1 != 0 || pushedStatus&FlagBreak2 == 0 {
		t.Errorf("pushed status = %#02x, want Break1 clear and Break2 set", pushedStatus)
	}
	returnPC := uint16(mem.ReadU8(0x0100+uint16(c.SP)+2)) | uint16(mem.ReadU8(0x0100+uint16(c.SP)+3))<<8
	if returnPC != 0x1234 {
		t.Errorf("pushed return PC = %#04x, want 0x1234", returnPC)
	}
}

func TestUnknownOpcodePanics(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0x02}, 0x8000) // 0x02 has no table entry

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown opcode")
		}
		if _, ok := r.(*UnknownOpcodeError); !ok {
			t.Errorf("panic value = %T, want *UnknownOpcodeError", r)
		}
	}()
	c.Step()
}

func TestStackPushPopRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.SP = 0xFD
	c.push(0x42)
	c.push(0x99)
	if got := c.pop(); got != 0x99 {
		t.Errorf("pop() = %#02x, want 0x99", got)
	}
	if got := c.pop(); got != 0x42 {
		t.Errorf("pop() = %#02x, want 0x42", got)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after round trip = %#02x, want 0xFD", c.SP)
	}
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, mem := newTestCPU()
	mem.WriteU8(0x30FF, 0x80)
	mem.WriteU8(0x3000, 0x90) // hardware bug: high byte read from 0x3000, not 0x3100
	mem.WriteU8(0x3100, 0xFF)
	loadAndReset(c, mem, []uint8{0x6C, 0xFF, 0x30}, 0x8000)

	c.Step()

	if c.PC != 0x9080 {
		t.Errorf("PC after JMP (indirect) = %#04x, want 0x9080", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, mem := newTestCPU()
	// JSR $9000 ; (at 0x9000) RTS
	mem.WriteU8(0x9000, 0x60)
	loadAndReset(c, mem, []uint8{0x20, 0x00, 0x90}, 0x8000)

	c.Step() // JSR
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = %#04x, want 0x9000", c.PC)
	}
	c.Step() // RTS
	if c.PC != 0x8003 {
		t.Errorf("PC after RTS = %#04x, want 0x8003", c.PC)
	}
}

func TestPHPForcesBothBreakBitsWithoutAlteringStatus(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0x08}, 0x8000) // PHP
	c.Status = FlagCarry

	c.Step()

	pushed := mem.ReadU8(0x0100 + uint16(c.SP) + 1)
	if pushed&(FlagBreak1|FlagBreak2) != FlagBreak1|FlagBreak2 {
		t.Errorf("pushed status = %#02x, want both break bits set", pushed)
	}
	if c.Status != FlagCarry {
		t.Errorf("live status mutated to %#02x by PHP, want unchanged %#02x", c.Status, FlagCarry)
	}
}

func TestPLPForcesBreak1ClearBreak2Set(t *testing.T) {
	c, mem := newTestCPU()
	loadAndReset(c, mem, []uint8{0x28}, 0x8000) // PLP
	c.push(0x00)                                // pushed status with nothing set

	c.Step()

	if c.flag(FlagBreak1) {
		t.Error("Break1 set after PLP, want forced clear")
	}
	if !c.flag(FlagBreak2) {
		t.Error("Break2 clear after PLP, want forced set")
	}
}
