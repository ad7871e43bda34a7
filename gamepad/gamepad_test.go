package gamepad

import "testing"

func TestStrobedReadAlwaysReturnsButtonA(t *testing.T) {
	g := New()
	g.SetStatus(A, true)
	g.Write(0x01) // strobe high

	for i := 0; i < 10; i++ {
		if got := g.Read(); got != 1 {
			t.Errorf("read %d while strobed = %d, want 1", i, got)
		}
	}
}

func TestShiftOrderMatchesButtonLayout(t *testing.T) {
	g := New()
	g.SetStatus(A, true)
	g.SetStatus(B, false)
	g.SetStatus(Select, false)
	g.SetStatus(Start, true)
	g.SetStatus(Up, false)
	g.SetStatus(Down, false)
	g.SetStatus(Left, true)
	g.SetStatus(Right, true)

	g.Write(0x01) // strobe high, idx resets
	g.Write(0x00) // strobe low, shifting begins

	want := []uint8{1, 0, 0, 1, 0, 0, 1, 1}
	for i, w := range want {
		if got := g.Read(); got != w {
			t.Errorf("read %d = %d, want %d", i, got, w)
		}
	}

	// Ninth read and beyond overrun to 1.
	for i := 0; i < 3; i++ {
		if got := g.Read(); got != 1 {
			t.Errorf("overrun read %d = %d, want 1", i, got)
		}
	}
}

func TestWriteHighResetsShiftIndex(t *testing.T) {
	g := New()
	g.SetStatus(A, true)
	g.SetStatus(B, false)
	g.Write(0x00)
	g.Read() // advance idx to 1

	g.Write(0x01) // strobe high resets idx
	g.Write(0x00)
	if got := g.Read(); got != 1 {
		t.Errorf("Read() after re-strobe = %d, want 1 (button A)", got)
	}
}
