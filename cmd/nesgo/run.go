package main

import (
	"context"

	"github.com/golang/glog"

	"github.com/nesgo/nesgo/bus"
	"github.com/nesgo/nesgo/cartridge"
	"github.com/nesgo/nesgo/cpu"
	"github.com/nesgo/nesgo/ppu"
)

// loadCartridge parses data or exits non-zero, per SPEC_FULL.md §7:
// CartridgeFormatError/UnsupportedINESVersion/UnsupportedMapper are
// all returned-to-caller conditions, not panics, so they're reported
// and the process exits here rather than being recovered later.
func loadCartridge(data []byte) *cartridge.Cartridge {
	cart, err := cartridge.New(data)
	if err != nil {
		glog.Exitf("nesgo: %v", err)
	}
	return cart
}

// recoverCoreFatal converts the core's panic-class error kinds
// (cpu.UnknownOpcodeError, ppu.IllegalAddressError,
// bus.WriteToPRGROMError) into a glog.Fatalf call — the only place in
// this module that recovers a panic, per SPEC_FULL.md §7's
// panic/recover boundary living at the host edge.
func recoverCoreFatal() {
	if r := recover(); r != nil {
		switch err := r.(type) {
		case *cpu.UnknownOpcodeError, *ppu.IllegalAddressError, *bus.WriteToPRGROMError:
			glog.Fatalf("nesgo: fatal emulation error: %v", err)
		default:
			panic(r)
		}
	}
}

func runDefault(data []byte) {
	cart := loadCartridge(data)
	host := NewHost()

	b := bus.New(cart, host.vsync)
	b.OnLoggedEvent = func(msg string) { glog.Warningln(msg) }

	c := cpu.New(b)
	c.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer recoverCoreFatal()
		defer cancel()
		runUntilDone(ctx, c, nil)
	}()

	runWindow(host)
}

// runUntilDone steps c until it halts (BRK) or ctx is cancelled,
// invoking step (if non-nil) before each fetch. This is cmd/nesgo's
// own context-aware driver layered over cpu.CPU.Step, the same shape
// as the teacher's console.Bus.Run(ctx) selecting on ctx.Done() every
// iteration — SPEC_FULL.md §5's cancellation story, which the core
// itself deliberately does not implement.
func runUntilDone(ctx context.Context, c *cpu.CPU, step func(*cpu.CPU)) {
	for !c.Halted {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if step != nil {
			step(c)
		}
		c.Step()
	}
}
