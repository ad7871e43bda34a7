// Command nesgo loads an iNES 1.0 ROM and runs it: an ebiten window by
// default, or one of two headless diagnostic modes used to validate
// the core against reference logs. This is the host/boundary layer
// SPEC_FULL.md §2A describes — it owns flags, logging, and the
// ebiten.Game loop, and nothing in the bus/cpu/ppu/cartridge/gamepad
// packages it drives imports any of those.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
)

var mode = flag.String("m", "default", "run mode: default, nestest, or snaketest")

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	romPath := flag.Arg(0)
	data, err := os.ReadFile(romPath)
	if err != nil {
		glog.Exitf("nesgo: couldn't read ROM %q: %v", romPath, err)
	}

	switch *mode {
	case "default":
		runDefault(data)
	case "nestest":
		runNestest(data)
	case "snaketest":
		runSnaketest(data)
	default:
		fmt.Fprintf(os.Stderr, "nesgo: unknown mode %q\n\n", *mode)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-m default|nestest|snaketest] rom.nes\n\n", os.Args[0])
	flag.PrintDefaults()
}
