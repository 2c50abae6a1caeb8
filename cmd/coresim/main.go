// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tebeka/atexit"

	"github.com/ezrec/coresim/cpu"
	"github.com/ezrec/coresim/emulator"
)

func main() {
	var compile string
	var image string
	var output string
	var save bool
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&image, "l", "", "Binary image to load")
	flag.StringVar(&output, "o", "", "Save the binary image to this file")
	flag.BoolVar(&save, "s", false, "Save the image only, do not execute")
	flag.IntVar(&limit, "n", 0, "Tick limit (0 for no limit)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(image) != 0 {
		log.Fatalf("%v: -c and -l are exclusive", os.Args[0])
	}

	if save && len(output) == 0 {
		log.Fatalf("%v: -s requires -o", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a raw image as a single block of data.
	if len(image) != 0 {
		data, err := os.ReadFile(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		emu.Program = &cpu.Program{
			Opcodes: []cpu.Opcode{{Data: data}},
		}
	}

	if len(output) != 0 {
		err := os.WriteFile(output, emu.Program.Binary(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	// Dump the machine state however execution ends.
	atexit.Register(func() {
		fmt.Print(emu.Cpu.String())
		fmt.Printf("ticks: %d\n", emu.Ticks())
	})

	err = emu.Run(limit)
	if err != nil {
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}
