package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/cpu"
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/emulator"
)

func main() {
	var compile string
	var budget int
	var seconds float64
	var demo bool
	var verbose bool

	flag.StringVar(&compile, "c", "", "assembly source file to run")
	flag.IntVar(&budget, "n", 100000, "instruction budget")
	flag.Float64Var(&seconds, "t", 0, "simulated seconds to advance before running")
	flag.BoolVar(&demo, "demo", false, "run the built-in array-sum demonstration")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	asm := &cpu.Assembler{}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	prog := &cpu.Program{}
	switch {
	case demo:
		source, total := cpu.ArraySumSource([]int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50})
		prog = cpu.MustAssemble(source, nil)
		fmt.Printf("expected sum: %v\n", total)
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	default:
		log.Fatalf("%v: nothing to run; use -c or -demo", os.Args[0])
	}

	err := emu.LoadProgram(prog)
	if err != nil {
		log.Fatal(err)
	}

	if seconds > 0 {
		emu.Tick(seconds)
	}

	count, err := emu.Run(budget)
	if err != nil {
		log.Fatal(err)
	}
	if !emu.Halted {
		log.Fatalf("budget of %v instructions exhausted", budget)
	}

	fmt.Printf("executed %v instructions\n", count)
	fmt.Print(emu.Cpu.String())

	if demo {
		sum, err := emu.Banks.Read(cpu.BANK_1, prog.Labels["sum"])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("computed sum: %v (%v)\n", sum.Left().Int(), sum)
	}

	for _, code := range emu.LogWords() {
		fmt.Printf("log: %v\n", code)
	}
	if res := emu.Poll(); res != nil {
		for name, data := range res.Sources() {
			fmt.Printf("%v: %v\n", name, data)
		}
	}
}
