package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/io"
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

const (
	// CLOCK_RATE is the real-time clock increment rate per simulated second.
	CLOCK_RATE = 32
)

var _cpu_defines = map[string]string{
	"BANK_1_SIZE": fmt.Sprintf("%v", BANK_1_SIZE),
	"BANK_2_SIZE": fmt.Sprintf("%v", BANK_2_SIZE),
	"CLOCK_RATE":  fmt.Sprintf("%v", CLOCK_RATE),
}

// Bus is the CPU-side I/O dispatch surface. IO-class instructions hand
// their effective address to the bus; the address map routes it to the
// drum fields, the display buffer, or the light-gun selection. The
// real-time clock address is answered by the CPU itself, never the bus.
type Bus interface {
	IoRead(address uint16) (word.Word, error)
	IoWrite(address uint16, value word.Word) error
}

// Cpu is the central computer: registers, memory banks, and the
// fetch-decode-execute cycle.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Acc   word.Word // Accumulator.
	Index [4]uint16 // Index registers ix0..ix3.
	P     uint16    // Program counter.
	PBank Bank      // Bank of the program counter.
	Clock uint16    // Real-time clock, host advanced.

	Instructions int  // Instructions executed since reset.
	Halted       bool // Set by HLT; only an external reset recovers.

	Banks *Banks // Memory banks.
	Bus   Bus    // I/O dispatch, wired by the integration layer.

	clockRemainder float64
}

// NewCpu creates a CPU with freshly allocated memory banks.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Banks: NewBanks(),
		PBank: BANK_1,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset returns the CPU to power-on state. Memory is zero filled.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Acc = 0
	clear(cpu.Index[:])
	cpu.P = 0
	cpu.PBank = BANK_1
	cpu.Clock = 0
	cpu.Instructions = 0
	cpu.Halted = false
	cpu.clockRemainder = 0
	cpu.Banks.Reset()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("  acc: %v\n", cpu.Acc)
	for n, ix := range cpu.Index {
		text += fmt.Sprintf("  ix%d: %04X\n", n, ix)
	}
	text += fmt.Sprintf("    p: %d:%04X\n", int(cpu.PBank), cpu.P)
	text += fmt.Sprintf("clock: %04X\n", cpu.Clock)
	text += fmt.Sprintf("count: %v\n", cpu.Instructions)
	text += fmt.Sprintf(" halt: %v\n", cpu.Halted)

	return
}

// AdvanceTime advances the real-time clock by dt simulated seconds. The
// clock is independent of instruction execution; instructions only read it.
func (cpu *Cpu) AdvanceTime(dt float64) {
	total := cpu.clockRemainder + dt*CLOCK_RATE
	ticks := math.Floor(total)
	cpu.clockRemainder = total - ticks
	cpu.Clock += uint16(ticks)
}

// StepResult reports one executed instruction.
type StepResult struct {
	Bank       Bank        // Bank the instruction was fetched from.
	Address    uint16      // Address the instruction was fetched from.
	Inst       Instruction // The decoded instruction.
	Halted     bool        // Set when this step halted the machine.
	Diagnostic string      // Set for undefined class/opcode no-ops.
}

// EffectiveAddress resolves an instruction's address through its index
// selector, masked to the addressed bank's width.
func (cpu *Cpu) EffectiveAddress(inst Instruction) (address uint16) {
	address = inst.Address
	if inst.IndexSel != 0 {
		address += cpu.Index[inst.IndexSel-1]
	}
	address &= Mask(inst.Bank)
	return
}

// Step fetches, decodes, and executes a single instruction.
//
// Errors are fatal to the instruction, not the machine: the program
// counter is left at the failing instruction and the error surfaces to
// the host. Undefined opcodes are not errors; they execute as no-ops
// that advance the program counter and carry a diagnostic.
func (cpu *Cpu) Step() (res StepResult, err error) {
	if cpu.Halted {
		res.Halted = true
		err = ErrHalted
		return
	}

	raw, err := cpu.Banks.Read(cpu.PBank, cpu.P)
	if err != nil {
		return
	}
	inst := Decode(raw)

	res = StepResult{
		Bank:    cpu.PBank,
		Address: cpu.P,
		Inst:    inst,
	}

	if cpu.Verbose {
		log.Printf("cpu: %d:%04x %v", int(cpu.PBank), cpu.P, inst)
	}

	next := (cpu.P + 1) & Mask(cpu.PBank)
	nextBank := cpu.PBank
	ea := cpu.EffectiveAddress(inst)

	undefined := func() {
		res.Diagnostic = fmt.Sprintf("undefined %v opcode %d", inst.Class, inst.Opcode)
		if cpu.Verbose {
			log.Printf("cpu: %v", res.Diagnostic)
		}
	}
	branch := func(target uint16) {
		next = target & Mask(inst.Bank)
		nextBank = inst.Bank
	}

	switch inst.Class {
	case CLASS_MISC:
		if inst.Opcode == MISC_OP_HLT {
			cpu.Halted = true
			res.Halted = true
		} else {
			undefined()
		}

	case CLASS_ADD:
		var operand word.Word
		operand, err = cpu.Banks.Read(inst.Bank, ea)
		if err != nil {
			return
		}
		switch inst.Opcode {
		case ADD_OP_CAD:
			cpu.Acc = operand
		case ADD_OP_ADD:
			cpu.Acc = cpu.Acc.Add(operand)
		case ADD_OP_SUB:
			cpu.Acc = cpu.Acc.Sub(operand)
		default:
			undefined()
		}

	case CLASS_MUL:
		if inst.Opcode != MUL_OP_MUL {
			undefined()
			break
		}
		var operand word.Word
		operand, err = cpu.Banks.Read(inst.Bank, ea)
		if err != nil {
			return
		}
		cpu.Acc = cpu.Acc.Mul(operand)

	case CLASS_STO:
		var value word.Word
		switch inst.Opcode {
		case STO_OP_STO:
			value = cpu.Acc
		case STO_OP_STL, STO_OP_STR:
			// Partial stores preserve the other memory half.
			var current word.Word
			current, err = cpu.Banks.Read(inst.Bank, ea)
			if err != nil {
				return
			}
			if inst.Opcode == STO_OP_STL {
				value = word.Join(cpu.Acc.Left(), current.Right())
			} else {
				value = word.Join(current.Left(), cpu.Acc.Right())
			}
		default:
			undefined()
		}
		if res.Diagnostic == "" {
			err = cpu.Banks.Write(inst.Bank, ea, value)
			if err != nil {
				return
			}
		}

	case CLASS_IX:
		op, reg := inst.IxOp()
		switch op {
		case IX_OP_XLD:
			var operand word.Word
			operand, err = cpu.Banks.Read(inst.Bank, ea)
			if err != nil {
				return
			}
			cpu.Index[reg] = uint16(operand.Right())
		case IX_OP_XIM:
			cpu.Index[reg] = inst.Address
		case IX_OP_XCL:
			cpu.Index[reg] = 0
		case IX_OP_XAD:
			cpu.Index[reg] += inst.Address
		}

	case CLASS_BR:
		switch inst.Opcode {
		case BR_OP_BPX:
			branch(ea)
		case BR_OP_BLM:
			if cpu.Acc.Left().IsNegative() {
				branch(ea)
			}
		case BR_OP_JSB:
			// The return slot is addressable memory at the entry
			// point. Reentering an active subroutine overwrites it.
			err = cpu.Banks.Write(inst.Bank, ea, word.Join(0, word.Half(next)))
			if err != nil {
				return
			}
			branch(ea + 1)
		case BR_OP_BIR:
			var slot word.Word
			slot, err = cpu.Banks.Read(inst.Bank, ea)
			if err != nil {
				return
			}
			branch(uint16(slot.Right()))
		default:
			undefined()
		}

	case CLASS_IO:
		switch inst.Opcode {
		case IO_OP_RDS:
			if ea == io.ADDR_RTC {
				// The clock answers directly, in both halves.
				h := word.Half(cpu.Clock)
				cpu.Acc = word.Join(h, h)
				break
			}
			if cpu.Bus == nil {
				err = ErrNoBus
				return
			}
			var value word.Word
			value, err = cpu.Bus.IoRead(ea)
			if err != nil {
				return
			}
			cpu.Acc = value
		case IO_OP_WRT:
			if cpu.Bus == nil {
				err = ErrNoBus
				return
			}
			err = cpu.Bus.IoWrite(ea, cpu.Acc)
			if err != nil {
				return
			}
		default:
			undefined()
		}

	default:
		undefined()
	}

	cpu.P = next
	cpu.PBank = nextBank
	cpu.Instructions++

	return
}

// Run executes instructions until the machine halts, an error surfaces,
// or the budget is exhausted. The budget is the only cancellation
// mechanism: emulated programs have no scheduler, and a polling loop
// awaiting a condition that never arrives must not hang the host.
func (cpu *Cpu) Run(max int) (count int, err error) {
	for count < max {
		var res StepResult
		res, err = cpu.Step()
		if err != nil {
			return
		}
		count++
		if res.Halted {
			return
		}
	}

	return
}
