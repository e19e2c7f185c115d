package cpu

import (
	"fmt"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

// Class is an instruction class, held in bits 14..12 of the left half.
type Class int

const (
	CLASS_MISC = Class(0) // misc
	CLASS_ADD  = Class(1) // add
	CLASS_MUL  = Class(2) // mul
	CLASS_STO  = Class(3) // sto
	CLASS_IX   = Class(4) // index
	CLASS_BR   = Class(5) // branch
	CLASS_IO   = Class(6) // io
)

// String returns the class name.
func (class Class) String() (name string) {
	switch class {
	case CLASS_MISC:
		name = "misc"
	case CLASS_ADD:
		name = "add"
	case CLASS_MUL:
		name = "mul"
	case CLASS_STO:
		name = "sto"
	case CLASS_IX:
		name = "index"
	case CLASS_BR:
		name = "branch"
	case CLASS_IO:
		name = "io"
	default:
		name = "undefined"
	}
	return
}

// Bank selects one of the two memory banks. The sign bit of the
// instruction's left half carries it: 0 selects bank 1, 1 selects bank 2.
type Bank int

const (
	BANK_1 = Bank(1) // core memory, 65536 words
	BANK_2 = Bank(2) // test memory, 4096 words
)

// Opcode variants per class.
const (
	MISC_OP_HLT = 0

	ADD_OP_CAD = 0 // clear and add
	ADD_OP_ADD = 1
	ADD_OP_SUB = 2

	MUL_OP_MUL = 0

	STO_OP_STO = 0 // store both halves
	STO_OP_STL = 1 // store left half only
	STO_OP_STR = 2 // store right half only

	// IX-class opcodes pack the operation in bits 3..2 and the target
	// register in bits 1..0, so all four index registers are reachable.
	IX_OP_XLD = 0 // load from memory right half
	IX_OP_XIM = 1 // load address field as immediate
	IX_OP_XCL = 2 // clear
	IX_OP_XAD = 3 // add address field as immediate

	BR_OP_BPX = 0 // unconditional
	BR_OP_BLM = 1 // branch on accumulator left-half sign
	BR_OP_JSB = 2 // store return address at target, branch target+1
	BR_OP_BIR = 3 // branch to address stored at target

	IO_OP_RDS = 0 // read drum/selection/clock to accumulator
	IO_OP_WRT = 1 // write accumulator to drum/display
)

// Instruction is the decoded view of a machine word. Left half layout:
// bit 15 bank sign, bits 14..12 class, bits 11..8 opcode, bits 7..6
// index selector (0 = none), bits 5..0 reserved. The right half is the
// 16-bit address.
type Instruction struct {
	Class    Class
	Opcode   int
	IndexSel int // 0 = none, n = ix[n-1]
	Bank     Bank
	Address  uint16
}

// Decode interprets a word as an instruction. Total: every bit pattern
// decodes, meaningfully or not.
func Decode(w word.Word) (inst Instruction) {
	left := uint16(w.Left())

	inst.Bank = BANK_1
	if (left & 0x8000) != 0 {
		inst.Bank = BANK_2
	}
	inst.Class = Class((left >> 12) & 0x7)
	inst.Opcode = int((left >> 8) & 0xf)
	inst.IndexSel = int((left >> 6) & 0x3)
	inst.Address = uint16(w.Right())

	return
}

// Encode packs the instruction back into a machine word. Inverse of
// Decode over the defined fields.
func (inst Instruction) Encode() word.Word {
	left := uint16(0)
	if inst.Bank == BANK_2 {
		left |= 0x8000
	}
	left |= (uint16(inst.Class) & 0x7) << 12
	left |= (uint16(inst.Opcode) & 0xf) << 8
	left |= (uint16(inst.IndexSel) & 0x3) << 6

	return word.Join(word.Half(left), word.Half(inst.Address))
}

// IxOp returns the IX-class operation and target register.
func (inst Instruction) IxOp() (op int, reg int) {
	op = (inst.Opcode >> 2) & 0x3
	reg = inst.Opcode & 0x3
	return
}

// Mnemonic returns the assembly name of the instruction, or "und" for an
// undefined class/opcode combination.
func (inst Instruction) Mnemonic() (name string) {
	name = "und"

	switch inst.Class {
	case CLASS_MISC:
		if inst.Opcode == MISC_OP_HLT {
			name = "hlt"
		}
	case CLASS_ADD:
		switch inst.Opcode {
		case ADD_OP_CAD:
			name = "cad"
		case ADD_OP_ADD:
			name = "add"
		case ADD_OP_SUB:
			name = "sub"
		}
	case CLASS_MUL:
		if inst.Opcode == MUL_OP_MUL {
			name = "mul"
		}
	case CLASS_STO:
		switch inst.Opcode {
		case STO_OP_STO:
			name = "sto"
		case STO_OP_STL:
			name = "stl"
		case STO_OP_STR:
			name = "str"
		}
	case CLASS_IX:
		op, _ := inst.IxOp()
		switch op {
		case IX_OP_XLD:
			name = "xld"
		case IX_OP_XIM:
			name = "xim"
		case IX_OP_XCL:
			name = "xcl"
		case IX_OP_XAD:
			name = "xad"
		}
	case CLASS_BR:
		switch inst.Opcode {
		case BR_OP_BPX:
			name = "bpx"
		case BR_OP_BLM:
			name = "blm"
		case BR_OP_JSB:
			name = "jsb"
		case BR_OP_BIR:
			name = "bir"
		}
	case CLASS_IO:
		switch inst.Opcode {
		case IO_OP_RDS:
			name = "rds"
		case IO_OP_WRT:
			name = "wrt"
		}
	}

	return
}

// String returns the assembly representation of the instruction.
func (inst Instruction) String() (out string) {
	out = inst.Mnemonic()
	if inst.Class == CLASS_IX {
		_, reg := inst.IxOp()
		out = fmt.Sprintf("%v ix%d", out, reg)
	}
	out = fmt.Sprintf("%v %04x", out, inst.Address)
	if inst.IndexSel != 0 {
		out = fmt.Sprintf("%v ix%d", out, inst.IndexSel-1)
	}
	if inst.Bank == BANK_2 {
		out += " bank2"
	}
	return
}
