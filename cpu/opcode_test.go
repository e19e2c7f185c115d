package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

func TestDecodeEncode(t *testing.T) {
	assert := assert.New(t)

	inst := Instruction{
		Class:    CLASS_ADD,
		Opcode:   ADD_OP_SUB,
		IndexSel: 2,
		Bank:     BANK_2,
		Address:  0x1234,
	}

	got := Decode(inst.Encode())
	assert.Equal(inst, got)
}

func TestDecodeFields(t *testing.T) {
	assert := assert.New(t)

	// Bank sign in bit 15, class 14..12, opcode 11..8, selector 7..6.
	w := word.Join(word.Half(0x8000|(5<<12)|(2<<8)|(3<<6)), word.Half(0x00ff))
	inst := Decode(w)

	assert.Equal(BANK_2, inst.Bank)
	assert.Equal(CLASS_BR, inst.Class)
	assert.Equal(BR_OP_JSB, inst.Opcode)
	assert.Equal(3, inst.IndexSel)
	assert.Equal(uint16(0x00ff), inst.Address)
}

func TestDecodeTotal(t *testing.T) {
	assert := assert.New(t)

	// Any bit pattern decodes; class 7 is simply undefined.
	inst := Decode(word.Join(word.Half(0x7f00), 0))
	assert.Equal(Class(7), inst.Class)
	assert.Equal("und", inst.Mnemonic())
}

func TestMnemonics(t *testing.T) {
	assert := assert.New(t)

	for name, expect := range map[string]Instruction{
		"hlt": {Class: CLASS_MISC, Opcode: MISC_OP_HLT},
		"cad": {Class: CLASS_ADD, Opcode: ADD_OP_CAD},
		"mul": {Class: CLASS_MUL, Opcode: MUL_OP_MUL},
		"str": {Class: CLASS_STO, Opcode: STO_OP_STR},
		"bir": {Class: CLASS_BR, Opcode: BR_OP_BIR},
		"wrt": {Class: CLASS_IO, Opcode: IO_OP_WRT},
		"xad": {Class: CLASS_IX, Opcode: IX_OP_XAD << 2},
	} {
		expect.Bank = BANK_1
		assert.Equal(name, expect.Mnemonic())
	}
}

func TestIxOp(t *testing.T) {
	assert := assert.New(t)

	inst := Instruction{Class: CLASS_IX, Opcode: (IX_OP_XIM << 2) | 3}
	op, reg := inst.IxOp()
	assert.Equal(IX_OP_XIM, op)
	assert.Equal(3, reg)
}

func FuzzDecode(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(0xffffffff))
	f.Add(uint32(0x51234567))

	f.Fuzz(func(t *testing.T, raw uint32) {
		assert := assert.New(t)

		inst := Decode(word.Word(raw))

		// Encode reproduces every defined field.
		assert.Equal(inst, Decode(inst.Encode()))
		assert.NotPanics(func() { _ = inst.String() })
	})
}
