package cpu

import (
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

const (
	BANK_1_SIZE = 65536 // words of core memory
	BANK_2_SIZE = 4096  // words of test memory

	BANK_1_MASK = uint16(0xffff)
	BANK_2_MASK = uint16(0x0fff)
)

// Banks is the machine's paired word-addressable memory. Capacities are
// fixed for the lifetime of the machine.
type Banks struct {
	bank1 []word.Word
	bank2 []word.Word
}

// NewBanks allocates both banks, zero filled.
func NewBanks() *Banks {
	return &Banks{
		bank1: make([]word.Word, BANK_1_SIZE),
		bank2: make([]word.Word, BANK_2_SIZE),
	}
}

// Reset zero-fills both banks.
func (banks *Banks) Reset() {
	clear(banks.bank1)
	clear(banks.bank2)
}

// Size returns a bank's capacity in words, 0 for an unknown bank.
func (banks *Banks) Size(bank Bank) (size int) {
	switch bank {
	case BANK_1:
		size = BANK_1_SIZE
	case BANK_2:
		size = BANK_2_SIZE
	}
	return
}

// Mask returns a bank's address mask. Effective addresses are masked to
// the addressed bank's width.
func Mask(bank Bank) (mask uint16) {
	switch bank {
	case BANK_1:
		mask = BANK_1_MASK
	case BANK_2:
		mask = BANK_2_MASK
	}
	return
}

func (banks *Banks) store(bank Bank) (data []word.Word, err error) {
	switch bank {
	case BANK_1:
		data = banks.bank1
	case BANK_2:
		data = banks.bank2
	default:
		err = ErrBankInvalid
	}
	return
}

// Read returns the word at a bank address.
func (banks *Banks) Read(bank Bank, address uint16) (value word.Word, err error) {
	data, err := banks.store(bank)
	if err != nil {
		return
	}
	if int(address) >= len(data) {
		err = ErrAddressing{Bank: bank, Address: address}
		return
	}

	value = data[address]
	return
}

// Write stores a word at a bank address.
func (banks *Banks) Write(bank Bank, address uint16, value word.Word) (err error) {
	data, err := banks.store(bank)
	if err != nil {
		return
	}
	if int(address) >= len(data) {
		err = ErrAddressing{Bank: bank, Address: address}
		return
	}

	data[address] = value
	return
}
