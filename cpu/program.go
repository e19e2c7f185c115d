package cpu

import (
	"fmt"
	"iter"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

// Statement is one assembled source line: its location, source tokens,
// and the machine word it produced.
type Statement struct {
	LineNo  int
	Bank    Bank
	Address uint16
	Words   []string
	Code    word.Word
}

// Program is an assembled listing ready to load.
type Program struct {
	Statements []Statement
	Labels     map[string]uint16
}

// Words iterates the program's (address, word) pairs in listing order.
func (prog *Program) Words() iter.Seq2[uint16, word.Word] {
	return func(yield func(address uint16, code word.Word) bool) {
		for _, stmt := range prog.Statements {
			if !yield(stmt.Address, stmt.Code) {
				return
			}
		}
	}
}

// Debug returns the statement assembled at a bank address, or nil.
func (prog *Program) Debug(bank Bank, address uint16) (stmt *Statement) {
	for n := range prog.Statements {
		if prog.Statements[n].Bank == bank && prog.Statements[n].Address == address {
			stmt = &prog.Statements[n]
			break
		}
	}

	return
}

// ArraySumSource returns the classic array-sum demonstration: clear the
// accumulator, then add each element through an index register, leaving
// the total at SUM. The expected total is returned alongside, so tests
// and the inspector never recompute it. Pure function, no module state.
func ArraySumSource(values []int) (source []string, total int) {
	source = []string{
		"start:  xcl ix0",
		"        cad zero",
		"        sto sum",
		"loop:   cad sum",
		"        add array ix0",
		"        sto sum",
		"        xad ix0 1",
		"        cad cnt",
		"        sub one",
		"        sto cnt",
		"        blm done",
		"        bpx loop",
		"done:   hlt",
		"zero:   .word 0 0",
		"one:    .word 1 1",
		fmt.Sprintf("cnt:    .word %d %d", len(values)-1, len(values)-1),
		"sum:    .word 0 0",
	}

	for n, value := range values {
		label := "        "
		if n == 0 {
			label = "array:  "
		}
		source = append(source, fmt.Sprintf("%v.word %d %d", label, value, value))
		total += value
	}

	return
}

// ClockDisplaySource returns a program that samples the real-time clock
// and writes it to the first display address, then halts.
func ClockDisplaySource() (source []string) {
	source = []string{
		"start:  rds ADDR_RTC",
		"        wrt ADDR_DISPLAY_BASE",
		"        hlt",
	}

	return
}
