package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

// Assembler is a two-pass assembler for the machine's instruction set.
// Pass one collects labels and assigns addresses; pass two resolves
// operands and encodes words. $(...) operands are evaluated at assembly
// time as starlark expressions over predefines, equates, and labels.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label  map[string]uint16 // Map of labels to addresses.
	Equate map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new predefine or redefines an existing one.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

type operandKind int

const (
	opNone       = operandKind(0) // no operands
	opAddress    = operandKind(1) // address [ixN] [bank2]
	opRegister   = operandKind(2) // ixN
	opRegAddress = operandKind(3) // ixN address
)

var mnemonicMap = map[string]struct {
	class  Class
	opcode int
	kind   operandKind
}{
	"hlt": {CLASS_MISC, MISC_OP_HLT, opNone},
	"cad": {CLASS_ADD, ADD_OP_CAD, opAddress},
	"add": {CLASS_ADD, ADD_OP_ADD, opAddress},
	"sub": {CLASS_ADD, ADD_OP_SUB, opAddress},
	"mul": {CLASS_MUL, MUL_OP_MUL, opAddress},
	"sto": {CLASS_STO, STO_OP_STO, opAddress},
	"stl": {CLASS_STO, STO_OP_STL, opAddress},
	"str": {CLASS_STO, STO_OP_STR, opAddress},
	"xld": {CLASS_IX, IX_OP_XLD, opRegAddress},
	"xim": {CLASS_IX, IX_OP_XIM, opRegAddress},
	"xcl": {CLASS_IX, IX_OP_XCL, opRegister},
	"xad": {CLASS_IX, IX_OP_XAD, opRegAddress},
	"bpx": {CLASS_BR, BR_OP_BPX, opAddress},
	"blm": {CLASS_BR, BR_OP_BLM, opAddress},
	"jsb": {CLASS_BR, BR_OP_JSB, opAddress},
	"bir": {CLASS_BR, BR_OP_BIR, opAddress},
	"rds": {CLASS_IO, IO_OP_RDS, opAddress},
	"wrt": {CLASS_IO, IO_OP_WRT, opAddress},
}

// parseNumber parses a plain numeric token.
func parseNumber(token string) (value int, err error) {
	v64, perr := strconv.ParseInt(token, 0, 32)
	if perr != nil {
		err = ErrParseNumber(token)
		return
	}

	value = int(v64)
	return
}

// parenEval does assembly-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.predefine {
		num, nerr := parseNumber(str)
		if nerr != nil {
			// Ignore non-integer predefines.
			continue
		}
		pred[key] = starlark.MakeInt(num)
	}
	for key, str := range asm.Equate {
		num, nerr := parseNumber(str)
		if nerr != nil {
			continue
		}
		pred[key] = starlark.MakeInt(num)
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(int(address))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// resolve turns an operand token into a value. withLabels is false during
// pass one, where only predefines and equates exist.
func (asm *Assembler) resolve(token string, withLabels bool) (value int, err error) {
	if strings.HasPrefix(token, "$(") && strings.HasSuffix(token, ")") {
		return asm.parenEval(token[2 : len(token)-1])
	}

	if withLabels {
		if address, ok := asm.Label[token]; ok {
			value = int(address)
			return
		}
	}
	if str, ok := asm.Equate[token]; ok {
		return asm.resolve(str, withLabels)
	}
	if str, ok := asm.predefine[token]; ok {
		return asm.resolve(str, withLabels)
	}

	value, err = parseNumber(token)
	if err != nil {
		err = ErrParseValue(token)
	}
	return
}

// resolveAddress resolves a 16-bit address operand.
func (asm *Assembler) resolveAddress(token string) (address uint16, err error) {
	value, err := asm.resolve(token, true)
	if err != nil {
		return
	}
	if value < 0 || value > 0xffff {
		err = ErrParseValue(token)
		return
	}

	address = uint16(value)
	return
}

// parseIx parses an ix0..ix3 register token.
func parseIx(token string) (reg int, ok bool) {
	if len(token) != 3 || !strings.HasPrefix(token, "ix") {
		return
	}
	if token[2] < '0' || token[2] > '3' {
		return
	}

	reg = int(token[2] - '0')
	ok = true
	return
}

var exprToken = regexp.MustCompile(`\$\([^$]*\)`)

// foldExprs collapses whitespace inside $(...) spans so each expression
// survives field splitting as a single token. Evaluation itself waits
// for pass two, when labels exist.
func foldExprs(line string) string {
	return exprToken.ReplaceAllStringFunc(line, func(expr string) string {
		return strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' {
				return -1
			}
			return r
		}, expr)
	})
}

type rawLine struct {
	LineNo  int
	Address uint16
	Words   []string
	Text    string
}

// Parse assembles a source stream into a program.
func (asm *Assembler) Parse(in io.Reader) (prog *Program, err error) {
	asm.Label = map[string]uint16{}
	if asm.Equate == nil {
		asm.Equate = map[string]string{}
	}

	var lines []rawLine
	address := uint16(0)
	lineno := 0

	// Pass one: labels and addresses.
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineno++
		text := scanner.Text()

		line := text
		if cut := strings.Index(line, ";"); cut >= 0 {
			line = line[:cut]
		}
		words := strings.Fields(foldExprs(line))

		for len(words) > 0 && strings.HasSuffix(words[0], ":") {
			label := strings.TrimSuffix(words[0], ":")
			if _, dup := asm.Label[label]; dup {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrLabelDuplicate}
				return
			}
			asm.Label[label] = address
			words = words[1:]
		}
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case ".equ":
			if len(words) != 3 {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrEquateSyntax}
				return
			}
			asm.Equate[words[1]] = words[2]
		case ".org":
			if len(words) != 2 {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrOrgSyntax}
				return
			}
			var value int
			value, err = asm.resolve(words[1], false)
			if err != nil {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
				return
			}
			address = uint16(value)
		default:
			lines = append(lines, rawLine{
				LineNo:  lineno,
				Address: address,
				Words:   words,
				Text:    text,
			})
			address++
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Pass two: encode.
	prog = &Program{Labels: asm.Label}
	for _, raw := range lines {
		var code word.Word
		code, err = asm.encode(raw.Words)
		if err != nil {
			err = ErrSyntax{LineNo: raw.LineNo, Line: raw.Text, Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("asm: %04x %v <- %v", raw.Address, code, raw.Words)
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo:  raw.LineNo,
			Bank:    BANK_1,
			Address: raw.Address,
			Words:   raw.Words,
			Code:    code,
		})
	}

	return
}

// encode translates one statement's tokens into a machine word.
func (asm *Assembler) encode(words []string) (code word.Word, err error) {
	if words[0] == ".word" {
		if len(words) != 3 {
			err = ErrWordSyntax
			return
		}
		var left, right int
		left, err = asm.resolve(words[1], true)
		if err != nil {
			return
		}
		right, err = asm.resolve(words[2], true)
		if err != nil {
			return
		}
		code, err = word.FromInts(left, right)
		return
	}

	m, ok := mnemonicMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	inst := Instruction{
		Class:  m.class,
		Opcode: m.opcode,
		Bank:   BANK_1,
	}
	operands := words[1:]

	switch m.kind {
	case opNone:
		// No operands to parse.

	case opRegister, opRegAddress:
		if len(operands) == 0 {
			err = ErrOperandMissing
			return
		}
		reg, ok := parseIx(operands[0])
		if !ok {
			err = ErrRegisterInvalid
			return
		}
		inst.Opcode = (m.opcode << 2) | reg
		operands = operands[1:]

		if m.kind == opRegAddress {
			if len(operands) == 0 {
				err = ErrOperandMissing
				return
			}
			inst.Address, err = asm.resolveAddress(operands[0])
			if err != nil {
				return
			}
			operands = operands[1:]
		}

	case opAddress:
		if len(operands) == 0 {
			err = ErrOperandMissing
			return
		}
		inst.Address, err = asm.resolveAddress(operands[0])
		if err != nil {
			return
		}
		operands = operands[1:]

		// Optional index selector and bank flag, in either order.
		for len(operands) > 0 {
			token := operands[0]
			if token == "bank2" {
				inst.Bank = BANK_2
				operands = operands[1:]
				continue
			}
			reg, ok := parseIx(token)
			if !ok {
				break
			}
			// Only ix0..ix2 are reachable through the 2-bit
			// selector; ix3 is an IX-class target only.
			if reg > 2 {
				err = ErrIndexInvalid
				return
			}
			inst.IndexSel = reg + 1
			operands = operands[1:]
		}
	}

	if len(operands) != 0 {
		err = ErrOperandExtra
		return
	}

	code = inst.Encode()
	return
}

// MustAssemble assembles a source listing or panics. For canned programs
// and tests whose source is fixed at build time.
func MustAssemble(source []string, predefines map[string]string) (prog *Program) {
	asm := &Assembler{}
	for name, value := range predefines {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	if err != nil {
		panic(fmt.Sprintf("canned program: %v", err))
	}

	return
}
