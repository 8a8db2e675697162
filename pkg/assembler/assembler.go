// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/lassandro/gohack/pkg/encoding"
)

// computePattern matches the dest and comp fields of a C-instruction,
// anchored at the start of the line with longer alternatives first. The
// pattern deliberately reproduces the reference assembler's leniency: the
// comp field may match a prefix of the text (so 'Memory=Address' encodes
// as the computation 'M') and anything after the match is ignored.
var computePattern = regexp.MustCompile(
	`^((AMD|AD|AM|MD|A|M|D)=)?` +
		`(D\|A|D&A|A-D|D-A|D\+A|A-1|D-1|A\+1|D\+1|` +
		`D\|M|D&M|M-D|D-M|D\+M|M-1|M\+1|-M|!M|M|` +
		`-A|-D|!A|!D|A|D|-1|1|0?)`,
)

// stripLine removes the first comment and every whitespace rune, interior
// whitespace included, so 'D = A' assembles like 'D=A'.
func stripLine(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
}

// normalizeSource reduces the input to the lines that hold a label
// definition or an instruction. Positions point at the raw line so errors
// can be reported against the original text.
func normalizeSource(input io.ReadSeeker) ([]Token, error) {
	var tokens []Token

	var scanner = bufio.NewScanner(input)
	var cursor = Cursor{Line: 1, Column: 1}

	for scanner.Scan() {
		line := scanner.Text()

		if value := stripLine(line); value != "" {
			tokens = append(tokens, Token{
				Position: Cursor{
					Line:     cursor.Line,
					Column:   1,
					Byte:     cursor.LineByte,
					Size:     int64(len(line)),
					LineByte: cursor.LineByte,
				},
				Value: value,
			})
		}

		cursor.Line++
		cursor.LineByte += int64(len(line) + 1)
	}

	if err := scanner.Err(); err != nil {
		return nil, &SourceReadError{err}
	}

	return tokens, nil
}

type symbolTable struct {
	entries map[string]uint16
	cursor  uint16
}

func newSymbolTable() *symbolTable {
	entries := make(map[string]uint16, len(predefinedSymbols)+16)

	for name, addr := range predefinedSymbols {
		entries[name] = addr
	}

	return &symbolTable{entries: entries, cursor: VariableBase}
}

// resolve returns the address bound to name, allocating the next variable
// address on first use. Entries are never reassigned.
func (table *symbolTable) resolve(name string) (addr uint16, fresh bool) {
	if addr, exists := table.entries[name]; exists {
		return addr, false
	}

	addr = table.cursor
	table.entries[name] = addr
	table.cursor++

	return addr, true
}

func isAddressLiteral(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

func parseAddress(token *Token, symbols *symbolTable, symtable *SymTable) (Instruction, error) {
	operand := token.Value[1:]

	if isAddressLiteral(operand) {
		value, err := encoding.DecodeAddress(operand)

		if err != nil {
			return Instruction{}, &AddressRangeError{
				token.Position, AddressMask, operand,
			}
		}

		return Instruction{Type: INSTRUCTION_ADDRESS, Address: value}, nil
	}

	addr, fresh := symbols.resolve(operand)

	if fresh && symtable != nil {
		symtable.Variables[addr] = operand
	}

	return Instruction{Type: INSTRUCTION_ADDRESS, Address: addr}, nil
}

func parseCompute(token *Token) (Instruction, error) {
	line := token.Value

	head := line
	jump := ""
	structural := strings.ContainsRune(line, '=')

	if i := strings.IndexByte(line, ';'); i >= 0 {
		structural = true
		head, jump = line[:i], line[i+1:]
	}

	jumpCode, known := jumpCodes[jump]

	if !known {
		return Instruction{}, &UnknownJumpError{token.Position, jump}
	}

	groups := computePattern.FindStringSubmatch(head)

	if groups == nil || groups[3] == "" {
		if structural {
			return Instruction{}, &UnknownComputationError{token.Position, head}
		}

		return Instruction{}, &MalformedInstructionError{token.Position, line}
	}

	return Instruction{
		Type: INSTRUCTION_COMPUTE,
		Comp: compCodes[groups[3]],
		Dest: destCodes[groups[2]],
		Jump: jumpCode,
	}, nil
}

// AssembleHackSource translates symbolic Hack assembly into machine words,
// in program order. Lines that fail to parse contribute no word; their
// errors are accumulated and assembly continues with the next line. An
// unreadable or instruction-free source aborts with a nil result.
//
// Pass one seeds a fresh symbol table with the predefined set and binds
// each '(NAME)' definition to the address of the instruction that follows
// it. Pass two encodes the remaining lines, allocating RAM addresses from
// 16 upward for symbols never defined as labels. The passes stay separate
// because a label may be referenced before its definition.
//
// When symtable is non-nil it is filled with debugging information.
func AssembleHackSource(input io.ReadSeeker, symtable *SymTable) (result []uint16, errs []error) {
	tokens, err := normalizeSource(input)

	if err != nil {
		return nil, []error{err}
	}

	if len(tokens) == 0 {
		return nil, []error{&EmptySourceError{}}
	}

	errs = make([]error, 0)

	symbols := newSymbolTable()

	// Pass 1:
	// - Bind label definitions to instruction addresses
	// - Gather the instruction lines for pass 2
	var program uint32
	var instructions = make([]Token, 0, len(tokens))

	for _, token := range tokens {
		line := token.Value

		if strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")") {
			name := line[1 : len(line)-1]

			if _, reserved := predefinedSymbols[name]; reserved {
				errs = append(
					errs, &ReservedSymbolError{token.Position, name},
				)
				continue
			}

			if _, exists := symbols.entries[name]; exists {
				errs = append(
					errs, &DuplicateLabelError{token.Position, name},
				)
				continue
			}

			symbols.entries[name] = uint16(program)

			if symtable != nil {
				symtable.Labels[uint16(program)] = name
			}

			continue
		}

		instructions = append(instructions, token)
		program++
	}

	if program > AddressLimit {
		errs = append(errs, &OversizedProgramError{})
		return nil, errs
	}

	// Pass 2:
	// - Resolve address operands, allocating variables on first use
	// - Encode one word per instruction, in source order
	result = make([]uint16, 0, len(instructions))

	for addr := range instructions {
		token := &instructions[addr]

		var inst Instruction
		var err error

		if strings.HasPrefix(token.Value, "@") {
			inst, err = parseAddress(token, symbols, symtable)
		} else {
			inst, err = parseCompute(token)
		}

		if err != nil {
			errs = append(errs, err)
			continue
		}

		if symtable != nil {
			symtable.Symbols[uint16(addr)] = token.Position.LineByte
		}

		result = append(result, inst.Encode())
	}

	return result, errs
}
