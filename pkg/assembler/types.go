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
	"fmt"
)

type InstructionType uint

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

// Token is a source line with comments and whitespace stripped, carrying
// the position of the raw line it came from.
type Token struct {
	Position Cursor
	Value    string
}

// Instruction is one of the two Hack instruction shapes: an address load
// (resolved 15-bit value) or a computation (comp/dest/jump field codes).
type Instruction struct {
	Type    InstructionType
	Address uint16
	Comp    uint16
	Dest    uint16
	Jump    uint16
}

func (inst *Instruction) Encode() uint16 {
	switch inst.Type {
	case INSTRUCTION_ADDRESS:
		return inst.Address & AddressMask
	case INSTRUCTION_COMPUTE:
		return ComputeOpcode | inst.Comp<<6 | inst.Dest<<3 | inst.Jump
	}

	return 0
}

// SymTable collects debugging information during assembly: instruction
// addresses to source byte offsets, ROM addresses to label names, and RAM
// addresses to variable names.
type SymTable struct {
	Source    string
	Symbols   map[uint16]int64
	Labels    map[uint16]string
	Variables map[uint16]string
}

type LineError interface {
	GetPosition() Cursor
}

type DuplicateLabelError struct {
	Position Cursor
	Received string
}

func (err *DuplicateLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *DuplicateLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Duplicate definition of label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type ReservedSymbolError struct {
	Position Cursor
	Received string
}

func (err *ReservedSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *ReservedSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Label '%s' conflicts with a predefined symbol",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type AddressRangeError struct {
	Position Cursor
	Limit    uint16
	Received string
}

func (err *AddressRangeError) GetPosition() Cursor {
	return err.Position
}

func (err *AddressRangeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Address literal exceeds allowed range\n\twant:<=%d\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Limit,
		err.Received,
	)
}

type UnknownComputationError struct {
	Position Cursor
	Received string
}

func (err *UnknownComputationError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownComputationError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown computation '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownJumpError struct {
	Position Cursor
	Received string
}

func (err *UnknownJumpError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownJumpError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown jump mnemonic '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type MalformedInstructionError struct {
	Position Cursor
	Received string
}

func (err *MalformedInstructionError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedInstructionError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Malformed instruction '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type EmptySourceError struct{}

func (err *EmptySourceError) Error() string {
	return "Source contains no instructions"
}

type SourceReadError struct {
	Err error
}

func (err *SourceReadError) Error() string {
	return fmt.Sprintf("Error reading source: %v", err.Err)
}

func (err *SourceReadError) Unwrap() error {
	return err.Err
}

type OversizedProgramError struct{}

func (err *OversizedProgramError) Error() string {
	return "Program exceeds the addressable instruction space"
}
