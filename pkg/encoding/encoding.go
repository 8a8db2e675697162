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

package encoding

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Decodes a decimal address literal in the 15-bit Hack address range
func DecodeAddress(s string) (uint16, error) {
	result, err := strconv.ParseUint(s, 10, 64)

	if err != nil {
		return 0, err
	}

	if result >= 1<<15 {
		return 0, errors.New("Address exceeds 15-bit range")
	}

	return uint16(result), nil
}

// Renders a machine word in the .hack text format: sixteen ASCII '0'/'1'
// characters, most significant bit first
func EncodeWord(value uint16) string {
	return fmt.Sprintf("%016b", value)
}

// Writes words to w in the .hack text format, one word per line
func WriteHack(w io.Writer, words []uint16) error {
	buffer := bufio.NewWriter(w)

	for _, word := range words {
		if _, err := fmt.Fprintf(buffer, "%016b\n", word); err != nil {
			return err
		}
	}

	return buffer.Flush()
}
