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

package encoding_test

import (
	"bytes"
	"testing"

	"github.com/lassandro/gohack/pkg/encoding"
)

func TestDecodeAddress(t *testing.T) {
	for input, want := range map[string]uint16{
		"0":     0,
		"2":     2,
		"007":   7,
		"32767": 32767,
	} {
		have, err := encoding.DecodeAddress(input)

		if err != nil {
			t.Fatal(err)
		}

		if have != want {
			t.Fatalf("DecodeAddress(%q)\nwant:%d\nhave:%d", input, want, have)
		}
	}

	for _, input := range []string{"32768", "65536", "99999999999999999999"} {
		if _, err := encoding.DecodeAddress(input); err == nil {
			t.Fatalf("DecodeAddress(%q) accepted an oversized literal", input)
		}
	}
}

func TestEncodeWord(t *testing.T) {
	for input, want := range map[uint16]string{
		0:      "0000000000000000",
		2:      "0000000000000010",
		0xE310: "1110001100010000",
		0xFFFF: "1111111111111111",
	} {
		if have := encoding.EncodeWord(input); have != want {
			t.Fatalf("EncodeWord(%d)\nwant:%s\nhave:%s", input, want, have)
		}
	}
}

func TestWriteHack(t *testing.T) {
	var buffer bytes.Buffer

	words := []uint16{2, 0b1110110000010000}

	if err := encoding.WriteHack(&buffer, words); err != nil {
		t.Fatal(err)
	}

	want := "0000000000000010\n1110110000010000\n"

	if have := buffer.String(); have != want {
		t.Fatalf("Invalid .hack output\nwant:%q\nhave:%q", want, have)
	}
}
