// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"bytes"
	"testing"

	"github.com/marcinbor85/gohex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/elf2uf2"
	"github.com/embeddedgo/elf2uf2/elf32"
	"github.com/embeddedgo/elf2uf2/elf32/elf32test"
)

func testELF() []byte {
	return (&elf32test.Image{
		Machine: elf32.EM_ARM,
		Entry:   0x10000101,
		Segments: []elf32test.Segment{
			{Type: elf32.PT_LOAD, Paddr: 0x10000000, Data: elf32test.Pattern(40)},
			{Type: elf32.PT_LOAD, Paddr: 0x20000000, Memsz: 64},
		},
	}).Bytes()
}

func TestWrite(t *testing.T) {
	extra := []elf2uf2.Segment{{Addr: 0x10010000, Data: []byte{1, 2, 3, 4}}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testELF(), extra))
	assert.Contains(t, buf.String(), ":04000005")

	mem := gohex.NewMemory()
	require.NoError(t, mem.ParseIntelHex(&buf))
	assert.ElementsMatch(t, []gohex.DataSegment{
		{Address: 0x10000000, Data: elf32test.Pattern(40)},
		{Address: 0x10010000, Data: []byte{1, 2, 3, 4}},
	}, mem.GetDataSegments())
}

func TestWriteOverlap(t *testing.T) {
	extra := []elf2uf2.Segment{{Addr: 0x10000010, Data: []byte{1}}}
	err := Write(new(bytes.Buffer), testELF(), extra)
	assert.ErrorContains(t, err, "segment at 0x10000010")
}

func TestWriteBadELF(t *testing.T) {
	assert.Error(t, Write(new(bytes.Buffer), []byte("\x7fELF"), nil))
}
