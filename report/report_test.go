// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/elf2uf2/elf32"
	"github.com/embeddedgo/elf2uf2/elf32/elf32test"
	"github.com/embeddedgo/elf2uf2/uf2"
)

func testFile(t *testing.T) (*elf32.File, []elf32.Section) {
	data := (&elf32test.Image{
		Machine: elf32.EM_ARM,
		Entry:   0x10000101,
		Segments: []elf32test.Segment{{
			Type:  elf32.PT_LOAD,
			Paddr: 0x10000000,
			Vaddr: 0x10000000,
			Flags: elf32.PF_R | elf32.PF_X,
			Data:  elf32test.Pattern(16),
		}},
		Sections: []elf32test.Section{{
			Name: ".text",
			Type: elf32.SHT_PROGBITS,
			Addr: 0x10000000,
			Data: elf32test.Pattern(16),
		}},
	}).Bytes()
	f, err := elf32.Parse(data)
	require.NoError(t, err)
	ss, err := elf32.ParseSections(data, &f.Header)
	require.NoError(t, err)
	return f, ss
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func count(ls []string, prefix string) int {
	n := 0
	for _, l := range ls {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func TestHeader(t *testing.T) {
	f, _ := testFile(t)
	var sb strings.Builder
	require.NoError(t, Header(&sb, &f.Header))
	ls := lines(sb.String())
	require.Len(t, ls, 24)
	assert.Equal(t, strings.Repeat("-", 70), ls[0])
	assert.Equal(t, "Type                             | 2                | ET_EXEC         ", ls[1])
	assert.Equal(t, "Arch                             | 40               | EM_ARM          ", ls[3])
	assert.Equal(t, "Version                          | 1                | EV_CURRENT      ", ls[5])
	assert.Equal(t, "Entry point                      | 0x10000101                         ", ls[7])
	assert.Equal(t, "Section name string table start  | 2                                  ", ls[23])
}

func TestProgs(t *testing.T) {
	f, _ := testFile(t)
	var sb strings.Builder
	require.NoError(t, Progs(&sb, f.Progs))
	ls := lines(sb.String())
	require.Len(t, ls, 16)
	assert.Equal(t, strings.Repeat("=", 70), ls[0])
	assert.Equal(t, "Segment type                     | 1                | PT_LOAD         ", ls[1])
	assert.Contains(t, sb.String(), "Segment physical address         | 0x10000000")
	assert.Contains(t, sb.String(), "Segment flags                    | 0b101")
}

func TestSections(t *testing.T) {
	_, ss := testFile(t)
	var sb strings.Builder
	require.NoError(t, Sections(&sb, ss))
	ls := lines(sb.String())
	assert.Equal(t, 3, count(ls, "===="))
	assert.Equal(t, 30, count(ls, "----"))
	assert.Equal(t, ".text", ls[23])
	assert.Equal(t, ".shstrtab", ls[45])
	assert.Contains(t, sb.String(), "Section type                     | 3                | SHT_STRTAB      ")
}

func TestELF(t *testing.T) {
	f, ss := testFile(t)
	var all, part strings.Builder
	require.NoError(t, ELF(&all, f, ss))
	require.NoError(t, Header(&part, &f.Header))
	require.NoError(t, Progs(&part, f.Progs))
	require.NoError(t, Sections(&part, ss))
	assert.Equal(t, part.String(), all.String())
}

func TestBlocks(t *testing.T) {
	blocks := []uf2.Block{
		uf2.NewBlock(0x10000000, uf2.FamilyRP2350ARMS),
		uf2.NewBlock(0x10000100, uf2.FamilyRP2350ARMS),
	}
	blocks[1].Seq = 1
	var sb strings.Builder
	require.NoError(t, Blocks(&sb, blocks))
	ls := lines(sb.String())
	require.Len(t, ls, 2*18)
	assert.Equal(t, "Magic start 0                    | 0xa324655                          ", ls[1])
	assert.Equal(t, "Flags                            | 0b10000000000000                   ", ls[5])
	assert.Equal(t, "Target address                   | 0x10000100                         ", ls[18+7])
	assert.Equal(t, "Block number                     | 1                                  ", ls[18+11])
	assert.Equal(t, "Family ID                        | 0xe48bff59                         ", ls[15])
	assert.Equal(t, "Magic end                        | 0xab16f30                          ", ls[35])
}

type failWriter struct{ n int }

var errFull = errors.New("full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errFull
	}
	w.n--
	return len(p), nil
}

func TestWriteError(t *testing.T) {
	f, ss := testFile(t)
	assert.ErrorIs(t, Header(&failWriter{3}, &f.Header), errFull)
	assert.ErrorIs(t, Progs(&failWriter{0}, f.Progs), errFull)
	assert.ErrorIs(t, Sections(&failWriter{5}, ss), errFull)
	assert.ErrorIs(t, ELF(&failWriter{20}, f, ss), errFull)
	assert.ErrorIs(t, Blocks(&failWriter{1}, []uf2.Block{{}}), errFull)
}
