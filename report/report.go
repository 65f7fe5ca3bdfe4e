// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report prints ELF32 and UF2 structures as text tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/embeddedgo/elf2uf2/elf32"
	"github.com/embeddedgo/elf2uf2/uf2"
)

const width = 70

var (
	thinRule  = strings.Repeat("-", width) + "\n"
	thickRule = strings.Repeat("=", width) + "\n"
)

// table writes rows to w and remembers the first write error.
type table struct {
	w   io.Writer
	err error
}

func (t *table) printf(format string, args ...any) {
	if t.err == nil {
		_, t.err = fmt.Fprintf(t.w, format, args...)
	}
}

// row writes a row preceded by the thin rule.
func (t *table) row(name string, val any) {
	t.printf("%s%-32s | %-35v\n", thinRule, name, val)
}

// enum writes a row with a numeric value and its symbolic name.
func (t *table) enum(name string, val any, sym fmt.Stringer) {
	t.printf("%s%-32s | %-16v | %-16s\n", thinRule, name, val, sym)
}

func hex(v uint32) string { return fmt.Sprintf("%#x", v) }
func bin(v uint32) string { return fmt.Sprintf("%#b", v) }

// Header prints the ELF file header.
func Header(w io.Writer, h *elf32.Header) error {
	t := &table{w: w}
	header(t, h)
	return t.err
}

func header(t *table, h *elf32.Header) {
	t.enum("Type", uint16(h.Type), h.Type)
	t.enum("Arch", uint16(h.Machine), h.Machine)
	t.enum("Version", uint32(h.Version), h.Version)
	t.row("Entry point", hex(h.Entry))
	t.row("Program header offset", h.Phoff)
	t.row("Section header offset", h.Shoff)
	t.row("ELF header size", h.Ehsize)
	t.row("Program header table entry size", h.Phentsize)
	t.row("Program header table entry count", h.Phnum)
	t.row("Section header table entry size", h.Shentsize)
	t.row("Section header table entry count", h.Shnum)
	t.row("Section name string table start", h.Shstrndx)
}

// Progs prints the program headers.
func Progs(w io.Writer, progs []elf32.Prog) error {
	t := &table{w: w}
	for i := range progs {
		prog(t, &progs[i])
	}
	return t.err
}

func prog(t *table, p *elf32.Prog) {
	t.printf("%s%-32s | %-16v | %-16s\n", thickRule, "Segment type", uint32(p.Type), p.Type)
	t.row("Segment offset", p.Off)
	t.row("Segment virtual address", hex(p.Vaddr))
	t.row("Segment physical address", hex(p.Paddr))
	t.row("Segment file image size", p.Filesz)
	t.row("Segment memory image size", p.Memsz)
	t.row("Segment flags", bin(uint32(p.Flags)))
	t.row("Segment address alignment", p.Align)
}

// Sections prints the section headers.
func Sections(w io.Writer, sections []elf32.Section) error {
	t := &table{w: w}
	for i := range sections {
		section(t, &sections[i])
	}
	return t.err
}

func section(t *table, s *elf32.Section) {
	t.printf("%s%s\n", thickRule, s.Name)
	t.row("Section header name index", s.NameOff)
	t.enum("Section type", uint32(s.Type), s.Type)
	t.row("Section flags", bin(uint32(s.Flags)))
	t.row("Section address", hex(s.Addr))
	t.row("Section offset", s.Off)
	t.row("Section size", s.Size)
	t.row("Section header table index link", s.Link)
	t.row("Section extra information", s.Info)
	t.row("Section address alignment", s.Addralign)
	t.row("Section entry size", s.Entsize)
}

// ELF prints the file header followed by the program and section headers.
func ELF(w io.Writer, f *elf32.File, sections []elf32.Section) error {
	t := &table{w: w}
	header(t, &f.Header)
	for i := range f.Progs {
		prog(t, &f.Progs[i])
	}
	for i := range sections {
		section(t, &sections[i])
	}
	return t.err
}

// Blocks prints the UF2 block headers.
func Blocks(w io.Writer, blocks []uf2.Block) error {
	t := &table{w: w}
	for i := range blocks {
		b := &blocks[i]
		t.printf("%s%-32s | %-35s\n", thickRule, "Magic start 0", hex(b.Magic0))
		t.row("Magic start 1", hex(b.Magic1))
		t.row("Flags", bin(b.Flags))
		t.row("Target address", hex(b.Addr))
		t.row("Payload size", b.Len)
		t.row("Block number", b.Seq)
		t.row("Number of blocks", b.Total)
		t.row("Family ID", hex(b.Family))
		t.row("Magic end", hex(b.Magic2))
	}
	return t.err
}
