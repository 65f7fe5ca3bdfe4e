// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elf32 extracts the structures needed to flash a 32-bit
// little-endian ELF image: the file header, the program headers and, for
// display purposes, the section headers.
//
// The parser is a structural extractor. It does not check the magic number,
// class, data encoding or version. It only refuses to read outside the input
// buffer.
package elf32

import (
	"fmt"
	"io"

	"github.com/embeddedgo/elf2uf2/internal/le"
)

const (
	HeaderSize  = 52 // size of the ELF32 file header
	ProgSize    = 32 // size of the fields decoded from a program header
	SectionSize = 40 // size of the fields decoded from a section header
)

// Header is the ELF32 file header.
type Header struct {
	Ident     [16]byte
	Type      Type
	Machine   Machine
	Version   Version
	Entry     uint32
	Phoff     uint32 // program header table offset
	Shoff     uint32 // section header table offset
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16 // section name string table index
}

// Prog is an ELF32 program header.
type Prog struct {
	Type   ProgType
	Off    uint32 // offset of the segment data in the file
	Vaddr  uint32 // address in the memory during execution
	Paddr  uint32 // physical location of the segment in the Flash/ROM
	Filesz uint32
	Memsz  uint32
	Flags  ProgFlag
	Align  uint32
}

// Section is an ELF32 section header with its name resolved.
type Section struct {
	Name      string
	NameOff   uint32 // sh_name
	Type      SectionType
	Flags     SectionFlag
	Addr      uint32
	Off       uint32
	Size      uint32
	Link      uint32
	Info      uint32
	Addralign uint32
	Entsize   uint32
}

// File is the parsed part of an ELF32 image required for conversion.
type File struct {
	Header
	Progs []Prog
}

type Error struct {
	Op  string
	Err error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return "elf32: " + e.Op + ": " + e.Err.Error()
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{op, err}
}

// Parse parses the file header and the program header table of the ELF image
// stored in data.
func Parse(data []byte) (*File, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	progs, err := ParseProgs(data, &h)
	if err != nil {
		return nil, err
	}
	return &File{Header: h, Progs: progs}, nil
}

// ParseHeader decodes the ELF32 file header at the beginning of data.
func ParseHeader(data []byte) (h Header, err error) {
	c := le.NewCursor(data, 0)
	copy(h.Ident[:], c.Bytes(len(h.Ident)))
	h.Type = Type(c.Uint16())
	h.Machine = Machine(c.Uint16())
	h.Version = Version(c.Uint32())
	h.Entry = c.Uint32()
	h.Phoff = c.Uint32()
	h.Shoff = c.Uint32()
	h.Flags = c.Uint32()
	h.Ehsize = c.Uint16()
	h.Phentsize = c.Uint16()
	h.Phnum = c.Uint16()
	h.Shentsize = c.Uint16()
	h.Shnum = c.Uint16()
	h.Shstrndx = c.Uint16()
	err = wrapErr("file header", c.Err())
	return
}

// checkTable checks that the table of n entries of the given size, starting at
// off, is contained in a buffer of the given length.
func checkTable(off uint32, n, size uint16, length int) error {
	end := uint64(off) + uint64(n)*uint64(size)
	if end > uint64(length) {
		return fmt.Errorf(
			"%d entries of %d bytes at offset %#x exceed the file size %d: %w",
			n, size, off, length, io.ErrUnexpectedEOF,
		)
	}
	return nil
}

// ParseProgs decodes the program header table described by h. The headers are
// returned in the file order. A zero h.Phentsize means an empty table.
func ParseProgs(data []byte, h *Header) ([]Prog, error) {
	if h.Phentsize == 0 || h.Phnum == 0 {
		return nil, nil
	}
	err := checkTable(h.Phoff, h.Phnum, h.Phentsize, len(data))
	if err != nil {
		return nil, wrapErr("program header table", err)
	}
	progs := make([]Prog, h.Phnum)
	c := le.NewCursor(data, 0)
	for i := range progs {
		c.Seek(int(h.Phoff) + i*int(h.Phentsize))
		p := &progs[i]
		p.Type = ProgType(c.Uint32())
		p.Off = c.Uint32()
		p.Vaddr = c.Uint32()
		p.Paddr = c.Uint32()
		p.Filesz = c.Uint32()
		p.Memsz = c.Uint32()
		p.Flags = ProgFlag(c.Uint32())
		p.Align = c.Uint32()
		if err := c.Err(); err != nil {
			return nil, wrapErr(fmt.Sprintf("program header %d", i), err)
		}
	}
	return progs, nil
}

// ParseSections decodes the section header table described by h and resolves
// the section names using the h.Shstrndx string table. Conversion does not
// depend on sections so callers may ignore the error of this function.
func ParseSections(data []byte, h *Header) ([]Section, error) {
	if h.Shentsize == 0 || h.Shnum == 0 {
		return nil, nil
	}
	err := checkTable(h.Shoff, h.Shnum, h.Shentsize, len(data))
	if err != nil {
		return nil, wrapErr("section header table", err)
	}
	ss := make([]Section, h.Shnum)
	c := le.NewCursor(data, 0)
	for i := range ss {
		c.Seek(int(h.Shoff) + i*int(h.Shentsize))
		s := &ss[i]
		s.NameOff = c.Uint32()
		s.Type = SectionType(c.Uint32())
		s.Flags = SectionFlag(c.Uint32())
		s.Addr = c.Uint32()
		s.Off = c.Uint32()
		s.Size = c.Uint32()
		s.Link = c.Uint32()
		s.Info = c.Uint32()
		s.Addralign = c.Uint32()
		s.Entsize = c.Uint32()
		if err := c.Err(); err != nil {
			return nil, wrapErr(fmt.Sprintf("section header %d", i), err)
		}
	}
	if h.Shstrndx == 0 || int(h.Shstrndx) >= len(ss) {
		return ss, nil // SHN_UNDEF or an escape value, no names
	}
	st := &ss[h.Shstrndx]
	c.Seek(int(st.Off))
	strtab := c.Bytes(int(st.Size))
	if err := c.Err(); err != nil {
		return nil, wrapErr("section name string table", err)
	}
	for i := range ss {
		ss[i].Name, err = cstring(strtab, ss[i].NameOff)
		if err != nil {
			return nil, wrapErr(fmt.Sprintf("section %d name", i), err)
		}
	}
	return ss, nil
}

// cstring returns the NUL terminated string that starts at tab[off].
func cstring(tab []byte, off uint32) (string, error) {
	if uint64(off) >= uint64(len(tab)) {
		return "", fmt.Errorf(
			"offset %#x outside the string table (size %d): %w",
			off, len(tab), io.ErrUnexpectedEOF,
		)
	}
	for i, b := range tab[off:] {
		if b == 0 {
			return string(tab[off : int(off)+i]), nil
		}
	}
	return "", fmt.Errorf("unterminated string at offset %#x", off)
}
