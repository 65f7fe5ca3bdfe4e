// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elf32test builds small ELF32 images in memory for use in tests.
package elf32test

import (
	"encoding/binary"

	"github.com/embeddedgo/elf2uf2/elf32"
)

// Segment describes a program header and its file image.
type Segment struct {
	Type  elf32.ProgType
	Vaddr uint32
	Paddr uint32
	Flags elf32.ProgFlag
	Data  []byte // file image, Filesz is len(Data)
	Memsz uint32 // zero means len(Data)
}

// Section describes a section header and its contents.
type Section struct {
	Name  string
	Type  elf32.SectionType
	Flags elf32.SectionFlag
	Addr  uint32
	Data  []byte
}

// Image is an ELF32 little-endian executable.
type Image struct {
	Machine  elf32.Machine
	Entry    uint32
	Segments []Segment

	// Sections, if not empty, are preceded by the null section and followed
	// by the .shstrtab section.
	Sections []Section
}

func align4(n int) int { return (n + 3) &^ 3 }

// Bytes returns the encoded image. The layout is: the file header, the
// program header table, the segment data, the section data and the section
// header table.
func (im *Image) Bytes() []byte {
	le := binary.LittleEndian
	phoff := elf32.HeaderSize
	off := phoff + len(im.Segments)*elf32.ProgSize

	segOff := make([]int, len(im.Segments))
	for i, s := range im.Segments {
		off = align4(off)
		segOff[i] = off
		off += len(s.Data)
	}

	var (
		secs     []Section
		secOff   []int
		nameOff  []int
		shoff    int
		shstrndx int
	)
	if len(im.Sections) != 0 {
		shstrtab := []byte{0}
		secs = append(secs, Section{})
		secs = append(secs, im.Sections...)
		secs = append(secs, Section{Name: ".shstrtab", Type: elf32.SHT_STRTAB})
		nameOff = make([]int, len(secs))
		for i := 1; i < len(secs); i++ {
			nameOff[i] = len(shstrtab)
			shstrtab = append(shstrtab, secs[i].Name...)
			shstrtab = append(shstrtab, 0)
		}
		shstrndx = len(secs) - 1
		secs[shstrndx].Data = shstrtab
		secOff = make([]int, len(secs))
		for i := 1; i < len(secs); i++ {
			off = align4(off)
			secOff[i] = off
			off += len(secs[i].Data)
		}
		shoff = align4(off)
	}

	buf := make([]byte, 0, shoff+len(secs)*elf32.SectionSize+elf32.HeaderSize)
	buf = append(buf, 0x7f, 'E', 'L', 'F', 1, 1, 1)
	buf = append(buf, make([]byte, 16-7)...)
	buf = le.AppendUint16(buf, uint16(elf32.ET_EXEC))
	buf = le.AppendUint16(buf, uint16(im.Machine))
	buf = le.AppendUint32(buf, uint32(elf32.EV_CURRENT))
	buf = le.AppendUint32(buf, im.Entry)
	buf = le.AppendUint32(buf, uint32(phoff))
	buf = le.AppendUint32(buf, uint32(shoff))
	buf = le.AppendUint32(buf, 0) // flags
	buf = le.AppendUint16(buf, elf32.HeaderSize)
	buf = le.AppendUint16(buf, elf32.ProgSize)
	buf = le.AppendUint16(buf, uint16(len(im.Segments)))
	buf = le.AppendUint16(buf, elf32.SectionSize)
	buf = le.AppendUint16(buf, uint16(len(secs)))
	buf = le.AppendUint16(buf, uint16(shstrndx))

	for i, s := range im.Segments {
		memsz := s.Memsz
		if memsz == 0 {
			memsz = uint32(len(s.Data))
		}
		buf = le.AppendUint32(buf, uint32(s.Type))
		buf = le.AppendUint32(buf, uint32(segOff[i]))
		buf = le.AppendUint32(buf, s.Vaddr)
		buf = le.AppendUint32(buf, s.Paddr)
		buf = le.AppendUint32(buf, uint32(len(s.Data)))
		buf = le.AppendUint32(buf, memsz)
		buf = le.AppendUint32(buf, uint32(s.Flags))
		buf = le.AppendUint32(buf, 4)
	}
	for i, s := range im.Segments {
		buf = pad(buf, segOff[i])
		buf = append(buf, s.Data...)
	}
	if len(secs) == 0 {
		return buf
	}
	for i := 1; i < len(secs); i++ {
		buf = pad(buf, secOff[i])
		buf = append(buf, secs[i].Data...)
	}
	buf = pad(buf, shoff)
	for i, s := range secs {
		buf = le.AppendUint32(buf, uint32(nameOff[i]))
		buf = le.AppendUint32(buf, uint32(s.Type))
		buf = le.AppendUint32(buf, uint32(s.Flags))
		buf = le.AppendUint32(buf, s.Addr)
		buf = le.AppendUint32(buf, uint32(secOff[i]))
		buf = le.AppendUint32(buf, uint32(len(s.Data)))
		buf = le.AppendUint32(buf, 0) // link
		buf = le.AppendUint32(buf, 0) // info
		buf = le.AppendUint32(buf, 1) // addralign
		buf = le.AppendUint32(buf, 0) // entsize
	}
	return buf
}

func pad(buf []byte, n int) []byte {
	for len(buf) < n {
		buf = append(buf, 0)
	}
	return buf
}

// Pattern returns n bytes where the i-th byte is byte(i).
func Pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
