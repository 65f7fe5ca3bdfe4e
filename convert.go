// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elf2uf2 converts 32-bit ELF executables to UF2 images.
//
// Every PT_LOAD segment that has bytes in the file is cut into
// ceil(n/uf2.PayloadSize) blocks, where n = min(Memsz, Filesz). The first block
// of a segment is addressed at the segment physical address rounded down to
// uf2.PayloadSize, the next ones follow at consecutive uf2.PayloadSize
// boundaries. The payload byte p of the j-th block of a segment holds the
// segment byte j*uf2.PayloadSize+p, except the bytes of the first block below
// the rounded off part of the physical address, which are zero, as are the
// bytes past the end of the segment. All blocks of the image are numbered in
// the segment order.
package elf2uf2

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/embeddedgo/elf2uf2/elf32"
	"github.com/embeddedgo/elf2uf2/uf2"
)

// Segment is the data to be written at the physical address Addr.
type Segment struct {
	Addr uint32
	Data []byte
}

// FamilyID returns the UF2 family ID for the ELF machine type.
func FamilyID(m elf32.Machine) uint32 {
	switch m {
	case elf32.EM_ARM:
		return uf2.FamilyRP2350ARMS
	case elf32.EM_RISCV:
		return uf2.FamilyRP2350RISCV
	}
	return uf2.FamilyData // generic catch-all
}

// Segments returns the flashable segments described by the PT_LOAD program
// headers, in the program header order. The data of every segment is the
// min(Memsz, Filesz) bytes at p.Off and shares memory with data. Segments
// without bytes in the file are skipped.
func Segments(data []byte, progs []elf32.Prog) ([]Segment, error) {
	var segs []Segment
	for i := range progs {
		s, ok, err := loadSegment(data, i, &progs[i])
		if err != nil {
			return nil, err
		}
		if ok {
			segs = append(segs, s)
		}
	}
	return segs, nil
}

// loadSegment returns the flashable segment described by the i-th program
// header p. It reports false if p doesn't describe such segment.
func loadSegment(data []byte, i int, p *elf32.Prog) (Segment, bool, error) {
	if p.Type != elf32.PT_LOAD || p.Filesz == 0 {
		return Segment{}, false, nil
	}
	if uint64(p.Off)+uint64(p.Filesz) > uint64(len(data)) {
		return Segment{}, false, fmt.Errorf(
			"elf2uf2: segment %d: %d bytes at offset %#x exceed the file size %d: %w",
			i, p.Filesz, p.Off, len(data), io.ErrUnexpectedEOF,
		)
	}
	n := min(p.Memsz, p.Filesz)
	if n == 0 {
		return Segment{}, false, nil
	}
	return Segment{p.Paddr, data[p.Off : p.Off+n : p.Off+n]}, true, nil
}

// NumBlocks returns the number of blocks required to carry s.
func (s Segment) NumBlocks() int {
	return (len(s.Data) + uf2.PayloadSize - 1) / uf2.PayloadSize
}

// appendBlocks appends the unnumbered blocks of s to dst.
func appendBlocks(dst []uf2.Block, s Segment, family uint32) []uf2.Block {
	const pageMask = uf2.PayloadSize - 1
	addr := s.Addr &^ pageMask
	k := int(s.Addr & pageMask)
	for base := 0; base < len(s.Data); base += uf2.PayloadSize {
		b := uf2.NewBlock(addr, family)
		if lo, hi := base+k, min(base+uf2.PayloadSize, len(s.Data)); lo < hi {
			copy(b.Data[k:uf2.PayloadSize], s.Data[lo:hi])
		}
		dst = append(dst, b)
		addr += uf2.PayloadSize
		k = 0
	}
	return dst
}

// number assigns the block numbers and the total to all blocks.
func number(blocks []uf2.Block) {
	total := uint32(len(blocks))
	for i := range blocks {
		blocks[i].Seq = uint32(i)
		blocks[i].Total = total
	}
}

// Blocks returns the numbered UF2 blocks that carry segs.
func Blocks(segs []Segment, family uint32) []uf2.Block {
	n := 0
	for _, s := range segs {
		n += s.NumBlocks()
	}
	blocks := make([]uf2.Block, 0, n)
	for _, s := range segs {
		blocks = appendBlocks(blocks, s, family)
	}
	number(blocks)
	return blocks
}

// Transcode returns the numbered UF2 blocks that carry the loadable segments
// of f. The family ID is derived from f.Machine. data must be the buffer from
// which f was parsed.
func Transcode(data []byte, f *elf32.File) ([]uf2.Block, error) {
	segs, err := Segments(data, f.Progs)
	if err != nil {
		return nil, err
	}
	return Blocks(segs, FamilyID(f.Machine)), nil
}

// Convert converts the ELF image in data to a UF2 image.
func Convert(data []byte) ([]byte, error) {
	r, err := new(Converter).Convert(data)
	if err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

// Converter holds the conversion options. The zero value is ready to use and
// converts like the Convert function.
type Converter struct {
	// Family, if not zero, overrides the family ID derived from the ELF
	// machine type.
	Family uint32

	// Jobs is the maximum number of segments cut into blocks in parallel.
	// Values less than 2 mean sequential conversion. The result doesn't
	// depend on Jobs.
	Jobs int

	// Extra segments are placed after the ELF segments.
	Extra []Segment
}

// Result is a complete UF2 block stream.
type Result struct {
	Family uint32
	Blocks []uf2.Block
}

// Bytes returns the encoded UF2 image.
func (r *Result) Bytes() []byte {
	return uf2.Serialize(r.Blocks)
}

// Convert converts the ELF image in data. It fails without any result if the
// program headers or segments extend outside data.
func (c *Converter) Convert(data []byte) (*Result, error) {
	f, err := elf32.Parse(data)
	if err != nil {
		return nil, err
	}
	r := &Result{Family: c.Family}
	if r.Family == 0 {
		r.Family = FamilyID(f.Machine)
	}
	if c.Jobs >= 2 {
		r.Blocks, err = c.parallelBlocks(data, f.Progs, r.Family)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	segs, err := Segments(data, f.Progs)
	if err != nil {
		return nil, err
	}
	r.Blocks = Blocks(append(segs, c.Extra...), r.Family)
	return r, nil
}

// parallelBlocks works like Segments followed by Blocks but handles up to
// c.Jobs segments at the same time. If more than one segment is invalid it is
// unspecified which error is returned.
func (c *Converter) parallelBlocks(data []byte, progs []elf32.Prog, family uint32) ([]uf2.Block, error) {
	parts := make([][]uf2.Block, len(progs)+len(c.Extra))
	var g errgroup.Group
	g.SetLimit(c.Jobs)
	for i := range progs {
		g.Go(func() error {
			s, ok, err := loadSegment(data, i, &progs[i])
			if ok {
				parts[i] = appendBlocks(make([]uf2.Block, 0, s.NumBlocks()), s, family)
			}
			return err
		})
	}
	for i, s := range c.Extra {
		g.Go(func() error {
			parts[len(progs)+i] = appendBlocks(make([]uf2.Block, 0, s.NumBlocks()), s, family)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	blocks := make([]uf2.Block, 0, n)
	for _, p := range parts {
		blocks = append(blocks, p...)
	}
	number(blocks)
	return blocks, nil
}
