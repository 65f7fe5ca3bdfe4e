// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uf2 implements the USB Flashing Format block layout.
package uf2

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	MagicStart0 = 0x0a324655
	MagicStart1 = 0x9e5d5157
	MagicEnd    = 0x0ab16f30
)

// Flags
const (
	NotMainFlash         = 0x00000001
	FileContainer        = 0x00001000
	FamilyIDPresent      = 0x00002000
	MD5ChecksumPresent   = 0x00004000
	ExtensionTagsPresent = 0x00008000
)

const (
	BlockSize   = 512 // size of the encoded block
	DataSize    = 476 // size of the Data field
	PayloadSize = 256 // number of Data bytes carried by a block
)

// Block is a single UF2 block. Its memory layout is the wire layout so it can
// be encoded directly with the encoding/binary package.
type Block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32 // target address
	Len    uint32 // payload size
	Seq    uint32 // block number
	Total  uint32 // number of blocks in the file
	Family uint32
	Data   [DataSize]byte
	Magic2 uint32
}

// NewBlock returns a block that carries PayloadSize bytes to be written at
// addr on a device of the given family.
func NewBlock(addr, family uint32) Block {
	return Block{
		Magic0: MagicStart0,
		Magic1: MagicStart1,
		Flags:  FamilyIDPresent,
		Addr:   addr,
		Len:    PayloadSize,
		Family: family,
		Magic2: MagicEnd,
	}
}

// Payload returns the part of b.Data that is meant to be written.
func (b *Block) Payload() []byte {
	return b.Data[:min(b.Len, DataSize)]
}

// Append appends the encoded blocks to dst and returns the extended buffer.
func Append(dst []byte, blocks []Block) []byte {
	dst, err := binary.Append(dst, binary.LittleEndian, blocks)
	if err != nil {
		panic(err) // Block is a fixed-size type
	}
	return dst
}

// Serialize returns the UF2 image made of the given blocks. The image length
// is always BlockSize*len(blocks).
func Serialize(blocks []Block) []byte {
	return Append(make([]byte, 0, len(blocks)*BlockSize), blocks)
}

// Write writes the encoded blocks to w.
func Write(w io.Writer, blocks []Block) error {
	return binary.Write(w, binary.LittleEndian, blocks)
}

// Decode decodes the UF2 image stored in data. It fails if the length of data
// isn't a multiple of BlockSize or any block has a bad magic number.
func Decode(data []byte) ([]Block, error) {
	if len(data)%BlockSize != 0 {
		return nil, fmt.Errorf(
			"uf2: image size %d isn't a multiple of %d", len(data), BlockSize,
		)
	}
	blocks := make([]Block, len(data)/BlockSize)
	for i := range blocks {
		b := &blocks[i]
		_, err := binary.Decode(data[i*BlockSize:], binary.LittleEndian, b)
		if err != nil {
			return nil, fmt.Errorf("uf2: block %d: %w", i, err)
		}
		if b.Magic0 != MagicStart0 || b.Magic1 != MagicStart1 || b.Magic2 != MagicEnd {
			return nil, fmt.Errorf("uf2: block %d: bad magic number", i)
		}
	}
	return blocks, nil
}
