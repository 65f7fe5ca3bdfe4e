// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package le provides bounds checked access to little-endian encoded data.
package le

import (
	"encoding/binary"
	"fmt"
	"io"
)

func rangeErr(off, n, size int) error {
	return fmt.Errorf(
		"%d bytes at offset %#x (size %d): %w",
		n, off, size, io.ErrUnexpectedEOF,
	)
}

func inRange(off, n, size int) bool {
	return off >= 0 && n >= 0 && off <= size && n <= size-off
}

// A Cursor reads consecutive little-endian fields from a byte slice. The first
// out of range access is recorded and all subsequent reads return zero values.
type Cursor struct {
	buf []byte
	off int
	err error
}

// NewCursor returns a cursor that starts reading buf at the offset off.
func NewCursor(buf []byte, off int) *Cursor {
	return &Cursor{buf: buf, off: off}
}

// Offset returns the offset of the next read.
func (c *Cursor) Offset() int { return c.off }

// Err returns the first error encountered by c.
func (c *Cursor) Err() error { return c.err }

// Seek moves the cursor to the absolute offset off. The offset is checked by
// the next read.
func (c *Cursor) Seek(off int) {
	if c.err == nil {
		c.off = off
	}
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) {
	c.Bytes(n)
}

// Bytes returns the next n bytes. The returned slice shares memory with the
// underlying buffer.
func (c *Cursor) Bytes(n int) []byte {
	if c.err != nil {
		return nil
	}
	if !inRange(c.off, n, len(c.buf)) {
		c.err = rangeErr(c.off, n, len(c.buf))
		return nil
	}
	b := c.buf[c.off : c.off+n : c.off+n]
	c.off += n
	return b
}

func (c *Cursor) Uint16() uint16 {
	if b := c.Bytes(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (c *Cursor) Uint32() uint32 {
	if b := c.Bytes(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// Uint16 decodes the 16-bit value stored at b[off:].
func Uint16(b []byte, off int) (uint16, error) {
	if !inRange(off, 2, len(b)) {
		return 0, rangeErr(off, 2, len(b))
	}
	return binary.LittleEndian.Uint16(b[off:]), nil
}

// Uint32 decodes the 32-bit value stored at b[off:].
func Uint32(b []byte, off int) (uint32, error) {
	if !inRange(off, 4, len(b)) {
		return 0, rangeErr(off, 4, len(b))
	}
	return binary.LittleEndian.Uint32(b[off:]), nil
}

// PutUint16 encodes v into b[off:].
func PutUint16(b []byte, off int, v uint16) error {
	if !inRange(off, 2, len(b)) {
		return rangeErr(off, 2, len(b))
	}
	binary.LittleEndian.PutUint16(b[off:], v)
	return nil
}

// PutUint32 encodes v into b[off:].
func PutUint32(b []byte, off int, v uint32) error {
	if !inRange(off, 4, len(b)) {
		return rangeErr(off, 4, len(b))
	}
	binary.LittleEndian.PutUint32(b[off:], v)
	return nil
}
