// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"fmt"
	"strconv"
)

// UF2 families
const (
	FamilyRP2040      = 0xe48bff56
	FamilyAbsolute    = 0xe48bff57
	FamilyData        = 0xe48bff58
	FamilyRP2350ARMS  = 0xe48bff59
	FamilyRP2350RISCV = 0xe48bff5a
	FamilyRP2350ARMNS = 0xe48bff5b
)

// Families maps the known family names to their IDs.
var Families = map[string]uint32{
	"rp2040":        FamilyRP2040,
	"absolute":      FamilyAbsolute,
	"data":          FamilyData,
	"rp2350_arm_s":  FamilyRP2350ARMS,
	"rp2350_riscv":  FamilyRP2350RISCV,
	"rp2350_arm_ns": FamilyRP2350ARMNS,
}

// ParseFamily returns the family ID for a known family name or a 32-bit
// number written using the Go integer literal syntax.
func ParseFamily(s string) (uint32, error) {
	if id, ok := Families[s]; ok {
		return id, nil
	}
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("uf2: bad family ID: %q", s)
	}
	return uint32(u), nil
}

// FamilyName returns the name of the family or the ID in hex if unknown.
func FamilyName(id uint32) string {
	for name, fid := range Families {
		if fid == id {
			return name
		}
	}
	return fmt.Sprintf("%#x", id)
}
