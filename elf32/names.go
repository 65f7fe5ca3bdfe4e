// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf32

// Type is the object file type (e_type).
type Type uint16

const (
	ET_NONE   Type = 0
	ET_REL    Type = 1
	ET_EXEC   Type = 2
	ET_DYN    Type = 3
	ET_CORE   Type = 4
	ET_LOPROC Type = 0xff00
	ET_HIPROC Type = 0xffff
)

var typeNames = map[Type]string{
	ET_NONE:   "ET_NONE",
	ET_REL:    "ET_REL",
	ET_EXEC:   "ET_EXEC",
	ET_DYN:    "ET_DYN",
	ET_CORE:   "ET_CORE",
	ET_LOPROC: "ET_LOPROC",
	ET_HIPROC: "ET_HIPROC",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Machine is the target architecture (e_machine).
type Machine uint16

const (
	EM_NONE        Machine = 0
	EM_M32         Machine = 1
	EM_SPARC       Machine = 2
	EM_386         Machine = 3
	EM_68K         Machine = 4
	EM_88K         Machine = 5
	EM_860         Machine = 7
	EM_MIPS        Machine = 8
	EM_MIPS_RS4_BE Machine = 10
	EM_ARM         Machine = 40
	EM_RISCV       Machine = 243
)

var machineNames = map[Machine]string{
	EM_NONE:        "EM_NONE",
	EM_M32:         "EM_M32",
	EM_SPARC:       "EM_SPARC",
	EM_386:         "EM_386",
	EM_68K:         "EM_68K",
	EM_88K:         "EM_88K",
	EM_860:         "EM_860",
	EM_MIPS:        "EM_MIPS",
	EM_MIPS_RS4_BE: "EM_MIPS_RS4_BE",
	EM_ARM:         "EM_ARM",
	EM_RISCV:       "EM_RISCV",
}

func (m Machine) String() string {
	if s, ok := machineNames[m]; ok {
		return s
	}
	if 11 <= m && m <= 16 {
		return "RESERVED"
	}
	return "unknown"
}

// Version is the object file version (e_version).
type Version uint32

const (
	EV_NONE    Version = 0
	EV_CURRENT Version = 1
)

func (v Version) String() string {
	switch v {
	case EV_NONE:
		return "EV_NONE"
	case EV_CURRENT:
		return "EV_CURRENT"
	}
	return "unknown"
}

// ProgType is the segment type (p_type).
type ProgType uint32

const (
	PT_NULL    ProgType = 0
	PT_LOAD    ProgType = 1
	PT_DYNAMIC ProgType = 2
	PT_INTERP  ProgType = 3
	PT_NOTE    ProgType = 4
	PT_SHLIB   ProgType = 5
	PT_PHDR    ProgType = 6
	PT_LOPROC  ProgType = 0x70000000
	PT_HIPROC  ProgType = 0x7fffffff
)

var progTypeNames = [...]string{
	PT_NULL:    "PT_NULL",
	PT_LOAD:    "PT_LOAD",
	PT_DYNAMIC: "PT_DYNAMIC",
	PT_INTERP:  "PT_INTERP",
	PT_NOTE:    "PT_NOTE",
	PT_SHLIB:   "PT_SHLIB",
	PT_PHDR:    "PT_PHDR",
}

func (t ProgType) String() string {
	switch {
	case t < ProgType(len(progTypeNames)):
		return progTypeNames[t]
	case PT_LOPROC <= t && t <= PT_HIPROC:
		return "PT_PROC"
	}
	return "unknown"
}

// ProgFlag is the segment permission bit set (p_flags).
type ProgFlag uint32

const (
	PF_X ProgFlag = 0x1
	PF_W ProgFlag = 0x2
	PF_R ProgFlag = 0x4
)

// SectionType is the section type (sh_type).
type SectionType uint32

const (
	SHT_NULL     SectionType = 0
	SHT_PROGBITS SectionType = 1
	SHT_SYMTAB   SectionType = 2
	SHT_STRTAB   SectionType = 3
	SHT_RELA     SectionType = 4
	SHT_HASH     SectionType = 5
	SHT_DYNAMIC  SectionType = 6
	SHT_NOTE     SectionType = 7
	SHT_NOBITS   SectionType = 8
	SHT_REL      SectionType = 9
	SHT_SHLIB    SectionType = 10
	SHT_DYNSYM   SectionType = 11
	SHT_LOPROC   SectionType = 0x70000000
	SHT_HIPROC   SectionType = 0x7fffffff
	SHT_LOUSER   SectionType = 0x80000000
	SHT_HIUSER   SectionType = 0xffffffff
)

var sectionTypeNames = [...]string{
	SHT_NULL:     "SHT_NULL",
	SHT_PROGBITS: "SHT_PROGBITS",
	SHT_SYMTAB:   "SHT_SYMTAB",
	SHT_STRTAB:   "SHT_STRTAB",
	SHT_RELA:     "SHT_RELA",
	SHT_HASH:     "SHT_HASH",
	SHT_DYNAMIC:  "SHT_DYNAMIC",
	SHT_NOTE:     "SHT_NOTE",
	SHT_NOBITS:   "SHT_NOBITS",
	SHT_REL:      "SHT_REL",
	SHT_SHLIB:    "SHT_SHLIB",
	SHT_DYNSYM:   "SHT_DYNSYM",
}

func (t SectionType) String() string {
	switch {
	case t < SectionType(len(sectionTypeNames)):
		return sectionTypeNames[t]
	case SHT_LOPROC <= t && t <= SHT_HIPROC:
		return "SHT_PROC"
	case SHT_LOUSER <= t:
		return "SHT_USER"
	}
	return "unknown"
}

// SectionFlag is the section attribute bit set (sh_flags).
type SectionFlag uint32

const (
	SHF_WRITE     SectionFlag = 0x1
	SHF_ALLOC     SectionFlag = 0x2
	SHF_EXECINSTR SectionFlag = 0x4
)
