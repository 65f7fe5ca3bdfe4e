// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/embeddedgo/elf2uf2"
	"github.com/embeddedgo/elf2uf2/elf32"
	"github.com/embeddedgo/elf2uf2/uf2"
	"github.com/embeddedgo/elf2uf2/uf2tool/internal/util"
)

const Descr = "convert an ELF file to the UF2 format"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [ELF [%s]]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	family := fs.String(
		"family", "",
		"UF2 family `ID` (32-bit number) or a known family name:\n"+
			strings.Join(slices.Sorted(maps.Keys(uf2.Families)), "\n"),
	)
	inc := fs.String(
		"inc", "",
		"binary files to be included BIN1:ADDR1[,BIN2:ADDR2[,...]]",
	)
	jobs := fs.Int(
		"jobs", runtime.GOMAXPROCS(0),
		"maximum `number` of segments converted in parallel",
	)
	verbose := fs.Bool("v", false, "print the converted segments")
	run := fs.String(
		"run", "",
		"run `CMD` with the path to the UF2 file appended to its arguments",
	)
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	c := &elf2uf2.Converter{Jobs: *jobs}
	if *family != "" {
		id, err := uf2.ParseFamily(*family)
		util.FatalErr("", err)
		c.Family = id
	}
	if *inc != "" {
		segs, err := util.ReadBins(*inc)
		util.FatalErr("readbins", err)
		c.Extra = segs
	}
	in, out := util.InOutFiles(fs.Arg(0), ".elf", fs.Arg(1), ".uf2")
	data, err := os.ReadFile(in)
	util.FatalErr("", err)
	r, err := c.Convert(data)
	util.FatalErr("uf2", err)
	if *verbose {
		listSegments(data, c.Extra)
		util.Warn(
			"%s: %d blocks, family %s", out, len(r.Blocks),
			uf2.FamilyName(r.Family),
		)
	}
	util.FatalErr("", os.WriteFile(out, r.Bytes(), 0o644))
	if *run != "" {
		err := util.Run(*run, out)
		if code := util.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		util.FatalErr("run", err)
	}
}

func listSegments(data []byte, extra []elf2uf2.Segment) {
	f, err := elf32.Parse(data)
	util.FatalErr("", err)
	segs, err := elf2uf2.Segments(data, f.Progs)
	util.FatalErr("", err)
	for _, s := range append(segs, extra...) {
		util.Warn(
			"%#08x %8d bytes %4d blocks", s.Addr, len(s.Data), s.NumBlocks(),
		)
	}
}
