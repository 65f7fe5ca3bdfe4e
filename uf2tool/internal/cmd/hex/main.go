// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marcinbor85/gohex"

	"github.com/embeddedgo/elf2uf2"
	"github.com/embeddedgo/elf2uf2/elf32"
	"github.com/embeddedgo/elf2uf2/uf2tool/internal/util"
)

const Descr = "convert an ELF file to the Intel HEX format"

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
	inc := fs.String(
		"inc", "",
		"binary files to be included BIN1:ADDR1[,BIN2:ADDR2[,...]]",
	)
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	in, out := util.InOutFiles(fs.Arg(0), ".elf", fs.Arg(1), ".hex")
	data, err := os.ReadFile(in)
	util.FatalErr("", err)
	var extra []elf2uf2.Segment
	if *inc != "" {
		extra, err = util.ReadBins(*inc)
		util.FatalErr("readbins", err)
	}
	of, err := os.Create(out)
	util.FatalErr("", err)
	defer of.Close()
	util.FatalErr("hex", Write(of, data, extra))
}

// Write writes the flashable segments of the ELF image in data followed by
// extra to w in the Intel HEX format. The start address record holds the ELF
// entry point.
func Write(w io.Writer, data []byte, extra []elf2uf2.Segment) error {
	f, err := elf32.Parse(data)
	if err != nil {
		return err
	}
	segs, err := elf2uf2.Segments(data, f.Progs)
	if err != nil {
		return err
	}
	mem := gohex.NewMemory()
	mem.SetStartAddress(f.Entry)
	for _, s := range append(segs, extra...) {
		if err := mem.AddBinary(s.Addr, s.Data); err != nil {
			return fmt.Errorf("segment at %#x: %w", s.Addr, err)
		}
	}
	return mem.DumpIntelHex(w, 16)
}
