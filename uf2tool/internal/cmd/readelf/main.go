// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package readelf

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/elf2uf2/elf32"
	"github.com/embeddedgo/elf2uf2/report"
	"github.com/embeddedgo/elf2uf2/uf2tool/internal/util"
)

const Descr = "print the ELF file header, segments and sections"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [ELF]\n", cmd)
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	in, _ := util.InOutFiles(fs.Arg(0), ".elf", "", "")
	data, err := os.ReadFile(in)
	util.FatalErr("", err)
	f, err := elf32.Parse(data)
	util.FatalErr("", err)
	sections, err := elf32.ParseSections(data, &f.Header)
	if err != nil {
		util.Warn("readelf: %v", err)
	}
	w := bufio.NewWriter(os.Stdout)
	util.FatalErr("", report.ELF(w, f, sections))
	util.FatalErr("", w.Flush())
}
