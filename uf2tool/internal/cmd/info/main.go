// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/elf2uf2/report"
	"github.com/embeddedgo/elf2uf2/uf2"
	"github.com/embeddedgo/elf2uf2/uf2tool/internal/util"
)

const Descr = "print the blocks of a UF2 file"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [UF2]\n", cmd)
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	in, _ := util.InOutFiles(fs.Arg(0), ".uf2", "", "")
	data, err := os.ReadFile(in)
	util.FatalErr("", err)
	blocks, err := uf2.Decode(data)
	util.FatalErr("", err)
	w := bufio.NewWriter(os.Stdout)
	util.FatalErr("", report.Blocks(w, blocks))
	util.FatalErr("", w.Flush())
}
