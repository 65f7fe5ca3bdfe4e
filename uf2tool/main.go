// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/embeddedgo/elf2uf2/uf2tool/internal/cmd/hex"
	"github.com/embeddedgo/elf2uf2/uf2tool/internal/cmd/info"
	"github.com/embeddedgo/elf2uf2/uf2tool/internal/cmd/readelf"
	"github.com/embeddedgo/elf2uf2/uf2tool/internal/cmd/uf2"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"hex":     {hex.Descr, hex.Main},
	"info":    {info.Descr, info.Main},
	"readelf": {readelf.Descr, readelf.Main},
	"uf2":     {uf2.Descr, uf2.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  uf2tool COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %-*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	cmd := os.Args[1]
	tool, ok := tools[cmd]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(cmd, os.Args[2:])
}
