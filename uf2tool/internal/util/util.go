// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/mod/modfile"

	"github.com/embeddedgo/elf2uf2"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// DirName returns the last element of the path to the current working
// directory.
func DirName() string {
	dir, err := os.Getwd()
	FatalErr("", err)
	dir = filepath.Base(dir)
	if dir == "/" || dir == "." {
		dir = ""
	}
	return dir
}

// ModulePath returns the module path declared in the gomod file.
func ModulePath(gomod string) (string, error) {
	data, err := os.ReadFile(gomod)
	if err != nil {
		return "", err
	}
	mp := modfile.ModulePath(data)
	if mp == "" {
		return "", fmt.Errorf("there is no module directive in %s", gomod)
	}
	return mp, nil
}

// Module returns the path of the main module.
func Module() string {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	FatalErr("", err)
	gomod := string(bytes.TrimRightFunc(out, unicode.IsSpace))
	if gomod == "" || gomod == os.DevNull {
		Fatal("go.mod file not found in current directory or any parent directory")
	}
	mp, err := ModulePath(filepath.Clean(gomod))
	FatalErr("", err)
	return mp
}

// InOutFiles infers the name of the input and output files from the name of
// the main module or the current working directory if the inName is an empty
// string.
func InOutFiles(inName, inSuffix, outName, outSuffix string) (string, string) {
	if inName == "" {
		fs, err := os.Stat("go.mod")
		if err != nil || !fs.Mode().IsRegular() {
			inName = DirName()
		} else {
			inName = path.Base(Module())
		}
		inName += inSuffix
	}
	if outName == "" {
		outName = strings.TrimSuffix(inName, inSuffix) + outSuffix
	}
	return inName, outName
}

// ReadBins reads binary files according to the BIN1:ADDR1[,BIN2:ADDR2[,...]]
// description and returns them as segments in the description order.
func ReadBins(descr string) ([]elf2uf2.Segment, error) {
	bins := strings.Split(descr, ",")
	segs := make([]elf2uf2.Segment, len(bins))
	for k, ba := range bins {
		i := strings.LastIndexByte(ba, ':')
		if i <= 0 {
			return nil, fmt.Errorf("bad '%s' in the -inc option", ba)
		}
		bin, addr := ba[:i], ba[i+1:]
		a, err := strconv.ParseUint(addr, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("bad address in '%s': %s", ba, err)
		}
		data, err := os.ReadFile(bin)
		if err != nil {
			return nil, err
		}
		segs[k] = elf2uf2.Segment{Addr: uint32(a), Data: data}
	}
	return segs, nil
}
