// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Run splits cmdline into words using the shell quoting rules, appends args
// and runs the resulting command with the standard input and outputs of the
// current process.
func Run(cmdline string, args ...string) error {
	words, err := shellquote.Split(cmdline)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return errors.New("empty command")
	}
	words = append(words, args...)
	cmd := exec.Command(words[0], words[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ExitCode returns the exit code of the command that failed with err or -1 if
// err isn't caused by a command exit status.
func ExitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ProcessState.ExitCode()
	}
	return -1
}
