// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The mobile package provides a very narrow interface to kelvin,
// suitable for wrapping in a UI for mobile applications.
// It is designed to work well with the gomobile tool by exposing
// only primitive types. It's also handy for testing.
//
// The package holds a single context, so only one execution stream
// (Eval or Demo) can be active at a time.
package mobile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/demo"
	"robpike.io/kelvin/exec"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/run"
)

var (
	conf   config.Config
	kelvin *exec.Context
	stdout = new(bytes.Buffer)
	stderr = new(bytes.Buffer)
)

func init() {
	Reset()
}

// Eval evaluates the input string and returns its output.
// Execution stops at the first error, which is returned.
func Eval(expr string) (result string, err error) {
	stdout.Reset()
	stderr.Reset()
	if !run.Run(context.Background(), kelvin, " ", expr, false) {
		err = fmt.Errorf("%s", strings.TrimSuffix(stderr.String(), "\n"))
	}
	return stdout.String(), err
}

// Demo represents a running line-by-line demonstration.
type Demo struct {
	script *demo.Script
}

// NewDemo returns a new Demo that will step through the input text line
// by line. An empty input selects the standard demo.
func NewDemo(input string) *Demo {
	Reset()
	if input == "" {
		return &Demo{demo.Standard()}
	}
	return &Demo{demo.New(input)}
}

// Next returns the result (and error) produced by the next line of
// input. It returns ("", io.EOF) at EOF.
func (d *Demo) Next() (result string, err error) {
	line, ok := d.script.Next()
	if !ok {
		return "", io.EOF
	}
	return Eval(line)
}

// Reset clears all state to the initial value.
func Reset() {
	conf = config.Config{}
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	kelvin = run.NewContext(&conf, host.NewConsole(strings.NewReader(""), stdout, stderr), host.OS{})
}

// Help returns a summary of the operations, one rule per line.
func Help() string {
	var b strings.Builder
	reg := kelvin.Store().Registry()
	for _, name := range reg.Names() {
		rules := reg.Rules(name)
		for i := range rules {
			b.WriteString(rules[i].Signature(name))
			if rules[i].Doc != "" {
				fmt.Fprintf(&b, ": %s", rules[i].Doc)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
