// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for kelvin.
// It is factored out of main so it can be used for tests.
package run // import "robpike.io/kelvin/run"

import (
	"context"
	"fmt"
	"io"
	"time"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/exec"
	"robpike.io/kelvin/node"
	"robpike.io/kelvin/parse"
	"robpike.io/kelvin/scan"
)

// cpuTime returns the user and system time used by the process.
// It is replaced on systems that can report it.
var cpuTime = func() (user, sys time.Duration) { return 0, 0 }

// Run compiles and executes src statement by statement until EOF or
// error, printing the value of each statement to the configured output.
// The return value says whether it completed without error.
// Error details are reported to the configured error output stream.
func Run(ctx context.Context, c *exec.Context, name, src string, interactive bool) (success bool) {
	conf := c.Config()
	writer := conf.Output()
	p := parse.NewParser(c.Grammar(), name, src)
	if conf.Debug("tokens") {
		p.Trace(writer)
	}
	for {
		s, err := p.Next()
		if err == io.EOF {
			return true
		}
		if err != nil {
			report(conf, "", err)
			return false
		}
		if conf.Debug("parse") {
			fmt.Fprintln(writer, parse.Tree(s.Node))
		}
		var values []node.Node
		if interactive {
			start := time.Now()
			user, sys := cpuTime()
			values, err = c.Execute(ctx, []parse.Statement{s}, exec.Options{})
			user1, sys1 := cpuTime()
			conf.SetCPUTime(time.Since(start), user1-user, sys1-sys)
		} else {
			values, err = c.Execute(ctx, []parse.Statement{s}, exec.Options{})
		}
		if err != nil {
			report(conf, location(name, s.Line), err)
			return false
		}
		printValue(writer, s.Node, values[0])
		if interactive && conf.Debug("cpu") {
			fmt.Fprintf(writer, "(%s)\n", conf.PrintCPUTime())
		}
	}
}

// Eval runs src as Run does, without printing, and returns the value of
// its last statement.
func Eval(ctx context.Context, c *exec.Context, name, src string) (node.Node, error) {
	p := parse.NewParser(c.Grammar(), name, src)
	var last node.Node = node.Void{}
	for {
		s, err := p.Next()
		if err == io.EOF {
			return last, nil
		}
		if err != nil {
			return nil, err
		}
		values, err := c.Execute(ctx, []parse.Statement{s}, exec.Options{})
		if err != nil {
			return nil, err
		}
		last = values[0]
	}
}

func location(name string, line int) string {
	if name == "" {
		return fmt.Sprintf("line %d: ", line)
	}
	return fmt.Sprintf("%s:%d: ", name, line)
}

// report prints err, with the nodes it passed through if the "trace"
// debug flag is set.
func report(conf *config.Config, loc string, err error) {
	w := conf.ErrOutput()
	if conf.Debug("trace") {
		fmt.Fprintf(w, "%s%s", loc, exec.Trace(err))
		return
	}
	fmt.Fprintf(w, "%s%s\n", loc, exec.Message(err))
}

// printValue prints the value of a statement, followed by a newline.
// Assignments and statements without a value print nothing.
func printValue(w io.Writer, stmt, v node.Node) {
	if node.IsCall(stmt, ":=") {
		return
	}
	if _, ok := v.(node.Void); ok {
		return
	}
	fmt.Fprintln(w, v)
}

// Incomplete reports whether src ends inside brackets, so that an
// interactive reader should ask for another line.
func Incomplete(c *exec.Context, src string) bool {
	s := scan.New(c.Grammar(), "", src)
	depth := 0
	for {
		switch tok := s.Next(); tok.Type {
		case scan.EOF, scan.Error:
			return depth > 0
		case scan.LeftParen, scan.LeftBrack, scan.LeftBrace:
			depth++
		case scan.RightParen, scan.RightBrack, scan.RightBrace:
			depth--
		}
	}
}
