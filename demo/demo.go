// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo steps through a demonstration script. The standard
// script is demo.kv in this directory, embedded in this source file.
package demo

import (
	"bufio"
	"io"
	"strings"

	_ "embed"
)

//go:embed demo.kv
var demoText string

// Text returns the input text for the standard demo.
func Text() string {
	return demoText
}

// Script is a demonstration, delivered a line at a time.
type Script struct {
	lines []string
}

// New returns a Script for text.
func New(text string) *Script {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return &Script{}
	}
	return &Script{lines: strings.Split(text, "\n")}
}

// Standard returns the standard demo.
func Standard() *Script {
	return New(demoText)
}

// Next returns the next line of the script. The boolean is false when
// the script is done.
func (s *Script) Next() (string, bool) {
	if len(s.lines) == 0 {
		return "", false
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, true
}

// Run presents the script. The first line, which holds the instructions,
// is shown without being evaluated. After that each empty line of user
// input shows the next line of the script and passes it to eval; a
// non-empty line is passed to eval instead and the script does not
// advance. The line "quit" ends the demo. The evaluator is assumed to
// write to the same output.
// A nil user runs the whole script.
func Run(s *Script, user io.Reader, eval func(line string), out io.Writer) error {
	if line, ok := s.Next(); ok {
		io.WriteString(out, line+"\n")
	}
	var in *bufio.Scanner
	if user != nil {
		in = bufio.NewScanner(user)
	}
	for {
		typed := ""
		if in != nil {
			if !in.Scan() {
				return in.Err()
			}
			typed = strings.TrimSpace(in.Text())
		}
		switch typed {
		case "quit":
			return nil
		case "":
			line, ok := s.Next()
			if !ok {
				return nil
			}
			io.WriteString(out, line+"\n")
			eval(line)
		default:
			eval(typed)
		}
	}
}
