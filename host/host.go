// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host defines the collaborators through which the engine reaches
// the outside world, and default implementations of them.
package host // import "robpike.io/kelvin/host"

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"robpike.io/kelvin/node"
)

// IO carries all user-visible output of the engine.
type IO interface {
	Print(n node.Node)
	Println(n node.Node)
	Log(msg string)
	Error(msg string)
	Warning(msg string)
	ReadLine() (string, error)
}

// FileSystem is used by the file built-ins.
type FileSystem interface {
	ReadFile(path string) (string, error)
	WriteFile(path, text string) error
	AppendFile(path, text string) error
	ListDirectory(path string) ([]string, error)
}

// Console is an IO on a pair of writers and a reader.
type Console struct {
	Out io.Writer
	Err io.Writer
	in  *bufio.Reader
}

// NewConsole returns a Console. Any nil argument is replaced by the
// corresponding standard file.
func NewConsole(in io.Reader, out, err io.Writer) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	return &Console{Out: out, Err: err, in: bufio.NewReader(in)}
}

func (c *Console) Print(n node.Node) {
	fmt.Fprint(c.Out, text(n))
}

func (c *Console) Println(n node.Node) {
	fmt.Fprintln(c.Out, text(n))
}

func (c *Console) Log(msg string) {
	fmt.Fprintln(c.Out, msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.Err, msg)
}

func (c *Console) Warning(msg string) {
	fmt.Fprintln(c.Err, "warning: "+msg)
}

// ReadLine returns the next line of input without its newline.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// text is the printed form of n: strings print without quotes.
func text(n node.Node) string {
	if t, ok := n.(node.Text); ok {
		return string(t)
	}
	return n.String()
}

// OS is a FileSystem on the host operating system. Relative paths are
// interpreted with respect to Dir, or the working directory if Dir is empty.
type OS struct {
	Dir string
}

func (o OS) path(p string) string {
	if o.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.Dir, p)
}

func (o OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(o.path(path))
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(data), nil
}

func (o OS) WriteFile(path, text string) error {
	return errors.WithStack(os.WriteFile(o.path(path), []byte(text), 0o644))
}

func (o OS) AppendFile(path, text string) error {
	f, err := os.OpenFile(o.path(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = f.WriteString(text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return errors.WithStack(err)
}

// ListDirectory returns the sorted names of the entries in the directory.
func (o OS) ListDirectory(path string) ([]string, error) {
	entries, err := os.ReadDir(o.path(path))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names, nil
}
