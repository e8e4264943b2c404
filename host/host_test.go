// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"robpike.io/kelvin/node"
)

func TestConsole(t *testing.T) {
	var out, errs bytes.Buffer
	c := NewConsole(strings.NewReader("first\nsecond"), &out, &errs)
	c.Print(node.Text("a"))
	c.Println(node.NewInt(3))
	c.Log("note")
	c.Warning("careful")
	c.Error("bad")
	if got, want := out.String(), "a3\nnote\n"; got != want {
		t.Errorf("output %q, want %q", got, want)
	}
	if got, want := errs.String(), "warning: careful\nbad\n"; got != want {
		t.Errorf("error output %q, want %q", got, want)
	}
	for _, want := range []string{"first", "second"} {
		line, err := c.ReadLine()
		if err != nil || line != want {
			t.Errorf("ReadLine = %q, %v; want %q", line, err, want)
		}
	}
	if _, err := c.ReadLine(); err == nil {
		t.Error("no error at EOF")
	}
}

func TestOS(t *testing.T) {
	fs := OS{Dir: t.TempDir()}
	if err := fs.WriteFile("a.kv", "x := 1\n"); err != nil {
		t.Fatal(err)
	}
	if err := fs.AppendFile("a.kv", "y := 2\n"); err != nil {
		t.Fatal(err)
	}
	if err := fs.AppendFile("b.kv", ""); err != nil {
		t.Fatal(err)
	}
	text, err := fs.ReadFile("a.kv")
	if err != nil {
		t.Fatal(err)
	}
	if text != "x := 1\ny := 2\n" {
		t.Errorf("read %q", text)
	}
	names, err := fs.ListDirectory(".")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"a.kv", "b.kv"}) {
		t.Errorf("listing %v", names)
	}
	if _, err := fs.ReadFile("missing"); err == nil {
		t.Error("missing file read")
	}
}
