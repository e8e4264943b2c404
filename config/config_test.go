// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	var c Config
	if c.Precision() != DefaultPrecision {
		t.Errorf("precision %d", c.Precision())
	}
	if c.FactorBudget() != time.Second {
		t.Errorf("factor budget %s", c.FactorBudget())
	}
	if c.MaxDepth() != DefaultMaxDepth {
		t.Errorf("max depth %d", c.MaxDepth())
	}
	if c.Output() != os.Stdout || c.ErrOutput() != os.Stderr {
		t.Error("default writers")
	}
	if c.Debug("trace") {
		t.Error("debug set by default")
	}
}

func TestParse(t *testing.T) {
	var c Config
	c.SetPrompt("old> ")
	err := c.Parse([]byte(`
precision = 50
factor_budget = "250ms"
max_depth = 500
debug = ["trace", "parse"]
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Prompt() != "old> " {
		t.Errorf("prompt changed to %q", c.Prompt())
	}
	if c.Precision() != 50 {
		t.Errorf("precision %d", c.Precision())
	}
	if c.FactorBudget() != 250*time.Millisecond {
		t.Errorf("factor budget %s", c.FactorBudget())
	}
	if c.MaxDepth() != 500 {
		t.Errorf("max depth %d", c.MaxDepth())
	}
	if got, want := c.Debugging(), []string{"parse", "trace"}; !reflect.DeepEqual(got, want) {
		t.Errorf("debug %v, want %v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		`debug = ["bogus"]`,
		`factor_budget = "soon"`,
		`precision = "many"`,
		`prompt = `,
	} {
		var c Config
		if err := c.Parse([]byte(text)); err == nil {
			t.Errorf("%q: no error", text)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kelvin.toml")
	if err := os.WriteFile(path, []byte("prompt = \"k> \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var c Config
	if err := c.Load(path); err != nil {
		t.Fatal(err)
	}
	if c.Prompt() != "k> " {
		t.Errorf("prompt %q", c.Prompt())
	}
	if err := c.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestPrintCPUTime(t *testing.T) {
	tests := []struct {
		real, user, sys time.Duration
		want            string
	}{
		{500 * time.Nanosecond, 0, 0, "500ns"},
		{1500 * time.Microsecond, 0, 0, "1.500ms"},
		{2 * time.Second, time.Second, 250 * time.Millisecond, "2.000s; 1.000s user, 250.000ms sys"},
	}
	for _, test := range tests {
		var c Config
		c.SetCPUTime(test.real, test.user, test.sys)
		if got := c.PrintCPUTime(); got != test.want {
			t.Errorf("PrintCPUTime(%s, %s, %s) = %q, want %q", test.real, test.user, test.sys, got, test.want)
		}
	}
}
