// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings that control compilation, rewriting
// and printing.
package config // import "robpike.io/kelvin/config"

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	DefaultPrecision    = 34
	DefaultFactorBudget = time.Second
	DefaultMaxDepth     = 10000
)

// DebugFlags names the recognized debug settings.
var DebugFlags = []string{
	"cpu",    // Print the time taken by each interactive statement.
	"panic",  // Do not recover from panics in the engine.
	"parse",  // Print the tree of each statement.
	"rules",  // Print each rewrite as it fires.
	"tokens", // Print each token as it is scanned.
	"trace",  // Print the wrapped context of errors.
}

type Config struct {
	prompt       string
	output       io.Writer
	errOutput    io.Writer
	precision    uint32
	factorBudget time.Duration
	maxDepth     int
	debug        map[string]bool
	realTime     time.Duration
	userTime     time.Duration
	sysTime      time.Duration
}

func (c *Config) Prompt() string {
	return c.prompt
}

func (c *Config) SetPrompt(prompt string) {
	c.prompt = prompt
}

func (c *Config) Output() io.Writer {
	if c.output == nil {
		return os.Stdout
	}
	return c.output
}

func (c *Config) SetOutput(output io.Writer) {
	c.output = output
}

func (c *Config) ErrOutput() io.Writer {
	if c.errOutput == nil {
		return os.Stderr
	}
	return c.errOutput
}

func (c *Config) SetErrOutput(output io.Writer) {
	c.errOutput = output
}

// Precision returns the number of significant digits of floating-point values.
func (c *Config) Precision() uint32 {
	if c.precision == 0 {
		return DefaultPrecision
	}
	return c.precision
}

func (c *Config) SetPrecision(digits uint32) {
	c.precision = digits
}

// FactorBudget is the wall-clock limit of a single factorization.
func (c *Config) FactorBudget() time.Duration {
	if c.factorBudget <= 0 {
		return DefaultFactorBudget
	}
	return c.factorBudget
}

func (c *Config) SetFactorBudget(d time.Duration) {
	c.factorBudget = d
}

// MaxDepth bounds the nesting of simplification.
func (c *Config) MaxDepth() int {
	if c.maxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.maxDepth
}

func (c *Config) SetMaxDepth(depth int) {
	c.maxDepth = depth
}

func (c *Config) Debug(s string) bool {
	return c.debug[s]
}

func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}

// Debugging returns the debug flags that are set, in order.
func (c *Config) Debugging() []string {
	var flags []string
	for f, on := range c.debug {
		if on {
			flags = append(flags, f)
		}
	}
	sort.Strings(flags)
	return flags
}

// CPUTime returns the elapsed, user and system time of the last
// interactive statement. User and system time are zero where the
// system does not report them.
func (c *Config) CPUTime() (real, user, sys time.Duration) {
	return c.realTime, c.userTime, c.sysTime
}

func (c *Config) SetCPUTime(real, user, sys time.Duration) {
	c.realTime, c.userTime, c.sysTime = real, user, sys
}

// PrintCPUTime formats the times of the last interactive statement.
func (c *Config) PrintCPUTime() string {
	if c.userTime == 0 && c.sysTime == 0 {
		return printDuration(c.realTime)
	}
	return fmt.Sprintf("%s; %s user, %s sys", printDuration(c.realTime), printDuration(c.userTime), printDuration(c.sysTime))
}

func printDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return d.String()
	case d < time.Millisecond:
		return fmt.Sprintf("%.3fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// file is the form of a configuration file.
//
//	prompt = "> "
//	precision = 50
//	factor_budget = "250ms"
//	max_depth = 5000
//	debug = ["trace"]
type file struct {
	Prompt       *string  `toml:"prompt"`
	Precision    *uint32  `toml:"precision"`
	FactorBudget string   `toml:"factor_budget"`
	MaxDepth     *int     `toml:"max_depth"`
	Debug        []string `toml:"debug"`
}

// Load reads the TOML configuration file at path into c.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	return errors.Wrap(c.Parse(data), path)
}

// Parse sets c from TOML text. Settings absent from the text are left alone.
func (c *Config) Parse(data []byte) error {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Prompt != nil {
		c.SetPrompt(*f.Prompt)
	}
	if f.Precision != nil {
		c.SetPrecision(*f.Precision)
	}
	if f.FactorBudget != "" {
		d, err := time.ParseDuration(f.FactorBudget)
		if err != nil {
			return errors.Wrap(err, "factor_budget")
		}
		c.SetFactorBudget(d)
	}
	if f.MaxDepth != nil {
		c.SetMaxDepth(*f.MaxDepth)
	}
	for _, flag := range f.Debug {
		if !knownFlag(flag) {
			return errors.Errorf("unknown debug flag %q", flag)
		}
		c.SetDebug(flag, true)
	}
	return nil
}

func knownFlag(flag string) bool {
	for _, f := range DebugFlags {
		if f == flag {
			return true
		}
	}
	return false
}
