// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"robpike.io/kelvin/algebra"
	"robpike.io/kelvin/calculus"
	"robpike.io/kelvin/config"
	"robpike.io/kelvin/exec"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/ops"
)

// Libraries lists the rule libraries of a standard context, in the
// order they are installed.
var Libraries = []exec.Library{
	ops.Install,
	algebra.Install,
	calculus.Install,
}

// NewContext returns an execution context with the standard libraries.
func NewContext(conf *config.Config, io host.IO, fs host.FileSystem) *exec.Context {
	return exec.NewContext(conf, io, fs, Libraries...)
}
