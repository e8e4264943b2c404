// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"

	"robpike.io/kelvin/config"
	"robpike.io/kelvin/demo"
	"robpike.io/kelvin/exec"
	"robpike.io/kelvin/host"
	"robpike.io/kelvin/run"
)

const historyFile = ".kelvin_history"

var (
	confFile = flag.String("config", "", "TOML configuration `file`")
	debug    = flag.String("debug", "", "comma-separated list of debug flags to enable")
	runDemo  = flag.Bool("demo", false, "run the demo, a step at a time")
	execute  = flag.Bool("e", false, "execute arguments as a single expression")
	dir      = flag.String("dir", "", "directory for relative file names")
	prompt   = flag.String("prompt", "", "command `prompt`")
)

var (
	conf  config.Config
	isTTY = func(uintptr) bool { return false }
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("kelvin: ")

	flag.Usage = usage
	flag.Parse()

	if *confFile != "" {
		if err := conf.Load(*confFile); err != nil {
			log.Fatal(err)
		}
	}
	if *prompt != "" {
		conf.SetPrompt(*prompt)
	}
	if *debug != "" {
		for _, f := range strings.Split(*debug, ",") {
			if !slices.Contains(config.DebugFlags, f) {
				log.Fatalf("unknown debug flag %q", f)
			}
			conf.SetDebug(f, true)
		}
	}

	c := run.NewContext(&conf, host.NewConsole(os.Stdin, os.Stdout, os.Stderr), host.OS{Dir: *dir})

	if *runDemo {
		eval := func(line string) { runString(c, "demo", line, false) }
		if err := demo.Run(demo.Standard(), os.Stdin, eval, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *execute {
		if !runString(c, "<args>", strings.Join(flag.Args(), " "), false) {
			os.Exit(1)
		}
		return
	}

	if flag.NArg() > 0 {
		for _, name := range flag.Args() {
			data, err := os.ReadFile(name)
			if err != nil {
				log.Fatal(err)
			}
			if !runString(c, name, string(data), false) {
				os.Exit(1)
			}
		}
		return
	}

	if !isTTY(os.Stdin.Fd()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		if !runString(c, "<stdin>", string(data), false) {
			os.Exit(1)
		}
		return
	}

	if conf.Prompt() == "" {
		conf.SetPrompt("> ")
	}
	interact(c)
}

// runString runs src with interrupts canceling the computation.
func runString(c *exec.Context, name, src string, interactive bool) bool {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run.Run(ctx, c, name, src, interactive)
}

// interact runs the read-eval-print loop on the terminal. A statement
// that ends inside brackets continues on the next line.
func interact(c *exec.Context) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	cont := strings.Repeat(" ", len(conf.Prompt()))
	for {
		src, ok := readStatement(ln, c, conf.Prompt(), cont)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		runString(c, "", src, true)
	}
}

// readStatement reads lines until they form a complete statement. The
// boolean is false at end of input.
func readStatement(ln *liner.State, c *exec.Context, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C discards the partial statement.
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !run.Incomplete(c, b.String()) {
			return b.String(), true
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: kelvin [options] [file.kv ...]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "Debug flags: %s\n", strings.Join(config.DebugFlags, ", "))
	os.Exit(2)
}
