// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"io"
	"strings"

	"robpike.io/kelvin/dispatch"
	"robpike.io/kelvin/node"
)

func installIO(r *dispatch.Registry) {
	r.Register("print", dispatch.Rule{Params: params(any), Variadic: true, Fn: printer(false), Doc: "print the arguments"})
	r.Register("println", dispatch.Rule{Params: params(any), Variadic: true, Fn: printer(true), Doc: "print the arguments and a newline"})
	r.Register("log", dispatch.Rule{Params: params(any), Fn: message(func(env dispatch.Env, s string) { env.IO().Log(s) }), Doc: "write to the log"})
	r.Register("warning", dispatch.Rule{Params: params(any), Fn: message(func(env dispatch.Env, s string) { env.IO().Warning(s) }), Doc: "write a warning"})
	r.Register("readLine", dispatch.Rule{Fn: func(env dispatch.Env, _ []node.Node) (dispatch.Result, error) {
		line, err := env.IO().ReadLine()
		if err == io.EOF {
			return dispatch.Replace(node.Void{}), nil
		}
		if err != nil {
			return dispatch.NoMatch, err
		}
		return dispatch.Replace(node.Text(strings.TrimSuffix(line, "\n"))), nil
	}, Doc: "read a line of input"})

	r.Register("readFile", dispatch.Rule{Params: params(text), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		s, err := env.FS().ReadFile(string(args[0].(node.Text)))
		if err != nil {
			return dispatch.NoMatch, fileError(err)
		}
		return dispatch.Replace(node.Text(s)), nil
	}, Doc: "contents of a file"})
	r.Register("writeFile", dispatch.Rule{Params: params(text, any), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.Void{}), fileError(env.FS().WriteFile(string(args[0].(node.Text)), plain(args[1])))
	}, Doc: "replace the contents of a file"})
	r.Register("appendFile", dispatch.Rule{Params: params(text, any), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		return dispatch.Replace(node.Void{}), fileError(env.FS().AppendFile(string(args[0].(node.Text)), plain(args[1])))
	}, Doc: "add to the end of a file"})
	r.Register("listDirectory", dispatch.Rule{Params: params(text), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		names, err := env.FS().ListDirectory(string(args[0].(node.Text)))
		if err != nil {
			return dispatch.NoMatch, fileError(err)
		}
		elems := make([]node.Node, len(names))
		for i, n := range names {
			elems[i] = node.Text(n)
		}
		return dispatch.Replace(node.NewList(elems...)), nil
	}, Doc: "names in a directory"})

	r.Register("import", dispatch.Rule{Params: params(text), Fn: source(false), Doc: "run a file, keeping its definitions"})
	r.Register("run", dispatch.Rule{Params: params(text), Fn: source(true), Doc: "run a file in a fresh scope"})
	r.Register("eval", dispatch.Rule{Params: params(text), Fn: func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		v, err := env.Source("eval", string(args[0].(node.Text)), false)
		if err != nil {
			return dispatch.NoMatch, err
		}
		return dispatch.Replace(v), nil
	}, Doc: "run source text"})
}

// plain renders n for output: text without quotes, all else as usual.
func plain(n node.Node) string {
	if t, ok := n.(node.Text); ok {
		return string(t)
	}
	return n.String()
}

func printer(newline bool) dispatch.Func {
	return func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = plain(a)
		}
		out := node.Text(strings.Join(parts, " "))
		if newline {
			env.IO().Println(out)
		} else {
			env.IO().Print(out)
		}
		return dispatch.Replace(node.Void{}), nil
	}
}

func message(emit func(dispatch.Env, string)) dispatch.Func {
	return func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		emit(env, plain(args[0]))
		return dispatch.Replace(node.Void{}), nil
	}
}

func source(isolated bool) dispatch.Func {
	return func(env dispatch.Env, args []node.Node) (dispatch.Result, error) {
		path := string(args[0].(node.Text))
		src, err := env.FS().ReadFile(path)
		if err != nil {
			return dispatch.NoMatch, fileError(err)
		}
		v, err := env.Source(path, src, isolated)
		if err != nil {
			return dispatch.NoMatch, err
		}
		if !isolated {
			v = node.Void{}
		}
		return dispatch.Replace(v), nil
	}
}

// fileError gives a host failure an error kind.
func fileError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := node.KindOf(err); ok {
		return err
	}
	return node.Errorf(node.IllegalArgument, "%v", err)
}
