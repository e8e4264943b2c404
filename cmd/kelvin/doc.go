// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Kelvin is an interpreter for a language of symbolic algebra.

Usage:

	kelvin [flags] [file.kv ...]

With file arguments, kelvin runs each file in turn and stops at the first
error. With none, it reads statements from standard input, interactively
with line editing and history if that is a terminal. In interactive mode a
statement that ends inside brackets continues on the next line, and
Control-C abandons the computation in progress.

The -demo flag steps through a demonstration script.

# Values

Numbers are exact: integers (3, -1) and rationals (1/3) have unlimited
size. A number written with a decimal point (1.5) is a floating-point
decimal of the configured precision, and arithmetic with it gives
floating-point results. Text is quoted ("hello"), and true and false are
the logical values.

An identifier with no value is a variable and stands for itself, so

	x + x + y

prints

	2*x+y

Expressions are rewritten to a canonical form: sums are ordered by degree,
like terms are collected, and numeric coefficients come first.

Lists are written [1, 2, 3], vectors {1, 2, 3} and matrices as vectors
of rows, {{1, 2}, {3, 4}}. Elements are indexed from zero, as in l[0].
Parenthesized statements separated by semicolons or newlines form a
sequence whose value is the value of the last.

# Operators

From loosest to tightest binding:

	:=  def  return  throw     assignment and control
	or  ||  xor                disjunction
	and  &&                    conjunction
	=  ==  !=  <  <=  >  >=    relations and equations
	..                         integer range
	+  -                       additive
	*  /  mod                  multiplicative
	^                          exponent, right associative
	-  not  !                  prefix; -x^2 is -(x^2)
	!                          factorial

New operators may be added with operator(name, "symbol", fixity, level)
and removed with removeOperator("symbol"); the fixity is one of infix,
prefix or postfix and the level names one of the precedence levels
above, such as additive.

# Definitions

	x := 2             binds x to the value of 2
	define(y = x + 1)  binds y to x + 1, evaluated when y is used
	def f(x) = x^2     defines a function; f(x) := x^2 is the same
	def f(0) = 1       a rule for a literal argument, tried in order
	undef(x)           removes a definition

save() and restore() push and pop the definitions, and restoreDefault()
forgets them all.

# Operations

Arithmetic: abs, sqrt, ln, exp, sin, cos, tan and their inverses and
hyperbolic forms, gcd, numerator, denominator, mod, approx.

Control: if(c, a, b), while(c, body), for(i, list, body),
for(init, c, step, body), break, continue, return, throw, try(body,
handler), hold and release.

Sequences: size, range, list, vector, matrix, append, first, last,
reverse, sum, product, transpose, dot, identity.

Algebra: expand(p), factor(p), coefficients(p, x), degree(p, x),
polynomial(coefficients, x), rationalRoots(p, x).

Calculus: derivative(f, x), derivative(f, x, n), gradient(f),
gradient(f, [x, y]), directionalDerivative(f, [x, y], direction),
implicitDerivative(equation, x, y), tangent(f, x, a).

Input and output: print, println, log, warning, readLine, readFile,
writeFile, appendFile, listDirectory, import(path), which runs a file in
the current scope, run(path), which runs it in a fresh one, and eval(text).

help() lists the operations and help(name) describes one.

# Configuration

The -config flag names a TOML file:

	prompt = "> "
	precision = 50
	factor_budget = "250ms"
	max_depth = 5000
	debug = ["trace"]

The debug flags are cpu, panic, parse, rules, tokens and trace. They may
also be set with the -debug flag.
*/
package main
