// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies errors. The first group is raised by the compiler,
// the rest during execution.
type ErrorKind int

const (
	Syntax ErrorKind = iota
	IllegalArgument
	UnknownConstant
	DuplicateKeyword

	TypeMismatch
	OutOfBounds
	DimensionMismatch
	Domain
	InvalidRange
	InvalidCast
	CircularDefinition
	SingularMatrix
	NonSquareMatrix
	Unsupported
	StackOverflow
	NotPolynomial
	DivisionByZero
	Context
	Thrown
	Canceled
)

var errorKindNames = map[ErrorKind]string{
	Syntax:             "syntax error",
	IllegalArgument:    "illegal argument",
	UnknownConstant:    "unknown constant",
	DuplicateKeyword:   "duplicate keyword",
	TypeMismatch:       "type mismatch",
	OutOfBounds:        "index out of bounds",
	DimensionMismatch:  "dimension mismatch",
	Domain:             "domain error",
	InvalidRange:       "invalid range",
	InvalidCast:        "invalid cast",
	CircularDefinition: "circular definition",
	SingularMatrix:     "singular matrix",
	NonSquareMatrix:    "non-square matrix",
	Unsupported:        "unsupported",
	StackOverflow:      "stack overflow",
	NotPolynomial:      "not a polynomial",
	DivisionByZero:     "division by zero",
	Context:            "invalid context",
	Thrown:             "thrown",
	Canceled:           "canceled",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the typed error raised by the compiler and by rewrite rules.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf returns an Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// TypeError reports that got is not of the expected type for op.
func TypeError(op string, want string, got Node) error {
	return Errorf(TypeMismatch, "%s: expected %s, found %s %s", op, want, got.Kind(), got)
}

// IndexError reports an index outside [0, Max].
type IndexError struct {
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("index %d out of bounds: sequence is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of bounds: maximum index is %d", e.Index, e.Max)
}

// KindOf returns the kind of the innermost typed error in err's chain.
// The boolean is false if the chain holds none.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	var ie *IndexError
	if errors.As(err, &ie) {
		return OutOfBounds, true
	}
	var s *Signal
	if errors.As(err, &s) {
		if s.Kind == ThrowSignal {
			return Thrown, true
		}
		return Context, true
	}
	return 0, false
}

// SignalKind identifies a control transfer.
type SignalKind int

const (
	ContinueSignal SignalKind = iota
	BreakSignal
	ReturnSignal
	ThrowSignal
)

var signalNames = [...]string{
	ContinueSignal: "continue",
	BreakSignal:    "break",
	ReturnSignal:   "return",
	ThrowSignal:    "throw",
}

func (k SignalKind) String() string {
	return signalNames[k]
}

// Signal is a control transfer travelling up the simplification of a tree.
// It rides in the error result of Simplify but is not an error: it is
// caught by the construct that understands it. Signals are never wrapped.
type Signal struct {
	Kind  SignalKind
	Value Node // The returned or thrown value; nil for break and continue.
}

func (s *Signal) Error() string {
	if s.Kind == ThrowSignal && s.Value != nil {
		return fmt.Sprintf("uncaught throw: %s", s.Value)
	}
	return fmt.Sprintf("%s used outside its valid context", s.Kind)
}

// AsSignal reports whether err is a control signal, and returns it.
func AsSignal(err error) (*Signal, bool) {
	s, ok := err.(*Signal)
	return s, ok
}
