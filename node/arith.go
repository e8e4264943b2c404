// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd"
)

// Exact arithmetic on the numeric tower. Operands are raised to the
// higher of their two levels.

func arithLevel(a, b Number) level {
	if a.level() > b.level() {
		return a.level()
	}
	return b.level()
}

type decimalOp func(z, x, y *apd.Decimal) (apd.Condition, error)

// floatOp applies op to a and b as Floats.
func floatOp(a, b Number, op decimalOp) (Number, error) {
	x, err := ToFloat(a)
	if err != nil {
		return nil, err
	}
	y, err := ToFloat(b)
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if _, err := op(z, x.x, y.x); err != nil {
		return nil, Errorf(Domain, "%s", err)
	}
	return Float{z}, nil
}

// Add returns a+b.
func Add(a, b Number) Number {
	switch arithLevel(a, b) {
	case intLevel:
		return Int{new(big.Int).Add(a.(Int).x, b.(Int).x)}
	case ratLevel:
		return MakeRat(new(big.Rat).Add(a.Rat(), b.Rat()))
	}
	z, err := floatOp(a, b, decimal.Add)
	if err != nil {
		return Float{apd.New(0, 0)}
	}
	return z
}

// Sub returns a-b.
func Sub(a, b Number) Number {
	return Add(a, Neg(b))
}

// Mul returns a*b.
func Mul(a, b Number) Number {
	switch arithLevel(a, b) {
	case intLevel:
		return Int{new(big.Int).Mul(a.(Int).x, b.(Int).x)}
	case ratLevel:
		return MakeRat(new(big.Rat).Mul(a.Rat(), b.Rat()))
	}
	z, err := floatOp(a, b, decimal.Mul)
	if err != nil {
		return Float{apd.New(0, 0)}
	}
	return z
}

// Quo returns a/b. Division of exact numbers is exact.
func Quo(a, b Number) (Number, error) {
	if b.Sign() == 0 {
		return nil, Errorf(DivisionByZero, "division by zero")
	}
	if arithLevel(a, b) != floatLevel {
		return MakeRat(new(big.Rat).Quo(a.Rat(), b.Rat())), nil
	}
	return floatOp(a, b, decimal.Quo)
}

// Neg returns -a.
func Neg(a Number) Number {
	switch a := a.(type) {
	case Int:
		return Int{new(big.Int).Neg(a.x)}
	case Rat:
		return Rat{new(big.Rat).Neg(a.x)}
	case Float:
		return Float{new(apd.Decimal).Neg(a.x)}
	}
	panic("node: unknown number type")
}

// Abs returns |a|.
func Abs(a Number) Number {
	if a.Sign() < 0 {
		return Neg(a)
	}
	return a
}

// Cmp compares a and b, returning -1, 0 or +1.
func Cmp(a, b Number) int {
	if arithLevel(a, b) == floatLevel {
		x, err1 := ToFloat(a)
		y, err2 := ToFloat(b)
		if err1 == nil && err2 == nil {
			return x.x.Cmp(y.x)
		}
	}
	return a.Rat().Cmp(b.Rat())
}

// maxExactExponent bounds the exponent of exact integer powers.
const maxExactExponent = 1 << 16

// Pow returns a^b. The boolean is false if the result has no exact
// representation, such as 2^(1/2), in which case the caller should keep
// the power symbolic.
func Pow(a, b Number) (Number, bool, error) {
	if a.level() == floatLevel || b.level() == floatLevel {
		if a.Sign() < 0 && !b.Rat().IsInt() {
			return nil, false, nil
		}
		if a.Sign() == 0 && b.Sign() < 0 {
			return nil, false, Errorf(DivisionByZero, "division by zero: 0^%s", b)
		}
		z, err := floatOp(a, b, decimal.Pow)
		if err != nil {
			return nil, false, nil
		}
		return z, true, nil
	}
	exp := b.Rat()
	if !exp.IsInt() {
		return rootPow(a, exp)
	}
	e := exp.Num()
	if e.CmpAbs(big.NewInt(maxExactExponent)) > 0 {
		return nil, false, nil
	}
	if a.Sign() == 0 {
		switch e.Sign() {
		case 0:
			return nil, false, Errorf(Domain, "0^0 is undefined")
		case -1:
			return nil, false, Errorf(DivisionByZero, "division by zero: 0^%s", b)
		}
		return Zero, true, nil
	}
	abs := new(big.Int).Abs(e)
	r := a.Rat()
	num := new(big.Int).Exp(r.Num(), abs, nil)
	den := new(big.Int).Exp(r.Denom(), abs, nil)
	if e.Sign() < 0 {
		num, den = den, num
	}
	return MakeRat(new(big.Rat).SetFrac(num, den)), true, nil
}

// rootPow computes a^(p/q) exactly when a is a perfect q-th power.
// Only square roots are attempted.
func rootPow(a Number, exp *big.Rat) (Number, bool, error) {
	if exp.Denom().Cmp(big.NewInt(2)) != 0 || a.Sign() < 0 {
		return nil, false, nil
	}
	r := a.Rat()
	num, ok := exactSqrt(r.Num())
	if !ok {
		return nil, false, nil
	}
	den, ok := exactSqrt(r.Denom())
	if !ok {
		return nil, false, nil
	}
	root := MakeRat(new(big.Rat).SetFrac(num, den))
	return Pow(root, Int{new(big.Int).Set(exp.Num())})
}

// exactSqrt returns the square root of x if x is a perfect square.
func exactSqrt(x *big.Int) (*big.Int, bool) {
	if x.Sign() < 0 {
		return nil, false
	}
	s := new(big.Int).Sqrt(x)
	if new(big.Int).Mul(s, s).Cmp(x) != 0 {
		return nil, false
	}
	return s, true
}

// Sqrt returns the square root of a, exact when possible.
func Sqrt(a Number) (Number, bool, error) {
	if a.Sign() < 0 {
		return nil, false, nil
	}
	if a.level() != floatLevel {
		return rootPow(a, big.NewRat(1, 2))
	}
	z := new(apd.Decimal)
	if _, err := decimal.Sqrt(z, a.(Float).x); err != nil {
		return nil, false, Errorf(Domain, "sqrt: %s", err)
	}
	return Float{z}, true, nil
}

// Ln returns the natural logarithm of the Float a.
func Ln(a Float) (Number, error) {
	if a.Sign() <= 0 {
		return nil, Errorf(Domain, "logarithm of non-positive number %s", a)
	}
	z := new(apd.Decimal)
	if _, err := decimal.Ln(z, a.x); err != nil {
		return nil, Errorf(Domain, "ln: %s", err)
	}
	return Float{z}, nil
}

// Exp returns e^a for the Float a.
func Exp(a Float) (Number, error) {
	z := new(apd.Decimal)
	if _, err := decimal.Exp(z, a.x); err != nil {
		return nil, Errorf(Domain, "exp: %s", err)
	}
	return Float{z}, nil
}

// Apply64 evaluates a float64 function of a, for the transcendental
// functions apd does not provide.
func Apply64(a Number, fn func(float64) float64) (Number, error) {
	v := fn(a.Float64())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, Errorf(Domain, "result out of domain for %s", a)
	}
	return NewFloat(v)
}

// Factorial returns n! for a non-negative Int.
func Factorial(n Int) (Number, error) {
	if n.Sign() < 0 {
		return nil, Errorf(Domain, "factorial of negative number %s", n)
	}
	if !n.x.IsInt64() || n.x.Int64() > maxExactExponent {
		return nil, Errorf(Domain, "factorial argument %s too large", n)
	}
	z := new(big.Int).MulRange(1, n.x.Int64())
	return Int{z}, nil
}

// Mod returns a modulo b with the sign of b, for Ints.
func Mod(a, b Int) (Number, error) {
	if b.Sign() == 0 {
		return nil, Errorf(DivisionByZero, "modulo by zero")
	}
	z := new(big.Int).Mod(a.x, new(big.Int).Abs(b.x))
	if b.Sign() < 0 && z.Sign() != 0 {
		z.Add(z, b.x)
	}
	return Int{z}, nil
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b Int) Int {
	x := new(big.Int).Abs(a.x)
	y := new(big.Int).Abs(b.x)
	return Int{new(big.Int).GCD(nil, nil, x, y)}
}
