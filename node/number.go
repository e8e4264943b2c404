// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd"
)

// Number is implemented by the numeric leaves. The numeric tower is
// Int ⊂ Rat ⊂ Float; binary arithmetic converts the operand lower in the
// tower up to the level of the other.
type Number interface {
	Node
	// Rat returns the exact value of the number. For a Float it is the
	// exact value of the decimal.
	Rat() *big.Rat
	// Sign returns -1, 0 or +1.
	Sign() int
	// Float64 returns the nearest float64.
	Float64() float64
	level() level
}

type level int

const (
	intLevel level = iota
	ratLevel
	floatLevel
)

// decimal is the context for Float arithmetic.
var decimal = apd.BaseContext.WithPrecision(34)

// SetPrecision sets the number of significant decimal digits
// carried by Float arithmetic.
func SetPrecision(digits uint32) {
	if digits == 0 {
		digits = 34
	}
	decimal = apd.BaseContext.WithPrecision(digits)
}

// Precision reports the number of significant digits of Float arithmetic.
func Precision() uint32 {
	return decimal.Precision
}

// Int is an exact integer.
type Int struct {
	x *big.Int
}

// NewInt returns the Int with value x.
func NewInt(x int64) Int {
	return Int{big.NewInt(x)}
}

// BigInt returns an Int holding x. The Int takes ownership of x.
func BigInt(x *big.Int) Int {
	return Int{x}
}

func (i Int) Kind() Kind               { return IntKind }
func (i Int) Complexity() int          { return 1 }
func (i Int) Children() []Node         { return nil }
func (i Int) WithChildren([]Node) Node { return i }
func (i Int) String() string           { return i.x.String() }
func (i Int) Sign() int                { return i.x.Sign() }
func (i Int) level() level             { return intLevel }

// Big returns a copy of the value.
func (i Int) Big() *big.Int { return new(big.Int).Set(i.x) }

// Int64 returns the value and whether it fits in an int64.
func (i Int) Int64() (int64, bool) {
	return i.x.Int64(), i.x.IsInt64()
}

func (i Int) Precedence() Precedence {
	if i.x.Sign() < 0 {
		return PrecAdditive
	}
	return PrecLeaf
}

func (i Int) Equals(n Node) bool {
	j, ok := n.(Int)
	return ok && i.x.Cmp(j.x) == 0
}

func (i Int) Rat() *big.Rat {
	return new(big.Rat).SetInt(i.x)
}

func (i Int) Float64() float64 {
	f, _ := new(big.Float).SetInt(i.x).Float64()
	return f
}

// Rat is an exact fraction whose denominator is not 1.
type Rat struct {
	x *big.Rat
}

// NewRat returns the number a/b, which is an Int if b divides a.
// It panics if b is zero.
func NewRat(a, b int64) Number {
	return MakeRat(big.NewRat(a, b))
}

// MakeRat returns x as a Number, shrinking it to an Int when possible.
// The result takes ownership of x.
func MakeRat(x *big.Rat) Number {
	if x.IsInt() {
		return Int{new(big.Int).Set(x.Num())}
	}
	return Rat{x}
}

func (r Rat) Kind() Kind               { return RatKind }
func (r Rat) Complexity() int          { return 1 }
func (r Rat) Children() []Node         { return nil }
func (r Rat) WithChildren([]Node) Node { return r }
func (r Rat) Sign() int                { return r.x.Sign() }
func (r Rat) level() level             { return ratLevel }
func (r Rat) Rat() *big.Rat            { return new(big.Rat).Set(r.x) }

// Num and Denom return the numerator and the (positive) denominator.
func (r Rat) Num() Int   { return Int{new(big.Int).Set(r.x.Num())} }
func (r Rat) Denom() Int { return Int{new(big.Int).Set(r.x.Denom())} }

func (r Rat) String() string {
	return r.x.Num().String() + "/" + r.x.Denom().String()
}

func (r Rat) Precedence() Precedence {
	if r.x.Sign() < 0 {
		return PrecAdditive
	}
	return PrecMultiplicative
}

func (r Rat) Equals(n Node) bool {
	s, ok := n.(Rat)
	return ok && r.x.Cmp(s.x) == 0
}

func (r Rat) Float64() float64 {
	f, _ := r.x.Float64()
	return f
}

// Float is an inexact decimal number carried at the configured precision.
type Float struct {
	x *apd.Decimal
}

// NewFloat returns the Float nearest f.
func NewFloat(f float64) (Float, error) {
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return Float{}, Errorf(Domain, "%g is not a finite number", f)
	}
	return Float{d}, nil
}

func (f Float) Kind() Kind               { return FloatKind }
func (f Float) Complexity() int          { return 1 }
func (f Float) Children() []Node         { return nil }
func (f Float) WithChildren([]Node) Node { return f }
func (f Float) Sign() int                { return f.x.Sign() }
func (f Float) level() level             { return floatLevel }

func (f Float) Precedence() Precedence {
	if f.x.Sign() < 0 {
		return PrecAdditive
	}
	return PrecLeaf
}

func (f Float) Equals(n Node) bool {
	g, ok := n.(Float)
	return ok && f.x.Cmp(g.x) == 0
}

func (f Float) Float64() float64 {
	v, err := f.x.Float64()
	if err != nil {
		return math.NaN()
	}
	return v
}

// String renders the decimal in positional form, with at least one digit
// after the point so it reads back as a Float.
func (f Float) String() string {
	d := f.x
	if d.Form != apd.Finite {
		return d.String()
	}
	if adj := int(d.Exponent) + len(d.Coeff.String()); adj > 25 || adj < -25 {
		return d.String()
	}
	digits := d.Coeff.String()
	var s string
	switch exp := int(d.Exponent); {
	case exp >= 0:
		s = digits + strings.Repeat("0", exp) + ".0"
	case len(digits) > -exp:
		s = digits[:len(digits)+exp] + "." + digits[len(digits)+exp:]
	default:
		s = "0." + strings.Repeat("0", -exp-len(digits)) + digits
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	if d.Negative {
		s = "-" + s
	}
	return s
}

func (f Float) Rat() *big.Rat {
	d := f.x
	r := new(big.Rat).SetInt(&d.Coeff)
	if d.Exponent != 0 {
		exp := int64(d.Exponent)
		if exp < 0 {
			exp = -exp
		}
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
		if d.Exponent > 0 {
			r.Mul(r, new(big.Rat).SetInt(p))
		} else {
			r.Quo(r, new(big.Rat).SetInt(p))
		}
	}
	if d.Negative {
		r.Neg(r)
	}
	return r
}

// Decimal returns a copy of the underlying decimal.
func (f Float) Decimal() *apd.Decimal {
	return new(apd.Decimal).Set(f.x)
}

// ParseNumber converts a numeric literal. Literals with a decimal point or
// an exponent are Floats; all others are Ints.
func ParseNumber(text string) (Number, error) {
	if !strings.ContainsAny(text, ".eE") {
		x, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, Errorf(Syntax, "bad number syntax: %s", text)
		}
		return Int{x}, nil
	}
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return nil, Errorf(Syntax, "bad number syntax: %s", text)
	}
	return Float{d}, nil
}

// ToFloat converts n to a Float.
func ToFloat(n Number) (Float, error) {
	switch n := n.(type) {
	case Float:
		return n, nil
	case Int:
		return Float{apd.NewWithBigInt(new(big.Int).Set(n.x), 0)}, nil
	}
	r := n.Rat()
	z := new(apd.Decimal)
	_, err := decimal.Quo(z, apd.NewWithBigInt(r.Num(), 0), apd.NewWithBigInt(r.Denom(), 0))
	if err != nil {
		return Float{}, Errorf(Domain, "cannot convert %s to float: %v", n, err)
	}
	return Float{z}, nil
}

// IsZero reports whether n is a number equal to zero.
func IsZero(n Node) bool {
	x, ok := n.(Number)
	return ok && x.Sign() == 0
}

// IsOne reports whether n is a number equal to one.
func IsOne(n Node) bool {
	return isValue(n, 1)
}

// IsMinusOne reports whether n is a number equal to minus one.
func IsMinusOne(n Node) bool {
	return isValue(n, -1)
}

func isValue(n Node, v int64) bool {
	x, ok := n.(Number)
	if !ok {
		return false
	}
	return x.Rat().Cmp(big.NewRat(v, 1)) == 0
}

// IsInteger reports whether n is an Int.
func IsInteger(n Node) bool {
	_, ok := n.(Int)
	return ok
}

// Zero, One and MinusOne are common constants.
var (
	Zero     = NewInt(0)
	One      = NewInt(1)
	MinusOne = NewInt(-1)
	Two      = NewInt(2)
)
