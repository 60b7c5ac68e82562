// Copyright 2020 Aleksandr Demakin. All rights reserved.

package dfp

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/zeebo/errs"

	"github.com/avdva/radixmath"
	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

const (
	delim = '.'
	// maxPlainZeros is the number of zeros, after which PlainString switches to scientific notation.
	maxPlainZeros = 1 << 20
)

var (
	// ErrSyntax is returned for strings, which are not numbers.
	ErrSyntax = errs.Class("dfp syntax")

	manyZeros = bytes.Repeat([]byte{'0'}, 256)
)

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

func addPosErrorOffset(err error, offset int) error {
	var pe *posError
	if !errors.As(err, &pe) { // try to locate error position.
		return err
	}
	pe.pos += offset
	return pe
}

// Parse parses a decimal number: [sign] digits [. digits] [e|E [sign] digits],
// or Inf, Infinity, NaN, sNaN, where NaNs may be followed by payload digits.
// The exponent is preserved: "1.20" has mantissa 120 and exponent -2.
func Parse(s string) (Number, error) {
	s, offset, neg := prepareString(s)
	if len(s) == 0 {
		return Number{}, ErrSyntax.New("empty input")
	}
	n, err := doParse(s, neg)
	if err != nil {
		// add what we've trimmed before and add +1 to the offset to start indices from 1.
		return Number{}, ErrSyntax.Wrap(addPosErrorOffset(err, offset+1))
	}
	return n, nil
}

// MustParse is like Parse, but panics on errors.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseBinary parses a decimal string into a binary number, rounded to ctx.
// Decimal fractions, which have no finite binary expansion, require ctx to have limited precision,
// otherwise the result is NaN.
func ParseBinary(s string, ctx *radixmath.Context) (Number, error) {
	n, err := Parse(s)
	if err != nil {
		return Number{}, err
	}
	if !n.IsFinite() {
		n.radix = 2
		return n, nil
	}
	mant := Binary.New(n.Mant(), nil, n.flags)
	exp := n.exponent()
	if exp.Sign() >= 0 {
		scaled := numutil.MultiplyByRadixPower(n.mantissa(), 10, fixedint.FromBig(exp))
		return BinaryArithmetic.RoundToPrecision(Binary.New(scaled, nil, n.flags), ctx)
	}
	den := Binary.New(numutil.FindPowerOfRadix(10, fixedint.FromBig(new(big.Int).Neg(exp))), nil, 0)
	return BinaryArithmetic.Divide(mant, den, ctx)
}

func doParse(s string, neg bool) (Number, error) {
	flags := signFlag(neg)
	lower := strings.ToLower(s)
	switch {
	case lower == "inf" || lower == "infinity":
		return Inf(neg), nil
	case strings.HasPrefix(lower, "snan"):
		payload, err := parsePayload(s[4:], 4)
		if err != nil {
			return Number{}, err
		}
		return newNumber(10, flags|radixmath.SignalingNaN, payload, nil), nil
	case strings.HasPrefix(lower, "nan"):
		payload, err := parsePayload(s[3:], 3)
		if err != nil {
			return Number{}, err
		}
		return newNumber(10, flags|radixmath.QuietNaN, payload, nil), nil
	}
	digits, exp, err := removeLeadingZeros(s)
	if err != nil {
		return Number{}, err
	}
	mant := new(big.Int)
	if len(digits) > 0 {
		mant.SetString(digits, 10)
	}
	return newNumber(10, flags, mant, exp), nil
}

func parsePayload(s string, offset int) (*big.Int, error) {
	if len(s) == 0 {
		return nil, nil
	}
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, newPosError(fmt.Sprintf("unexpected symbol %q", r), i+offset)
		}
	}
	payload, _ := new(big.Int).SetString(s, 10)
	return payload, nil
}

// prepareString cleans the string from ",-,+ symbols, and spaces.
func prepareString(s string) (prepared string, offset int, neg bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '"' {
		s = s[1:]
		offset++
	}
	if len(s) == 0 {
		return "", 0, false
	}
	if s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	if trimmed := strings.TrimLeftFunc(s, unicode.IsSpace); len(trimmed) != len(s) {
		offset += len(s) - len(trimmed)
		s = trimmed
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '-' {
		neg = true
		offset++
		s = s[1:]
	} else if s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset, neg
}

// removeLeadingZeros returns significant digits of s and the exponent of the last one.
// Trailing zeros are significant.
func removeLeadingZeros(s string) (result string, e *big.Int, err error) {
	var b strings.Builder
	e = new(big.Int)
	delimPos, seenDigit := -1, false
	var fracDigits int64
outer:
	for i, r := range s {
		switch {
		case '0' <= r && r <= '9':
			seenDigit = true
			if delimPos >= 0 {
				fracDigits++
			}
			if b.Len() == 0 && r == '0' { // trim leading zeros
				continue
			}
			b.WriteRune(r)
		case r == 'e' || r == 'E':
			if !seenDigit {
				return "", nil, newPosError(fmt.Sprintf("unexpected symbol %q", r), i)
			}
			exp := s[i+1:]
			if len(exp) > 0 && exp[0] == '+' {
				exp = exp[1:]
			}
			if _, ok := e.SetString(exp, 10); !ok || strings.HasPrefix(exp, "+") {
				return "", nil, newPosError(fmt.Sprintf("error parsing exponent %q", s[i+1:]), i+1)
			}
			break outer
		case r == delim:
			if delimPos != -1 {
				return "", nil, newPosError("unexpected delimiter", i)
			}
			delimPos = i
		default:
			return "", nil, newPosError(fmt.Sprintf("unexpected symbol %q", r), i)
		}
	}
	if !seenDigit {
		return "", nil, newPosError("no digits", 0)
	}
	return b.String(), e.Sub(e, big.NewInt(fracDigits)), nil
}

// decimalDigits returns decimal digits and the exponent of a finite number.
// Binary numbers are converted exactly: m*2^-k = m*5^k*10^-k.
func (v Number) decimalDigits() (string, *big.Int) {
	mant, exp := v.mantissa(), v.exponent()
	if v.Radix() == 2 {
		if exp.Sign() >= 0 {
			mant = new(big.Int).Lsh(mant, uint(exp.Uint64()))
			exp = bigZero
		} else {
			k := new(big.Int).Neg(exp)
			mant = new(big.Int).Mul(mant, numutil.FindPowerOfFiveFixed(fixedint.FromBig(k)))
		}
	}
	return mant.String(), exp
}

func (v Number) format(plain bool) string {
	var b strings.Builder
	if v.IsNegative() {
		b.WriteByte('-')
	}
	switch {
	case v.IsInf():
		b.WriteString("Infinity")
		return b.String()
	case v.IsNaN():
		if v.IsSignalingNaN() {
			b.WriteByte('s')
		}
		b.WriteString("NaN")
		if v.mantissa().Sign() != 0 {
			b.WriteString(v.mantissa().String())
		}
		return b.String()
	}
	digits, exp := v.decimalDigits()
	if plain {
		formatPlain(&b, digits, exp)
	} else {
		formatScientific(&b, digits, exp)
	}
	return b.String()
}

// formatScientific writes digits*10^exp in the scientific notation of the General Decimal Arithmetic.
func formatScientific(b *strings.Builder, digits string, exp *big.Int) {
	adj := new(big.Int).Add(exp, big.NewInt(int64(len(digits)-1)))
	if exp.Sign() <= 0 && adj.Cmp(big.NewInt(-6)) >= 0 {
		writePlain(b, digits, exp.Int64())
		return
	}
	b.WriteString(digits[:1])
	if len(digits) > 1 {
		b.WriteByte(delim)
		b.WriteString(digits[1:])
	}
	b.WriteByte('E')
	if adj.Sign() >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(adj.String())
}

func formatPlain(b *strings.Builder, digits string, exp *big.Int) {
	if !exp.IsInt64() || exp.Int64() > maxPlainZeros || exp.Int64() < -maxPlainZeros {
		formatScientific(b, digits, exp)
		return
	}
	if e := exp.Int64(); e > 0 {
		b.WriteString(digits)
		if digits != "0" {
			b.Write(zeroBytes(int(e)))
		}
		return
	}
	writePlain(b, digits, exp.Int64())
}

// writePlain writes digits*10^exp for exp <= 0.
func writePlain(b *strings.Builder, digits string, exp int64) {
	if exp == 0 {
		b.WriteString(digits)
		return
	}
	if diff := len(digits) + int(exp); diff <= 0 { // add leading zeros and a delimiter
		b.Write([]byte{'0', delim})
		b.Write(zeroBytes(-diff))
		b.WriteString(digits)
	} else { // insert a delimiter
		b.WriteString(digits[:diff])
		b.WriteByte(delim)
		b.WriteString(digits[diff:])
	}
}

func zeroBytes(count int) []byte {
	if count <= len(manyZeros) {
		return manyZeros[:count]
	}
	result := bytes.Repeat(manyZeros, count/len(manyZeros))
	if rem := count % len(manyZeros); rem > 0 {
		result = append(result, manyZeros[:rem]...)
	}
	return result
}
