// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

// Rounding defines how discarded digits affect the retained ones.
type Rounding uint8

const (
	// HalfEven rounds to the nearest value, ties go to the even one.
	HalfEven Rounding = iota
	// HalfUp rounds to the nearest value, ties go away from zero.
	HalfUp
	// HalfDown rounds to the nearest value, ties go towards zero.
	HalfDown
	// Up rounds away from zero.
	Up
	// Down truncates.
	Down
	// Ceiling rounds towards positive infinity.
	Ceiling
	// Floor rounds towards negative infinity.
	Floor
	// Odd rounds to the odd value, if any digits are discarded.
	Odd
	// ZeroFiveUp rounds away from zero only if the last retained digit is 0 or radix/2, otherwise truncates.
	ZeroFiveUp
	// OddOrZeroFiveUp behaves as Odd for radix 2, and as ZeroFiveUp otherwise.
	OddOrZeroFiveUp
	// None signals Invalid if any digits need to be discarded.
	None
)

var roundingNames = [...]string{
	HalfEven:        "half-even",
	HalfUp:          "half-up",
	HalfDown:        "half-down",
	Up:              "up",
	Down:            "down",
	Ceiling:         "ceiling",
	Floor:           "floor",
	Odd:             "odd",
	ZeroFiveUp:      "05up",
	OddOrZeroFiveUp: "odd-or-05up",
	None:            "none",
}

func (r Rounding) String() string {
	if int(r) < len(roundingNames) {
		return roundingNames[r]
	}
	return "unknown"
}

// forRadix resolves modes that depend on the radix.
func (r Rounding) forRadix(radix int) Rounding {
	if r == OddOrZeroFiveUp {
		if radix == 2 {
			return Odd
		}
		return ZeroFiveUp
	}
	return r
}

// increment decides if the retained mantissa must be incremented by one.
// last is the most significant discarded digit, older is non-zero if any other discarded digit is non-zero,
// lastKept is the least significant retained digit.
// Must not be called for None.
func (r Rounding) increment(radix int, neg bool, last, older, lastKept int) bool {
	discarded := last != 0 || older != 0
	if !discarded {
		return false
	}
	half := radix / 2
	switch r.forRadix(radix) {
	case Up:
		return true
	case Down:
		return false
	case Ceiling:
		return !neg
	case Floor:
		return neg
	case HalfUp:
		return last >= half
	case HalfDown:
		return last > half || (last == half && older != 0)
	case HalfEven:
		return last > half || (last == half && (older != 0 || lastKept%2 != 0))
	case Odd:
		return lastKept%2 == 0
	case ZeroFiveUp:
		return radix == 2 || lastKept == 0 || lastKept == half
	}
	return false
}

// overflowsToMax returns true if an overflowing result is the largest finite number rather than infinity.
func (r Rounding) overflowsToMax(radix int, neg bool) bool {
	switch r.forRadix(radix) {
	case Down, ZeroFiveUp, Odd:
		return true
	case Ceiling:
		return neg
	case Floor:
		return !neg
	}
	return false
}
