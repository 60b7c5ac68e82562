// Copyright 2020 Aleksandr Demakin. All rights reserved.

package numutil

import (
	"math/big"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/avdva/radixmath/fixedint"
	mu "github.com/avdva/radixmath/internal/mathutil"
)

// DefaultCacheSize is the number of powers kept by the default cache.
const DefaultCacheSize = 64

// MaxPowerDigits is the largest power (counted in decimal digits) the package agrees to compute.
const MaxPowerDigits = 5700000000

var defaultCache = NewPowerCache(DefaultCacheSize)

type powerEntry struct {
	base  int64
	exp   *fixedint.Int
	value *big.Int
}

// PowerCache memoizes powers of five and ten.
// Recently used entries are moved to the front, the least recently used one is evicted.
// A PowerCache is safe for concurrent use.
type PowerCache struct {
	lock    sync.Mutex
	entries []powerEntry
	size    int
	group   singleflight.Group
}

// NewPowerCache returns a cache holding up to size powers.
func NewPowerCache(size int) *PowerCache {
	if size < 1 {
		size = 1
	}
	return &PowerCache{size: size, entries: make([]powerEntry, 0, size)}
}

// Len returns the number of cached powers.
func (pc *PowerCache) Len() int {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	return len(pc.entries)
}

func (pc *PowerCache) lookup(base int64, exp *fixedint.Int) *big.Int {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	small, isSmall := exp.Int64()
	for i, e := range pc.entries {
		if e.base != base {
			continue
		}
		if isSmall {
			if v, ok := e.exp.Int64(); !ok || v != small {
				continue
			}
		} else if !e.exp.Equal(exp) {
			continue
		}
		copy(pc.entries[1:i+1], pc.entries[:i])
		pc.entries[0] = e
		cacheLookups.WithLabelValues("hit").Inc()
		return e.value
	}
	cacheLookups.WithLabelValues("miss").Inc()
	return nil
}

func (pc *PowerCache) store(base int64, exp *fixedint.Int, value *big.Int) {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	if len(pc.entries) < pc.size {
		pc.entries = append(pc.entries, powerEntry{})
	}
	copy(pc.entries[1:], pc.entries[:len(pc.entries)-1])
	pc.entries[0] = powerEntry{base: base, exp: exp, value: value}
}

// PowerOfFive returns 5^exp. exp must not be negative.
// The result is a new value owned by the caller.
func (pc *PowerCache) PowerOfFive(exp *fixedint.Int) *big.Int {
	return new(big.Int).Set(pc.power(5, exp))
}

// PowerOfTen returns 10^exp. exp must not be negative.
// The result is a new value owned by the caller.
func (pc *PowerCache) PowerOfTen(exp *fixedint.Int) *big.Int {
	return new(big.Int).Set(pc.power(10, exp))
}

// power returns a shared value, which must not be modified.
func (pc *PowerCache) power(base int64, exp *fixedint.Int) *big.Int {
	if exp.Sign() < 0 {
		panic("numutil: negative power")
	}
	checkCapacity(base, exp)
	if n, ok := exp.Int64(); ok {
		if base == 10 && n <= int64(mu.MaxPow10) {
			return new(big.Int).SetUint64(mu.Pow10(int(n)))
		}
		if base == 5 && n <= int64(mu.MaxPow5) {
			return new(big.Int).SetUint64(mu.Pow5(int(n)))
		}
	}
	if v := pc.lookup(base, exp); v != nil {
		return v
	}
	key := strconv.FormatInt(base, 10) + "^" + exp.String()
	v, _, _ := pc.group.Do(key, func() (interface{}, error) {
		if v := pc.lookup(base, exp); v != nil {
			return v, nil
		}
		computations.Inc()
		// base^exp = (base^(exp/2))^2 * base^(exp%2)
		half := pc.power(base, exp.FloorQuoInt64(2))
		result := new(big.Int).Mul(half, half)
		if !exp.IsEven() {
			result.Mul(result, big.NewInt(base))
		}
		pc.store(base, exp, result)
		return result, nil
	})
	return v.(*big.Int)
}

func checkCapacity(base int64, exp *fixedint.Int) {
	n, ok := exp.Int64()
	if !ok {
		panic(ErrTooMuchMemory.New("%d^%s", base, exp))
	}
	var digits int64
	switch base {
	case 2:
		digits = n / 3
	case 5:
		digits = n / 10 * 7
	default:
		digits = n
	}
	if digits > MaxPowerDigits {
		panic(ErrTooMuchMemory.New("%d^%d", base, n))
	}
}

// FindPowerOfFive returns 5^n using the default cache.
func FindPowerOfFive(n int64) *big.Int {
	return defaultCache.PowerOfFive(fixedint.FromInt64(n))
}

// FindPowerOfTen returns 10^n using the default cache.
func FindPowerOfTen(n int64) *big.Int {
	return defaultCache.PowerOfTen(fixedint.FromInt64(n))
}

// FindPowerOfFiveFixed returns 5^n using the default cache.
func FindPowerOfFiveFixed(n *fixedint.Int) *big.Int {
	return defaultCache.PowerOfFive(n)
}

// FindPowerOfTenFixed returns 10^n using the default cache.
func FindPowerOfTenFixed(n *fixedint.Int) *big.Int {
	return defaultCache.PowerOfTen(n)
}

// FindPowerOfRadix returns radix^n. n must not be negative.
// Panics with an ErrTooMuchMemory error if the result would be too large.
func FindPowerOfRadix(radix int, n *fixedint.Int) *big.Int {
	switch radix {
	case 10:
		return FindPowerOfTenFixed(n)
	case 2:
		checkCapacity(2, n)
		small, _ := n.Int64()
		return new(big.Int).Lsh(big.NewInt(1), uint(small))
	}
	if small, ok := n.Int64(); ok {
		if p, ok := mu.PowRadix(radix, int(small)); ok {
			return new(big.Int).SetUint64(p)
		}
	}
	checkCapacity(int64(radix), n)
	return new(big.Int).Exp(big.NewInt(int64(radix)), n.Big(), nil)
}

// MultiplyByRadixPower returns mant*radix^n for a non-negative n.
func MultiplyByRadixPower(mant *big.Int, radix int, n *fixedint.Int) *big.Int {
	if mant.Sign() == 0 || n.IsZero() {
		return new(big.Int).Set(mant)
	}
	if radix == 2 {
		checkCapacity(2, n)
		small, _ := n.Int64()
		return new(big.Int).Lsh(mant, uint(small))
	}
	p := FindPowerOfRadix(radix, n)
	return p.Mul(p, mant)
}
