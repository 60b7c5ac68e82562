// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import "errors"

// TrapSignal is returned as an error by operations, which signaled a condition enabled in Context.Traps.
type TrapSignal[T any] struct {
	// Flag is the most severe trapped condition.
	Flag Flags
	// Flags are all trapped conditions.
	Flags Flags
	// Context is a copy of the operation's context at the moment of the signal.
	Context *Context
	// Result is the result the operation would have returned without the trap.
	Result T
}

func (ts *TrapSignal[T]) Error() string {
	return "radixmath: trapped condition: " + ts.Flags.String()
}

// AsTrap returns the TrapSignal in err's chain, if any.
func AsTrap[T any](err error) (*TrapSignal[T], bool) {
	var ts *TrapSignal[T]
	if errors.As(err, &ts) {
		return ts, true
	}
	return nil, false
}
