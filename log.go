// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger sets the logger used to report traps and other rare events.
// The default logger discards everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

func log() *zerolog.Logger {
	return logger.Load()
}
