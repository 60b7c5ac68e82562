// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import "github.com/zeebo/errs"

var (
	// ErrInvalidArgument is returned for invalid context parameters.
	ErrInvalidArgument = errs.Class("invalid argument")
	// ErrNotPermitted is returned on attempts to set flags of a context, which does not keep them.
	ErrNotPermitted = errs.Class("operation not permitted")
	// ErrUnsupported is returned when a helper can't represent the result of an operation.
	ErrUnsupported = errs.Class("unsupported")
)
