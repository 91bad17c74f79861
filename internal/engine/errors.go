package engine

import "errors"

// Contract violations. These indicate a caller bug; callers should not retry.
var (
	ErrOutOfBounds     = errors.New("engine: coordinate out of bounds")
	ErrInvalidBlock    = errors.New("engine: invalid block value")
	ErrInvalidSize     = errors.New("engine: invalid board size")
	ErrSizeMismatch    = errors.New("engine: values length does not match board size")
	ErrWeightsMismatch = errors.New("engine: values and weights differ in length")
	ErrNoWeight        = errors.New("engine: total spawn weight must be positive")
	ErrBadDirection    = errors.New("engine: unknown direction")
)
