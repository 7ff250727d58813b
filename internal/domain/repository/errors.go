package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when an order asks for more
	// units than the product row holds at commit time.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrConflict is returned when a delete is blocked by rows that
	// still reference the target (restrict policy).
	ErrConflict = errors.New("referenced by existing records")
)
