package entity

import "errors"

// Validation errors for feed definitions.
var (
	ErrEmptySlug             = errors.New("feed slug is required")
	ErrReservedSlug          = errors.New("feed slug collides with a built-in format name")
	ErrLimitOutOfRange       = errors.New("feed limit must be between 1 and 100")
	ErrInvalidOrderBy        = errors.New("invalid order-by value")
	ErrInvalidOrderDirection = errors.New("invalid order direction")
	ErrInvalidDateRange      = errors.New("dateFrom cannot be after dateTo")
)
