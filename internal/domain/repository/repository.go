package repository

import "errors"

// Store-level sentinel errors. Implementations map driver errors onto these
// so services can branch with errors.Is without importing the driver.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)
