// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates the request failed input validation.
var ErrValidation = errors.New("validation failed")

// ErrConflict indicates the entity is in a state that forbids the operation.
var ErrConflict = errors.New("conflict: operation not allowed in current state")
