package domain

import "errors"

// Sentinel errors for the workflow layers. Repository and handler code wrap
// these with fmt.Errorf("...: %w", err) and match them with errors.Is; the
// handler layer owns the mapping to HTTP status codes.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)
