package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain error codes:
// - ErrNotFound: key or token does not exist in the store
// - ErrConflict: a concurrent writer committed first; the batch was not applied
// - ErrInvalidState: the store holds data that breaks a registry invariant
// - ErrUnavailable: backend temporarily unreachable
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
