package engine

import "errors"

// Startup and run errors. The cause is joined with %w so both can be matched.
var (
	ErrCreateCachePath = errors.New(ErrMsgCreateCachePath)
	ErrOCRUnavailable  = errors.New(ErrMsgOCRUnavailable)
	ErrCatalogFetch    = errors.New(ErrMsgCatalogFetch)
	ErrWindowNotFound  = errors.New(ErrMsgWindowNotFound)
	ErrCaptureBackend  = errors.New(ErrMsgCaptureBackend)
	ErrLogUnavailable  = errors.New(ErrMsgLogUnavailable)
)
