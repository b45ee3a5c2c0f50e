package cache

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a cache failure
type ErrorKind int

const (
	// FileCreateFailed means the cache file could not be created or truncated
	FileCreateFailed ErrorKind = iota + 1
	// SerializationFailed means the produced value could not be encoded or written
	SerializationFailed
	// InnerFailed means the producer returned an error
	InnerFailed
)

func (k ErrorKind) String() string {
	switch k {
	case FileCreateFailed:
		return ErrMsgFileCreateFailed
	case SerializationFailed:
		return ErrMsgSerializationFailed
	case InnerFailed:
		return ErrMsgInnerFailed
	default:
		return "unknown cache error"
	}
}

// Sentinels for matching a kind with errors.Is
var (
	ErrFileCreateFailed    = errors.New(ErrMsgFileCreateFailed)
	ErrSerializationFailed = errors.New(ErrMsgSerializationFailed)
	ErrInnerFailed         = errors.New(ErrMsgInnerFailed)
)

// Error is returned by Cached. Err holds the underlying cause.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFileCreateFailed:
		return e.Kind == FileCreateFailed
	case ErrSerializationFailed:
		return e.Kind == SerializationFailed
	case ErrInnerFailed:
		return e.Kind == InnerFailed
	}
	return false
}
