package market

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed market call
type ErrorKind int

const (
	// SerializationFailed means the response body did not decode
	SerializationFailed ErrorKind = iota + 1
	// TransportFailed means the round trip failed or returned a non-2xx status
	TransportFailed
	// MiddlewareFailed means the request never reached the transport
	MiddlewareFailed
)

func (k ErrorKind) String() string {
	switch k {
	case SerializationFailed:
		return ErrMsgSerializationFailed
	case TransportFailed:
		return ErrMsgTransportFailed
	case MiddlewareFailed:
		return ErrMsgMiddlewareFailed
	default:
		return "unknown market error"
	}
}

var (
	ErrSerializationFailed = errors.New(ErrMsgSerializationFailed)
	ErrTransportFailed     = errors.New(ErrMsgTransportFailed)
	ErrMiddlewareFailed    = errors.New(ErrMsgMiddlewareFailed)
	ErrUnexpectedStatus    = errors.New(ErrMsgUnexpectedStatus)
	ErrBodyNotReplayable   = errors.New(ErrMsgBodyNotReplayable)
)

// NetworkError describes a failed call to the market API.
// Status is zero when no response was received.
type NetworkError struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Kind, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *NetworkError) Is(target error) bool {
	switch target {
	case ErrSerializationFailed:
		return e.Kind == SerializationFailed
	case ErrTransportFailed:
		return e.Kind == TransportFailed
	case ErrMiddlewareFailed:
		return e.Kind == MiddlewareFailed
	}
	return false
}
