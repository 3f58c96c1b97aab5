package client

import (
	"fmt"
)

// TransportError means the request could not be completed or the service
// answered with a non-success status. Status is 0 when no response arrived.
type TransportError struct {
	Status int
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		if e.Detail != "" {
			return fmt.Sprintf("HTTP error! status: %d: %s", e.Status, e.Detail)
		}
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "transport error"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FormatError means the response arrived but carried no usable code field.
type FormatError struct{}

func (e *FormatError) Error() string {
	return "invalid response format from API - missing code field"
}

// GenerateError is the single failure surfaced by Generate. It wraps either a
// *TransportError or a *FormatError; use errors.As to tell them apart.
type GenerateError struct {
	Err error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("failed to generate code: %v", e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}
