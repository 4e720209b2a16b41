package geoapi

import (
	"errors"
	"fmt"
)

// Kind categorizes client failures so the caller can pick a reaction
// without string matching.
type Kind int

const (
	// KindNetwork is a transport or connectivity failure.
	KindNetwork Kind = iota
	// KindAPI is a non-success HTTP status from the provider.
	KindAPI
	// KindNotFound means a geocode query matched nothing.
	KindNotFound
)

// Error is a typed client error.
type Error struct {
	Kind    Kind
	Op      string // operation that failed: "geocode", "map", "places"
	Status  int    // HTTP status for KindAPI, zero otherwise
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func netErr(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Message: "request failed", Err: err}
}

func apiErr(op string, status int, body string) *Error {
	return &Error{Kind: KindAPI, Op: op, Status: status, Message: body}
}

func notFoundErr(op, query string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf("nothing found for %q", query)}
}

// KindOf extracts the kind of a client error, KindNetwork for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNetwork
}
