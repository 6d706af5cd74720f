// Package service holds the authentication and reservation workflows.  The
// services return *Error values so the HTTP layer can pick a status code
// without inspecting messages.
package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service error.
type Kind int

const (
	KindInternal   Kind = iota // unexpected store or runtime failure
	KindValidation             // malformed or missing input
	KindAuth                   // missing, invalid or expired session; bad credentials
	KindForbidden              // authenticated but not an admin
	KindNotFound               // referenced record does not exist
	KindConflict               // unique field already taken
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "internal"
}

// Error is the error type returned by every service operation.  Message is
// safe to show to clients; Err, when set, is the underlying cause and is
// only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func ErrValidation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func ErrAuth(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func ErrForbidden(msg string) *Error  { return &Error{Kind: KindForbidden, Message: msg} }
func ErrNotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func ErrConflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// ErrInternal wraps cause as an opaque internal failure.
func ErrInternal(op string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: op, Err: cause}
}

// KindOf reports the Kind of err.  Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Messages shared between the services and the access-control middleware.
const (
	MsgLoginRequired   = "Please login to access this resource"
	MsgLoginFirst      = "Please login first"
	MsgInvalidToken    = "Invalid or expired token"
	MsgBadCredentials  = "Invalid email or password"
	MsgAdminRequired   = "Access denied. Admin privileges required."
	MsgMissingFields   = "Please fill all fields"
	MsgMissingLogin    = "Please provide email and password"
	MsgEmailTaken      = "User already exists with this email"
	MsgMissingSlot     = "Please provide date and time!"
	MsgInvalidStatus   = "Invalid status. Must be pending, accepted, or declined"
	MsgReservationGone = "Reservation not found"
)
