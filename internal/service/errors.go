package service

import "fmt"

// Kind classifies a business error for the HTTP boundary.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
)

// Reason identifies which rule rejected the request.
type Reason string

const (
	ReasonAlreadyBooked   Reason = "ALREADY_BOOKED"
	ReasonNotEligible     Reason = "NOT_ELIGIBLE"
	ReasonRoomNotFound    Reason = "ROOM_NOT_FOUND"
	ReasonRoomFull        Reason = "ROOM_FULL"
	ReasonBookingNotFound Reason = "BOOKING_NOT_FOUND"
	ReasonNotOwner        Reason = "NOT_OWNER"
	ReasonNoBooking       Reason = "NO_BOOKING"
)

// Error is a business-rule rejection. Store and other infrastructure
// failures are never represented as *Error; handlers treat any other error
// as internal.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func notFound(reason Reason, msg string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Message: msg}
}

func forbidden(reason Reason, msg string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason, Message: msg}
}
