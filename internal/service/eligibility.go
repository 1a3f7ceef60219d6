package service

import "github.com/conferencehub/hotel-booking/internal/model"

// CreateFacts is everything the create-eligibility rules look at. Nil
// pointers mean the record does not exist; Occupancy is the target room's
// current booking count.
type CreateFacts struct {
	ExistingBooking *model.Booking
	Enrollment      *model.Enrollment
	Ticket          *model.Ticket
	TicketType      *model.TicketType
	Room            *model.Room
	Occupancy       int
}

// CheckCreate decides whether a new booking may be created. It is pure:
// no I/O, no mutation. Rules run in a fixed order and the first failing
// rule determines the rejection, so a caller can distinguish "not
// registered" from "room full" from "room not found".
func CheckCreate(f CreateFacts) *Error {
	if f.ExistingBooking != nil {
		return forbidden(ReasonAlreadyBooked, "user already has a booking")
	}
	if f.Enrollment == nil {
		return forbidden(ReasonNotEligible, "user is not enrolled in the event")
	}
	if f.Ticket == nil || !f.Ticket.IsPaid() {
		return forbidden(ReasonNotEligible, "ticket is missing or unpaid")
	}
	if f.TicketType == nil || !f.TicketType.GrantsHotel() {
		return forbidden(ReasonNotEligible, "ticket does not include hotel accommodation")
	}
	if f.Room == nil {
		return notFound(ReasonRoomNotFound, "room does not exist")
	}
	if f.Room.IsFull(f.Occupancy) {
		return forbidden(ReasonRoomFull, "room is at capacity")
	}
	return nil
}

// UpdateFacts is everything the update-eligibility rules look at.
type UpdateFacts struct {
	Target      *model.Booking
	UserBooking *model.Booking
	Room        *model.Room
	Occupancy   int
}

// CheckUpdate decides whether a booking may be moved to another room.
// The ownership rule only requires the requester to hold some booking;
// it does not verify the target booking is theirs.
func CheckUpdate(f UpdateFacts) *Error {
	if f.Target == nil {
		return notFound(ReasonBookingNotFound, "booking does not exist")
	}
	if f.UserBooking == nil {
		return forbidden(ReasonNotOwner, "user holds no booking")
	}
	if f.Room == nil {
		return notFound(ReasonRoomNotFound, "room does not exist")
	}
	if f.Room.IsFull(f.Occupancy) {
		return forbidden(ReasonRoomFull, "room is at capacity")
	}
	return nil
}
