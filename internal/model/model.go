// Package model defines the domain types of the hotel-booking service.
// Rooms, enrollments, tickets, and ticket types are owned by other
// subsystems and are read-only here; bookings are owned by this service.
package model

import "time"

// Ticket status values as written by the ticketing subsystem.
const (
	TicketStatusReserved = "RESERVED" // issued but unpaid
	TicketStatusPaid     = "PAID"
)

// Room is a bookable hotel room.
type Room struct {
	ID        int64     `json:"id"`
	HotelID   int64     `json:"hotelId"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsFull reports whether the given occupancy exhausts the room's capacity.
func (r *Room) IsFull(occupancy int) bool {
	return occupancy >= r.Capacity
}

// Booking is a user's single active room reservation. The JSON shape
// exposes only the id and the embedded room snapshot; ownership and
// timestamps stay internal.
type Booking struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	RoomID    int64     `json:"-"`
	Room      *Room     `json:"Room,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Enrollment is a user's registration record for the event.
type Enrollment struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}

// Ticket is the proof of registration payment status.
type Ticket struct {
	ID           int64
	EnrollmentID int64
	TicketTypeID int64
	Status       string
	CreatedAt    time.Time
}

// IsPaid reports whether the ticket has been paid for.
func (t *Ticket) IsPaid() bool {
	return t.Status == TicketStatusPaid
}

// TicketType controls whether a ticket grants hotel accommodation.
type TicketType struct {
	ID            int64
	Name          string
	IsRemote      bool
	IncludesHotel bool
	CreatedAt     time.Time
}

// GrantsHotel reports whether this ticket type entitles the holder to a room.
func (tt *TicketType) GrantsHotel() bool {
	return !tt.IsRemote && tt.IncludesHotel
}

// BookingRequest is the payload for creating or moving a booking.
// RoomID is a pointer so that an explicit zero id reaches the room lookup
// (and yields 404) instead of being rejected as a missing field.
type BookingRequest struct {
	RoomID *int64 `json:"roomId" validate:"required"`
}

// BookingRoomResponse is the create/update success payload.
type BookingRoomResponse struct {
	RoomID int64 `json:"roomId"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
