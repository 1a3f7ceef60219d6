package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conferencehub/hotel-booking/internal/model"
)

func enrollment() *model.Enrollment {
	return &model.Enrollment{ID: 10, UserID: 1}
}

func paidTicket() *model.Ticket {
	return &model.Ticket{ID: 20, EnrollmentID: 10, TicketTypeID: 30, Status: model.TicketStatusPaid}
}

func reservedTicket() *model.Ticket {
	t := paidTicket()
	t.Status = model.TicketStatusReserved
	return t
}

func hotelTicketType() *model.TicketType {
	return &model.TicketType{ID: 30, Name: "presential with hotel", IsRemote: false, IncludesHotel: true}
}

func room(capacity int) *model.Room {
	return &model.Room{ID: 40, HotelID: 5, Name: "101", Capacity: capacity}
}

func booking(userID, roomID int64) *model.Booking {
	return &model.Booking{ID: 50, UserID: userID, RoomID: roomID}
}

func eligibleCreateFacts() CreateFacts {
	return CreateFacts{
		Enrollment: enrollment(),
		Ticket:     paidTicket(),
		TicketType: hotelTicketType(),
		Room:       room(3),
		Occupancy:  0,
	}
}

func TestCheckCreate(t *testing.T) {
	remoteType := hotelTicketType()
	remoteType.IsRemote = true

	noHotelType := hotelTicketType()
	noHotelType.IncludesHotel = false

	tests := []struct {
		name       string
		mutate     func(*CreateFacts)
		wantReason Reason
		wantKind   Kind
	}{
		{
			name:   "all rules pass",
			mutate: func(f *CreateFacts) {},
		},
		{
			name:       "user already has a booking",
			mutate:     func(f *CreateFacts) { f.ExistingBooking = booking(1, 40) },
			wantReason: ReasonAlreadyBooked,
			wantKind:   KindForbidden,
		},
		{
			name:       "no enrollment",
			mutate:     func(f *CreateFacts) { f.Enrollment = nil },
			wantReason: ReasonNotEligible,
			wantKind:   KindForbidden,
		},
		{
			name:       "no ticket",
			mutate:     func(f *CreateFacts) { f.Ticket = nil },
			wantReason: ReasonNotEligible,
			wantKind:   KindForbidden,
		},
		{
			name:       "ticket unpaid",
			mutate:     func(f *CreateFacts) { f.Ticket = reservedTicket() },
			wantReason: ReasonNotEligible,
			wantKind:   KindForbidden,
		},
		{
			name:       "ticket type missing",
			mutate:     func(f *CreateFacts) { f.TicketType = nil },
			wantReason: ReasonNotEligible,
			wantKind:   KindForbidden,
		},
		{
			name:       "ticket type remote",
			mutate:     func(f *CreateFacts) { f.TicketType = remoteType },
			wantReason: ReasonNotEligible,
			wantKind:   KindForbidden,
		},
		{
			name:       "ticket type excludes hotel",
			mutate:     func(f *CreateFacts) { f.TicketType = noHotelType },
			wantReason: ReasonNotEligible,
			wantKind:   KindForbidden,
		},
		{
			name:       "room does not exist",
			mutate:     func(f *CreateFacts) { f.Room = nil },
			wantReason: ReasonRoomNotFound,
			wantKind:   KindNotFound,
		},
		{
			name:       "room at capacity",
			mutate:     func(f *CreateFacts) { f.Occupancy = 3 },
			wantReason: ReasonRoomFull,
			wantKind:   KindForbidden,
		},
		{
			name:       "room over capacity",
			mutate:     func(f *CreateFacts) { f.Occupancy = 4 },
			wantReason: ReasonRoomFull,
			wantKind:   KindForbidden,
		},
		{
			name:   "one spot left",
			mutate: func(f *CreateFacts) { f.Occupancy = 2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := eligibleCreateFacts()
			tt.mutate(&facts)

			rej := CheckCreate(facts)
			if tt.wantReason == "" {
				assert.Nil(t, rej)
				return
			}
			require.NotNil(t, rej)
			assert.Equal(t, tt.wantReason, rej.Reason)
			assert.Equal(t, tt.wantKind, rej.Kind)
		})
	}
}

// The first failing rule must win even when several would fail, so the
// client-visible status is deterministic.
func TestCheckCreateShortCircuitOrder(t *testing.T) {
	// Already booked outranks everything, including a missing room.
	rej := CheckCreate(CreateFacts{ExistingBooking: booking(1, 40)})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonAlreadyBooked, rej.Reason)

	// Missing enrollment outranks the missing ticket and room.
	rej = CheckCreate(CreateFacts{})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonNotEligible, rej.Reason)
	assert.Equal(t, KindForbidden, rej.Kind)

	// Unpaid ticket outranks a full room.
	rej = CheckCreate(CreateFacts{
		Enrollment: enrollment(),
		Ticket:     reservedTicket(),
		TicketType: hotelTicketType(),
		Room:       room(0),
	})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonNotEligible, rej.Reason)

	// Missing room outranks occupancy, which is meaningless without a room.
	rej = CheckCreate(CreateFacts{
		Enrollment: enrollment(),
		Ticket:     paidTicket(),
		TicketType: hotelTicketType(),
	})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonRoomNotFound, rej.Reason)
}

func TestCheckUpdate(t *testing.T) {
	tests := []struct {
		name       string
		facts      UpdateFacts
		wantReason Reason
		wantKind   Kind
	}{
		{
			name: "all rules pass",
			facts: UpdateFacts{
				Target:      booking(2, 40),
				UserBooking: booking(1, 41),
				Room:        room(3),
				Occupancy:   2,
			},
		},
		{
			name:       "target booking does not exist",
			facts:      UpdateFacts{UserBooking: booking(1, 41), Room: room(3)},
			wantReason: ReasonBookingNotFound,
			wantKind:   KindNotFound,
		},
		{
			name:       "requester holds no booking",
			facts:      UpdateFacts{Target: booking(2, 40), Room: room(3)},
			wantReason: ReasonNotOwner,
			wantKind:   KindForbidden,
		},
		{
			name:       "room does not exist",
			facts:      UpdateFacts{Target: booking(2, 40), UserBooking: booking(1, 41)},
			wantReason: ReasonRoomNotFound,
			wantKind:   KindNotFound,
		},
		{
			name: "room at capacity",
			facts: UpdateFacts{
				Target:      booking(2, 40),
				UserBooking: booking(1, 41),
				Room:        room(3),
				Occupancy:   3,
			},
			wantReason: ReasonRoomFull,
			wantKind:   KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := CheckUpdate(tt.facts)
			if tt.wantReason == "" {
				assert.Nil(t, rej)
				return
			}
			require.NotNil(t, rej)
			assert.Equal(t, tt.wantReason, rej.Reason)
			assert.Equal(t, tt.wantKind, rej.Kind)
		})
	}
}

// Holding any booking grants move rights over any booking id; the target's
// owner is not checked. This mirrors the behavior shipped today, see
// DESIGN.md before tightening.
func TestCheckUpdateDoesNotVerifyTargetOwner(t *testing.T) {
	rej := CheckUpdate(UpdateFacts{
		Target:      booking(99, 40), // owned by someone else
		UserBooking: booking(1, 41),
		Room:        room(3),
		Occupancy:   0,
	})
	assert.Nil(t, rej)
}
