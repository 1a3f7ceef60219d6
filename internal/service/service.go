// Package service implements the booking workflow: it sequences store
// reads, runs them through the pure eligibility rules, and performs the
// single create-or-update mutation.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/conferencehub/hotel-booking/internal/model"
	"github.com/conferencehub/hotel-booking/internal/monitoring"
	"github.com/conferencehub/hotel-booking/internal/repository"
)

// BookingService orchestrates booking operations against the store.
type BookingService struct {
	store repository.Store
}

// NewBookingService constructs a BookingService.
func NewBookingService(store repository.Store) *BookingService {
	return &BookingService{store: store}
}

// GetBooking returns the user's booking including the room snapshot.
func (s *BookingService) GetBooking(ctx context.Context, userID int64) (*model.Booking, error) {
	booking, err := s.store.FindBookingByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, notFound(ReasonNoBooking, "user has no booking")
	}
	return booking, nil
}

// CreateBooking books the room for the user if every eligibility rule
// passes. The whole read-evaluate-write sequence runs in one transaction
// with the target room locked, so two concurrent requests for the last
// spot in a room serialise and the loser sees the winner's booking.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID int64) (*model.Booking, error) {
	var created *model.Booking
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var facts CreateFacts
		var err error

		if facts.ExistingBooking, err = tx.FindBookingByUser(ctx, userID); err != nil {
			return err
		}
		if facts.Enrollment, err = tx.FindEnrollment(ctx, userID); err != nil {
			return err
		}
		if facts.Enrollment != nil {
			if facts.Ticket, err = tx.FindTicket(ctx, facts.Enrollment.ID); err != nil {
				return err
			}
		}
		if facts.Ticket != nil {
			if facts.TicketType, err = tx.FindTicketType(ctx, facts.Ticket.TicketTypeID); err != nil {
				return err
			}
		}
		if facts.Room, err = tx.FindRoomForUpdate(ctx, roomID); err != nil {
			return err
		}
		if facts.Room != nil {
			if facts.Occupancy, err = tx.CountBookingsForRoom(ctx, roomID); err != nil {
				return err
			}
		}

		if rej := CheckCreate(facts); rej != nil {
			return rej
		}

		created, err = tx.CreateBooking(ctx, userID, roomID)
		return err
	})
	if err != nil {
		return nil, s.classify(err, "create booking")
	}
	monitoring.BookingsCreated.Inc()
	return created, nil
}

// UpdateBooking moves a booking to another room if every eligibility rule
// passes. Same transactional shape as CreateBooking.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, roomID, bookingID int64) (*model.Booking, error) {
	var updated *model.Booking
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var facts UpdateFacts
		var err error

		if facts.Target, err = tx.FindBookingByID(ctx, bookingID); err != nil {
			return err
		}
		if facts.UserBooking, err = tx.FindBookingByUser(ctx, userID); err != nil {
			return err
		}
		if facts.Room, err = tx.FindRoomForUpdate(ctx, roomID); err != nil {
			return err
		}
		if facts.Room != nil {
			if facts.Occupancy, err = tx.CountBookingsForRoom(ctx, roomID); err != nil {
				return err
			}
		}

		if rej := CheckUpdate(facts); rej != nil {
			return rej
		}

		updated, err = tx.UpdateBooking(ctx, bookingID, roomID)
		return err
	})
	if err != nil {
		return nil, s.classify(err, "update booking")
	}
	monitoring.BookingsMoved.Inc()
	return updated, nil
}

// classify surfaces business rejections as-is (recording them) and wraps
// everything else so handlers treat it as an internal failure.
func (s *BookingService) classify(err error, op string) error {
	var rej *Error
	if errors.As(err, &rej) {
		monitoring.EligibilityRejections.WithLabelValues(string(rej.Reason)).Inc()
		return rej
	}
	return fmt.Errorf("%s: %w", op, err)
}
