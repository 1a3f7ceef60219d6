// Package repository implements all database queries for the booking
// workflow. It uses pgx directly (no ORM) for transparency and performance.
//
// Lookups return (nil, nil) when the row is absent: absence is an input to
// the eligibility rules, not an infrastructure failure. Only real database
// errors are returned as errors.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conferencehub/hotel-booking/internal/model"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so the
// same repository methods run standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the narrow data-access boundary consumed by the booking
// workflow. *BookingRepository is the Postgres implementation; tests
// substitute their own.
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error
	FindBookingByUser(ctx context.Context, userID int64) (*model.Booking, error)
	FindBookingByID(ctx context.Context, id int64) (*model.Booking, error)
	CreateBooking(ctx context.Context, userID, roomID int64) (*model.Booking, error)
	UpdateBooking(ctx context.Context, id, roomID int64) (*model.Booking, error)
	FindRoom(ctx context.Context, id int64) (*model.Room, error)
	FindRoomForUpdate(ctx context.Context, id int64) (*model.Room, error)
	CountBookingsForRoom(ctx context.Context, roomID int64) (int, error)
	FindEnrollment(ctx context.Context, userID int64) (*model.Enrollment, error)
	FindTicket(ctx context.Context, enrollmentID int64) (*model.Ticket, error)
	FindTicketType(ctx context.Context, id int64) (*model.TicketType, error)
}

// BookingRepository handles persistence for bookings and read access to
// rooms, enrollments, tickets, and ticket types.
type BookingRepository struct {
	pool *pgxpool.Pool
	db   Querier
}

// NewBookingRepository constructs a BookingRepository backed by the pool.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool, db: pool}
}

// InTx runs fn against a transaction-bound copy of the repository.
// The transaction commits when fn returns nil and rolls back otherwise.
// FindRoomForUpdate holds its row lock until that commit or rollback,
// which is what serialises concurrent capacity checks on the same room.
func (r *BookingRepository) InTx(ctx context.Context, fn func(tx Store) error) error {
	if r.pool == nil {
		// Already transaction-bound; nesting joins the current transaction.
		return fn(r)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&BookingRepository{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const bookingWithRoomQuery = `
	SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
	       r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at
	FROM bookings b
	JOIN rooms r ON r.id = b.room_id
	WHERE b.user_id = $1
	LIMIT 1`

// FindBookingByUser returns the user's single booking including the full
// room record, or nil when the user has no booking.
func (r *BookingRepository) FindBookingByUser(ctx context.Context, userID int64) (*model.Booking, error) {
	var b model.Booking
	var room model.Room
	err := r.db.QueryRow(ctx, bookingWithRoomQuery, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&room.ID, &room.HotelID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking by user: %w", err)
	}
	b.Room = &room
	return &b, nil
}

// FindBookingByID returns a booking by its primary key, or nil.
func (r *BookingRepository) FindBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, room_id, created_at, updated_at
		 FROM bookings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking by id: %w", err)
	}
	return &b, nil
}

// CreateBooking inserts a new booking for the user.
func (r *BookingRepository) CreateBooking(ctx context.Context, userID, roomID int64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`INSERT INTO bookings (user_id, room_id)
		 VALUES ($1, $2)
		 RETURNING id, user_id, room_id, created_at, updated_at`,
		userID, roomID,
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &b, nil
}

// UpdateBooking reassigns an existing booking's room.
func (r *BookingRepository) UpdateBooking(ctx context.Context, id, roomID int64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`UPDATE bookings
		 SET room_id = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, user_id, room_id, created_at, updated_at`,
		id, roomID,
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return &b, nil
}

const roomQuery = `
	SELECT id, hotel_id, name, capacity, created_at, updated_at
	FROM rooms WHERE id = $1`

// FindRoom returns a room by id, or nil.
func (r *BookingRepository) FindRoom(ctx context.Context, id int64) (*model.Room, error) {
	return r.scanRoom(r.db.QueryRow(ctx, roomQuery, id))
}

// FindRoomForUpdate is FindRoom with an exclusive row lock. It must run
// inside InTx; the lock blocks other FOR UPDATE readers of the same room
// until the surrounding transaction resolves, so an occupancy count taken
// after it cannot go stale before the write commits.
func (r *BookingRepository) FindRoomForUpdate(ctx context.Context, id int64) (*model.Room, error) {
	return r.scanRoom(r.db.QueryRow(ctx, roomQuery+` FOR UPDATE`, id))
}

func (r *BookingRepository) scanRoom(row pgx.Row) (*model.Room, error) {
	var room model.Room
	err := row.Scan(&room.ID, &room.HotelID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return &room, nil
}

// CountBookingsForRoom returns the room's current occupancy.
func (r *BookingRepository) CountBookingsForRoom(ctx context.Context, roomID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = $1`,
		roomID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings for room: %w", err)
	}
	return count, nil
}

// FindEnrollment returns the user's event registration, or nil.
func (r *BookingRepository) FindEnrollment(ctx context.Context, userID int64) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, created_at FROM enrollments WHERE user_id = $1`,
		userID,
	).Scan(&e.ID, &e.UserID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &e, nil
}

// FindTicket returns the enrollment's ticket, or nil.
func (r *BookingRepository) FindTicket(ctx context.Context, enrollmentID int64) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRow(ctx,
		`SELECT id, enrollment_id, ticket_type_id, status, created_at
		 FROM tickets WHERE enrollment_id = $1
		 LIMIT 1`,
		enrollmentID,
	).Scan(&t.ID, &t.EnrollmentID, &t.TicketTypeID, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &t, nil
}

// FindTicketType returns a ticket type by id, or nil.
func (r *BookingRepository) FindTicketType(ctx context.Context, id int64) (*model.TicketType, error) {
	var tt model.TicketType
	err := r.db.QueryRow(ctx,
		`SELECT id, name, is_remote, includes_hotel, created_at
		 FROM ticket_types WHERE id = $1`,
		id,
	).Scan(&tt.ID, &tt.Name, &tt.IsRemote, &tt.IncludesHotel, &tt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket type: %w", err)
	}
	return &tt, nil
}
