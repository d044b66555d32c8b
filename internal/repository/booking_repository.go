package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/staynstray/internal/model"
)

// BookingRepo stores bookings in the `bookings` table.  Each booking is a
// single row; the request body and the catalog snapshot live in JSON
// columns.  The auto-increment seq column records insertion order and is
// never exposed.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts b in one statement.  The caller supplies every field,
// including the generated ID and creation time.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (id, user_id, booking_type, details, item, total_amount, status, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.UserID, b.BookingType, []byte(b.Details), []byte(b.Item),
		b.TotalAmount, b.Status, b.CreatedAt)
	return err
}

// ListByUser returns all bookings owned by userID, oldest first.  The
// result is never nil so it serializes as an empty JSON array.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT id, user_id, booking_type, details, item, total_amount, status, created_at
               FROM bookings
               WHERE user_id = ?
               ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var (
			b             model.Booking
			details, item []byte
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.BookingType, &details, &item,
			&b.TotalAmount, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Details, b.Item = details, item
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
