package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/staynstray/internal/model"
)

var bookingColumns = []string{"id", "user_id", "booking_type", "details", "item", "total_amount", "status", "created_at"}

func TestBookingRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	b := &model.Booking{
		ID:          "0b6c6f7e-1111-4222-8333-944455556666",
		UserID:      3,
		BookingType: model.BookingTypeHotel,
		Details:     json.RawMessage(`{"bookingType":"hotel"}`),
		Item:        json.RawMessage(`{"_id":"h1","price":100}`),
		TotalAmount: 100,
		Status:      model.BookingStatusConfirmed,
		CreatedAt:   now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(b.ID, sqlmock.AnyArg(), "hotel", []byte(b.Details), []byte(b.Item), sqlmock.AnyArg(), "Confirmed", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Create_Error(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	boom := errors.New("disk full")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).WillReturnError(boom)

	err := repo.Create(context.Background(), &model.Booking{ID: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestBookingRepo_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow("b1", int64(3), "hotel", []byte(`{"a":1}`), []byte(`{"_id":"h1"}`), int64(100), "Confirmed", t1).
			AddRow("b2", int64(3), "flight", []byte(`{"a":2}`), []byte(`{"_id":"f1"}`), int64(250), "Confirmed", t2))

	got, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "b2", got[1].ID)
	assert.Equal(t, uint64(3), got[1].UserID)
	assert.JSONEq(t, `{"a":2}`, string(got[1].Details))
	assert.JSONEq(t, `{"_id":"f1"}`, string(got[1].Item))
	assert.Equal(t, int64(250), got[1].TotalAmount)
	assert.Equal(t, t2, got[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_DetailsVerbatim(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	details := []byte("{ \"totalAmount\":1,\n  \"bookingType\" : \"hotel\", \"hotel\":{\"price\":100} }")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs("b1", sqlmock.AnyArg(), "hotel", details, sqlmock.AnyArg(), sqlmock.AnyArg(), "Confirmed", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow("b1", int64(3), "hotel", details, []byte(`{"price":100}`), int64(100), "Confirmed", now))

	require.NoError(t, repo.Create(context.Background(), &model.Booking{
		ID:          "b1",
		UserID:      3,
		BookingType: model.BookingTypeHotel,
		Details:     json.RawMessage(details),
		Item:        json.RawMessage(`{"price":100}`),
		TotalAmount: 100,
		Status:      model.BookingStatusConfirmed,
		CreatedAt:   now,
	}))
	got, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, string(details), string(got[0].Details))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_ListByUser_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	got, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBookingRepo_ListByUser_QueryError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).WillReturnError(errors.New("gone"))

	_, err := repo.ListByUser(context.Background(), 1)
	assert.Error(t, err)
}
