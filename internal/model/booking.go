package model

import (
	"encoding/json"
	"time"
)

// Booking types accepted on the wire. Train is listed so callers can name
// it in errors; it is not bookable.
const (
	BookingTypeHotel  = "hotel"
	BookingTypeFlight = "flight"
	BookingTypeTrain  = "train"
)

// BookingStatusConfirmed is the only status a booking can have. Bookings go
// straight from nonexistent to confirmed.
const BookingStatusConfirmed = "Confirmed"

// Booking mirrors a row of the `bookings` table.
//
// Fields:
//  ID          – generated UUID, exposed as _id.
//  UserID      – owner of the booking; set once at creation.
//  BookingType – hotel or flight.
//  Details     – the submitted request body, stored verbatim.
//  Item        – the booked hotel or flight: the catalog entry when its _id
//                is known, otherwise the embedded object as sent.
//  TotalAmount – price of the embedded item; the request's own
//                totalAmount is ignored.
//  CreatedAt   – creation timestamp (UTC).
//  Status      – always BookingStatusConfirmed.
type Booking struct {
	ID          string          `json:"_id"`
	UserID      uint64          `json:"userId"`
	BookingType string          `json:"bookingType"`
	Details     json.RawMessage `json:"details"`
	Item        json.RawMessage `json:"item"`
	TotalAmount int64           `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	Status      string          `json:"status"`
}
