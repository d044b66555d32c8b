// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingQueueName is the durable queue booking events are routed to.
const BookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published when a booking is stored.  It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   string `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	UserEmail   string `json:"user_email"`
	BookingType string `json:"booking_type"`
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	TotalAmount int64  `json:"total_amount"`
	ConfirmedAt string `json:"confirmed_at"`
}
