package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/staynstray/internal/catalog"
	"github.com/iliyamo/staynstray/internal/logger"
	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/queue"
)

// BookingStore persists bookings. repository.BookingRepo implements it.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// EventPublisher announces confirmed bookings. queue.Publisher implements it.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

const publishTimeout = 3 * time.Second

// BookingService records bookings and lists them back to their owners.
type BookingService struct {
	store          BookingStore
	inventory      catalog.Inventory
	events         EventPublisher
	log            *slog.Logger
	now            func() time.Time
	newID          func() string
	catalogPricing bool
}

type BookingOption func(*BookingService)

// WithEvents publishes a booking.confirmed event after each booking.
func WithEvents(p EventPublisher) BookingOption {
	return func(s *BookingService) { s.events = p }
}

func WithBookingLogger(l *slog.Logger) BookingOption {
	return func(s *BookingService) { s.log = l }
}

func WithBookingClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

func WithIDGenerator(f func() string) BookingOption {
	return func(s *BookingService) { s.newID = f }
}

// WithCatalogPricing prices bookings from the catalog instead of the
// embedded item.  The embedded item must then carry a known _id; an
// unknown one fails with ErrItemNotFound.
func WithCatalogPricing() BookingOption {
	return func(s *BookingService) { s.catalogPricing = true }
}

func NewBookingService(store BookingStore, inv catalog.Inventory, opts ...BookingOption) *BookingService {
	s := &BookingService{
		store:     store,
		inventory: inv,
		log:       logger.Discard(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// bookingRequest is the part of the request body the service reads. The
// whole body is kept as the verbatim details.
type bookingRequest struct {
	BookingType string          `json:"bookingType"`
	Hotel       json.RawMessage `json:"hotel"`
	Flight      json.RawMessage `json:"flight"`
}

// embeddedItem is the hotel or flight object sent with the booking.
type embeddedItem struct {
	ID      string          `json:"_id"`
	Name    string          `json:"name"`
	Airline string          `json:"airline"`
	Price   json.RawMessage `json:"price"`
}

// resolved is the item a booking is priced from and snapshotted as.
type resolved struct {
	id    string
	name  string
	price int64
	snap  json.RawMessage
}

// Create records a confirmed booking owned by caller.  The total is the
// price of the embedded hotel or flight (or its catalog price with
// WithCatalogPricing); a client totalAmount is ignored.
func (s *BookingService) Create(ctx context.Context, caller Identity, raw []byte) (*model.Booking, error) {
	var req bookingRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: malformed booking request", ErrValidation)
	}

	bookingType := strings.TrimSpace(req.BookingType)
	if bookingType == "" {
		return nil, fmt.Errorf("%w: bookingType is required", ErrValidation)
	}

	var (
		item resolved
		err  error
	)
	switch bookingType {
	case model.BookingTypeHotel:
		item, err = s.resolve(ctx, bookingType, req.Hotel)
	case model.BookingTypeFlight:
		item, err = s.resolve(ctx, bookingType, req.Flight)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedBookingType, bookingType)
	}
	if err != nil {
		return nil, err
	}

	b := &model.Booking{
		ID:          s.newID(),
		UserID:      caller.UserID,
		BookingType: bookingType,
		Details:     json.RawMessage(append([]byte(nil), raw...)),
		Item:        item.snap,
		TotalAmount: item.price,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
		Status:      model.BookingStatusConfirmed,
	}
	if err := s.store.Create(ctx, b); err != nil {
		s.log.Error("booking insert failed", slog.Uint64("user_id", caller.UserID), logger.Err(err))
		return nil, fmt.Errorf("%w: save booking: %w", ErrServer, err)
	}

	s.publish(ctx, caller, b, item)
	return b, nil
}

// resolve decodes the embedded object of kind and picks its price and
// snapshot.  A catalog item with the same _id replaces the embedded
// object as the snapshot; the price still comes from the embedded object
// unless catalog pricing is on.
func (s *BookingService) resolve(ctx context.Context, kind string, raw json.RawMessage) (resolved, error) {
	var emb embeddedItem
	if len(raw) == 0 || string(raw) == "null" || raw[0] != '{' {
		return resolved{}, fmt.Errorf("%w: %s is required", ErrValidation, kind)
	}
	if err := json.Unmarshal(raw, &emb); err != nil {
		return resolved{}, fmt.Errorf("%w: malformed %s", ErrValidation, kind)
	}
	emb.ID = strings.TrimSpace(emb.ID)

	item := resolved{id: emb.ID, name: emb.Name, snap: append(json.RawMessage(nil), raw...)}
	if kind == model.BookingTypeFlight {
		item.name = emb.Airline
	}

	found, err := s.lookup(ctx, kind, emb.ID)
	switch {
	case err == nil:
		item.name, item.snap = found.name, found.snap
	case errors.Is(err, catalog.ErrNotFound) && !s.catalogPricing:
	case errors.Is(err, catalog.ErrNotFound):
		if emb.ID == "" {
			return resolved{}, fmt.Errorf("%w: %s._id is required", ErrValidation, kind)
		}
		return resolved{}, fmt.Errorf("%w: %s %s", ErrItemNotFound, kind, emb.ID)
	default:
		return resolved{}, fmt.Errorf("%w: find %s: %w", ErrServer, kind, err)
	}

	if s.catalogPricing {
		item.price = found.price
		return item, nil
	}
	price, err := parsePrice(emb.Price)
	if err != nil {
		return resolved{}, fmt.Errorf("%w: %s.price %v", ErrValidation, kind, err)
	}
	item.price = price
	return item, nil
}

// lookup finds id in the catalog.  An empty id is reported as not found.
func (s *BookingService) lookup(ctx context.Context, kind, id string) (resolved, error) {
	if id == "" {
		return resolved{}, catalog.ErrNotFound
	}
	var (
		found resolved
		snap  any
	)
	switch kind {
	case model.BookingTypeHotel:
		h, err := s.inventory.FindHotel(ctx, id)
		if err != nil {
			return resolved{}, err
		}
		found, snap = resolved{id: h.ID, name: h.Name, price: h.Price}, h
	default:
		f, err := s.inventory.FindFlight(ctx, id)
		if err != nil {
			return resolved{}, err
		}
		name := fmt.Sprintf("%s %s-%s", f.Airline, f.From.Code, f.To.Code)
		found, snap = resolved{id: f.ID, name: name, price: f.Price}, f
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return resolved{}, err
	}
	found.snap = b
	return found, nil
}

// parsePrice accepts a non-negative JSON number with no fractional part.
func parsePrice(raw json.RawMessage) (int64, error) {
	v := strings.TrimSpace(string(raw))
	if v == "" || v == "null" {
		return 0, errors.New("is required")
	}
	if v[0] != '-' && (v[0] < '0' || v[0] > '9') {
		return 0, errors.New("must be a number")
	}
	n := json.Number(v)
	if i, err := n.Int64(); err == nil {
		if i < 0 {
			return 0, errors.New("must not be negative")
		}
		return i, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < 0 || f > math.MaxInt64 {
		return 0, errors.New("must be a whole non-negative amount")
	}
	return int64(f), nil
}

// publish is best effort: the booking is already committed, so failures
// are only logged.
func (s *BookingService) publish(ctx context.Context, caller Identity, b *model.Booking, item resolved) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		UserEmail:   caller.Email,
		BookingType: b.BookingType,
		ItemID:      item.id,
		ItemName:    item.name,
		TotalAmount: b.TotalAmount,
		ConfirmedAt: b.CreatedAt.Format(time.RFC3339),
	}
	if err := s.events.PublishBookingConfirmed(ctx, ev); err != nil {
		s.log.Warn("booking event not published", slog.String("booking_id", b.ID), logger.Err(err))
	}
}

// ListForUser returns the caller's bookings in the order they were made.
func (s *BookingService) ListForUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	list, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", ErrServer, err)
	}
	if list == nil {
		list = []model.Booking{}
	}
	return list, nil
}
