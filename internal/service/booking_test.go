package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/staynstray/internal/catalog"
	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/queue"
	"github.com/iliyamo/staynstray/internal/service/servicetest"
)

const (
	boutiqueID = "665f1c2a9b1e4a0001a10002"
	flightID   = "665f1c2a9b1e4a0001b20001"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func newBookings(t *testing.T, opts ...BookingOption) (*BookingService, *servicetest.BookingStore) {
	t.Helper()
	inv, err := catalog.Default()
	require.NoError(t, err)
	store := servicetest.NewBookingStore()
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	opts = append([]BookingOption{WithBookingClock(clock)}, opts...)
	return NewBookingService(store, inv, opts...), store
}

var ada1 = Identity{UserID: 1, Email: "ada@example.com"}

func TestBookingService_CreateHotel(t *testing.T) {
	svc, store := newBookings(t, WithIDGenerator(func() string { return "b-1" }))

	raw := []byte(`{"bookingType":"hotel","hotel":{"_id":"` + boutiqueID + `","price":100},"totalAmount":1,"checkIn":"2025-07-01"}`)
	b, err := svc.Create(context.Background(), ada1, raw)
	require.NoError(t, err)

	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, uint64(1), b.UserID)
	assert.Equal(t, model.BookingTypeHotel, b.BookingType)
	assert.Equal(t, int64(100), b.TotalAmount)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), b.CreatedAt)
	assert.JSONEq(t, string(raw), string(b.Details))

	var item model.Hotel
	require.NoError(t, json.Unmarshal(b.Item, &item))
	assert.Equal(t, "Boutique Central Hotel", item.Name)
	assert.Equal(t, int64(14999), item.Price)

	assert.Equal(t, 1, store.Len())
}

func TestBookingService_CreateEmbeddedOnly(t *testing.T) {
	svc, store := newBookings(t)

	raw := []byte(`{"bookingType":"hotel","hotel":{"price":100},"totalAmount":1}`)
	b, err := svc.Create(context.Background(), ada1, raw)
	require.NoError(t, err)
	assert.Equal(t, int64(100), b.TotalAmount)
	assert.JSONEq(t, `{"price":100}`, string(b.Item))
	assert.Equal(t, string(raw), string(b.Details))

	stored, err := store.ListByUser(context.Background(), ada1.UserID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, int64(100), stored[0].TotalAmount)
}

func TestBookingService_CreateFlight(t *testing.T) {
	svc, _ := newBookings(t)

	b, err := svc.Create(context.Background(), ada1,
		[]byte(`{"bookingType":"flight","flight":{"_id":"`+flightID+`","airline":"SkyJet","price":32000.0}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(32000), b.TotalAmount)
	assert.Equal(t, model.BookingTypeFlight, b.BookingType)
	assert.NotEmpty(t, b.ID)

	var item model.Flight
	require.NoError(t, json.Unmarshal(b.Item, &item))
	assert.Equal(t, flightID, item.ID)
}

func TestBookingService_CreateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"malformed", `{"bookingType":`, ErrValidation},
		{"array body", `[]`, ErrValidation},
		{"missing type", `{"hotel":{"price":100}}`, ErrValidation},
		{"missing hotel", `{"bookingType":"hotel","totalAmount":100}`, ErrValidation},
		{"null hotel", `{"bookingType":"hotel","hotel":null}`, ErrValidation},
		{"hotel not an object", `{"bookingType":"hotel","hotel":100}`, ErrValidation},
		{"missing price", `{"bookingType":"hotel","hotel":{"_id":"` + boutiqueID + `"}}`, ErrValidation},
		{"null price", `{"bookingType":"hotel","hotel":{"price":null}}`, ErrValidation},
		{"string price", `{"bookingType":"hotel","hotel":{"price":"100"}}`, ErrValidation},
		{"negative price", `{"bookingType":"hotel","hotel":{"price":-5}}`, ErrValidation},
		{"fractional price", `{"bookingType":"hotel","hotel":{"price":99.5}}`, ErrValidation},
		{"missing flight", `{"bookingType":"flight","hotel":{"price":100}}`, ErrValidation},
		{"train", `{"bookingType":"train","train":{"_id":"665f1c2a9b1e4a0001c30001","price":100}}`, ErrUnsupportedBookingType},
		{"unknown type", `{"bookingType":"car"}`, ErrUnsupportedBookingType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newBookings(t)
			_, err := svc.Create(context.Background(), ada1, []byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, store.Len())
		})
	}
}

func TestBookingService_CatalogPricing(t *testing.T) {
	svc, store := newBookings(t, WithCatalogPricing())

	b, err := svc.Create(context.Background(), ada1,
		[]byte(`{"bookingType":"hotel","hotel":{"_id":"`+boutiqueID+`","price":1},"totalAmount":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(14999), b.TotalAmount)

	b, err = svc.Create(context.Background(), ada1, []byte(`{"bookingType":"hotel","hotel":{"_id":"`+boutiqueID+`"}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(14999), b.TotalAmount)
	assert.Equal(t, 2, store.Len())

	tests := []struct {
		name string
		body string
		want error
	}{
		{"missing id", `{"bookingType":"hotel","hotel":{"price":100}}`, ErrValidation},
		{"unknown hotel", `{"bookingType":"hotel","hotel":{"_id":"nope","price":100}}`, ErrItemNotFound},
		{"flight id under hotel", `{"bookingType":"hotel","hotel":{"_id":"` + flightID + `"}}`, ErrItemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ada1, []byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 2, store.Len())
}

func TestParsePrice(t *testing.T) {
	for raw, want := range map[string]int64{"0": 0, "100": 100, "14999": 14999, "1e3": 1000, "250.00": 250} {
		got, err := parsePrice(json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "null", `"100"`, "true", "-1", "0.01", "{}"} {
		_, err := parsePrice(json.RawMessage(raw))
		assert.Error(t, err, raw)
	}
}

func TestBookingService_StoreFailure(t *testing.T) {
	svc, store := newBookings(t)
	store.Err = errors.New("disk full")

	_, err := svc.Create(context.Background(), ada1, []byte(`{"bookingType":"hotel","hotel":{"_id":"`+boutiqueID+`","price":100}}`))
	assert.ErrorIs(t, err, ErrServer)

	_, err = svc.ListForUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServer)
}

func TestBookingService_Publishes(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("PublishBookingConfirmed", mock.Anything, mock.MatchedBy(func(ev queue.BookingConfirmedEvent) bool {
		return ev.BookingID == "b-7" &&
			ev.UserEmail == "ada@example.com" &&
			ev.ItemID == boutiqueID &&
			ev.ItemName == "Boutique Central Hotel" &&
			ev.TotalAmount == 14999 &&
			ev.ConfirmedAt == "2025-06-01T12:00:00Z"
	})).Return(nil).Once()

	svc, _ := newBookings(t, WithEvents(pub), WithIDGenerator(func() string { return "b-7" }))
	_, err := svc.Create(context.Background(), ada1, []byte(`{"bookingType":"hotel","hotel":{"_id":"`+boutiqueID+`","price":14999}}`))
	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestBookingService_PublishFailureKeepsBooking(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("PublishBookingConfirmed", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc, store := newBookings(t, WithEvents(pub))
	b, err := svc.Create(context.Background(), ada1, []byte(`{"bookingType":"hotel","hotel":{"name":"Harbour Inn","price":9000}}`))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.Equal(t, 1, store.Len())
	pub.AssertNumberOfCalls(t, "PublishBookingConfirmed", 1)
}

func TestBookingService_ListForUser(t *testing.T) {
	n := 0
	svc, _ := newBookings(t, WithIDGenerator(func() string {
		n++
		return []string{"a", "b", "c"}[n-1]
	}))
	ctx := context.Background()
	bob := Identity{UserID: 2, Email: "bob@example.com"}
	hotel := []byte(`{"bookingType":"hotel","hotel":{"_id":"` + boutiqueID + `","price":14999}}`)
	flight := []byte(`{"bookingType":"flight","flight":{"_id":"` + flightID + `","price":32000}}`)

	_, err := svc.Create(ctx, ada1, hotel)
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, hotel)
	require.NoError(t, err)
	_, err = svc.Create(ctx, ada1, flight)
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, ada1.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].ID)
	assert.Equal(t, "c", mine[1].ID)

	none, err := svc.ListForUser(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
