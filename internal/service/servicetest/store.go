// Package servicetest provides in-memory stores for tests of the service,
// handler and router packages.
package servicetest

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/repository"
	"github.com/iliyamo/staynstray/internal/utils"
)

// UserStore keeps users in a map keyed by exact email.
type UserStore struct {
	mu     sync.Mutex
	nextID uint64
	byMail map[string]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{byMail: make(map[string]model.User)}
}

func (s *UserStore) Create(_ context.Context, firstName, lastName, email, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byMail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	s.nextID++
	s.byMail[email] = model.User{
		ID:           s.nextID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	return s.nextID, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byMail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// Len reports how many users are stored.
func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byMail)
}

// BookingStore keeps bookings in insertion order.
type BookingStore struct {
	mu   sync.Mutex
	rows []model.Booking
	// Err, when set, is returned by every call.
	Err error
}

func NewBookingStore() *BookingStore { return &BookingStore{} }

func (s *BookingStore) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.rows = append(s.rows, *b)
	return nil
}

func (s *BookingStore) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.Booking{}
	for _, b := range s.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Len reports how many bookings are stored across all users.
func (s *BookingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
