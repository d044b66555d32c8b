package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/utils"
)

// UserStore is the credential persistence used by AuthService.
// repository.UserRepo implements it.
type UserStore interface {
	Create(ctx context.Context, firstName, lastName, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthService registers users, checks their passwords and issues tokens.
type AuthService struct {
	users      UserStore
	sessions   *SessionIssuer
	bcryptCost int
}

func NewAuthService(users UserStore, sessions *SessionIssuer, bcryptCost int) *AuthService {
	return &AuthService{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginResult is a freshly issued token and the user it belongs to.
type LoginResult struct {
	Token utils.AccessToken
	User  model.User
}

// Register creates a user.  All four fields are required; names and email
// are trimmed, the password is used as given.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uint64, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return 0, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	id, err := s.users.Create(ctx, in.FirstName, in.LastName, in.Email, in.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return 0, ErrEmailExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// Verify returns the user with email if password matches.  An unknown
// email and a wrong password are reported differently (ErrUserNotFound vs
// ErrInvalidPassword); clients rely on the distinction.
func (s *AuthService) Verify(ctx context.Context, email, password string) (model.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("load user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidPassword
	}
	return u, nil
}

// Login verifies the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.Verify(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	tok, err := s.sessions.Issue(u)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: tok, User: u}, nil
}
