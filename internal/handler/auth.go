package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staynstray/internal/logger"
	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/service"
)

// AuthHandler serves /api/register and /api/login.
type AuthHandler struct {
	Auth *service.AuthService
	Log  *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &AuthHandler{Auth: auth, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// Register creates an account.  It does not log the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "All fields are required.")
	}
	if err := c.Validate(&req); err != nil {
		h.Log.Debug("register rejected", slog.String("fields", fieldList(err)))
		return message(c, http.StatusBadRequest, "All fields are required.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	_, err := h.Auth.Register(ctx, service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if errors.Is(err, service.ErrValidation) {
		return message(c, http.StatusBadRequest, "All fields are required.")
	}
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return message(c, http.StatusCreated, "User registered successfully.")
}

// Login verifies credentials and returns an access token with the public
// user projection.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return message(c, http.StatusBadRequest, "Email and password are required.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		Token:     res.Token.Token,
		ExpiresAt: res.Token.Exp,
		User:      res.User,
	})
}
