package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staynstray/internal/service"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// TokenVerifier turns a raw bearer token into the caller's identity.
// service.SessionIssuer implements it.
type TokenVerifier interface {
	Verify(raw string) (service.Identity, error)
}

// JWTAuth guards a route with a Bearer access token.  A missing header or
// token yields 401.  A credential under another scheme, or a token that
// does not verify (bad signature, malformed, expired), yields 403.  On success the caller's id (uint64) and email are
// stored under CtxUserID and CtxEmail.
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, raw, ok := credential(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}
			if !strings.EqualFold(scheme, "Bearer") {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
			}

			id, err := v.Verify(raw)
			switch {
			case errors.Is(err, service.ErrMissingCredential):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			case err != nil:
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
			}

			c.Set(CtxUserID, id.UserID)
			c.Set(CtxEmail, id.Email)
			return next(c)
		}
	}
}

// credential splits an "Authorization: <scheme> <token>" header.  ok is
// false when either part is missing.
func credential(header string) (scheme, token string, ok bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", "", false
	}
	token = strings.TrimSpace(token)
	return scheme, token, token != ""
}
