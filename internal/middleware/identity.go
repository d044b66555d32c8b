package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staynstray/internal/service"
)

// Identity returns the caller stored by JWTAuth.  ok is false on routes
// that are not behind JWTAuth.
func Identity(c echo.Context) (service.Identity, bool) {
	uid, ok := c.Get(CtxUserID).(uint64)
	if !ok || uid == 0 {
		return service.Identity{}, false
	}
	email, _ := c.Get(CtxEmail).(string)
	return service.Identity{UserID: uid, Email: email}, true
}
