package http

import (
	"net/http"
	"strings"

	"bibdelivery/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// requireIdentity resolves the Authorization header into an auth.Identity
// before any business logic runs. Missing or invalid tokens yield 401.
// Identity claims supplied in request bodies are never trusted.
func (s *Server) requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Missing bearer token",
			})
		}

		identity, err := s.tokens.Verify(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired token",
			})
		}

		c.Set(identityContextKey, identity)
		return next(c)
	}
}

// identityFrom reads the identity the middleware stored on the context.
func identityFrom(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(auth.Identity)
	return identity, ok
}
