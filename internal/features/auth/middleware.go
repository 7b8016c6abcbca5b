package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/apperror"
	"github.com/codexlibris/bookshop/internal/token"
)

// Context keys for storing identity claims in the Echo context. Other
// features access them via the exported getter functions below.
const (
	contextKeyClaims = "auth_claims"
	contextKeyUserID = "auth_user_id"
)

// RequireAuth returns middleware that validates the Authorization bearer
// token and injects the identity claims into the request context. Requests
// without a valid, unrevoked token get 401.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := bearerToken(c)
			if tokenStr == "" {
				return apperror.NewUnauthorized("no token provided")
			}

			claims, err := service.VerifySession(c.Request().Context(), tokenStr)
			if err != nil {
				return err
			}

			c.Set(contextKeyClaims, claims)
			c.Set(contextKeyUserID, claims.UserID)

			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// CurrentClaims returns the verified identity claims for the request, or
// nil when the route is not behind RequireAuth.
func CurrentClaims(c echo.Context) *token.Claims {
	claims, _ := c.Get(contextKeyClaims).(*token.Claims)
	return claims
}

// CurrentUserID returns the authenticated user's ID, or "" when the route
// is not behind RequireAuth.
func CurrentUserID(c echo.Context) string {
	id, _ := c.Get(contextKeyUserID).(string)
	return id
}
