package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"khabarkhana/internal/errors"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
)

const (
	// ContextUserKey is where the resolved identity lives on the request context.
	ContextUserKey = "currentUser"
	// AccessTokenCookie carries the access token; the Authorization header is the fallback.
	AccessTokenCookie = "accessToken"
)

// Middleware resolves identities and enforces role checks after token validation.
type Middleware struct {
	jwtService *JWTService
	users      repository.UserRepository
}

// NewMiddleware creates the guard middleware.
func NewMiddleware(jwtService *JWTService, users repository.UserRepository) *Middleware {
	return &Middleware{jwtService: jwtService, users: users}
}

// ResolveUser runs after echo-jwt has validated the token. It loads the user
// the claims point at and attaches it to the context with credential fields
// stripped. A token for a user that no longer exists is rejected.
func (m *Middleware) ResolveUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return unauthorized("unauthorized request")
		}
		claims, ok := token.Claims.(*AccessClaims)
		if !ok {
			return unauthorized("invalid access token")
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return unauthorized("invalid access token")
		}
		user.PasswordHash = ""
		user.RefreshToken = ""

		c.Set(ContextUserKey, user)
		return next(c)
	}
}

// ResolveOptionalUser attaches an identity when a valid token is present and
// continues anonymously otherwise. Used on public reads that personalize
// (reading history) without requiring login.
func (m *Middleware) ResolveOptionalUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return next(c)
		}
		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			return next(c)
		}
		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return next(c)
		}
		user.PasswordHash = ""
		user.RefreshToken = ""

		c.Set(ContextUserKey, user)
		return next(c)
	}
}

// RequireAdmin rejects non-admin identities. Must run after ResolveUser.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.Role.IsAdmin() {
			return forbidden("access denied, admin rights required", "ADMIN_REQUIRED")
		}
		return next(c)
	}
}

// RequirePublisher rejects identities outside the publish-capable role set.
// Must run after ResolveUser.
func RequirePublisher(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.Role.CanPublish() {
			return forbidden("access denied, you cannot publish articles", "PUBLISH_RIGHTS_REQUIRED")
		}
		return next(c)
	}
}

// CurrentUser returns the identity resolved by the guard chain, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

// extractToken prefers the cookie-carried token, falling back to the
// Authorization header.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(header, "Bearer ")
}

func unauthorized(msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: msg,
		Code:  "UNAUTHORIZED",
	})
}

func forbidden(msg, code string) error {
	return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
		Error: msg,
		Code:  code,
	})
}
