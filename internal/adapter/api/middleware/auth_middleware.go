package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"dukkan/internal/domain/entity"
	"dukkan/internal/usecase"
	"dukkan/pkg/errors"
	"dukkan/pkg/response"
)

const (
	contextUser = "user"
	contextUID  = "uid"
)

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		user, err := m.authUseCase.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		SetUser(c, user)
		return next(c)
	}
}

// OptionalAuth attaches the user when a valid token is present and carries on anonymously
// otherwise.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, ok := bearerToken(c); ok {
			if user, err := m.authUseCase.Authenticate(c.Request().Context(), token); err == nil {
				SetUser(c, user)
			}
		}
		return next(c)
	}
}

// QueryToken authenticates from the token query parameter, for websocket upgrades that
// cannot carry headers.
func (m *AuthMiddleware) QueryToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			var ok bool
			if token, ok = bearerToken(c); !ok {
				return response.Error(c, errors.Unauthorized("Token is required", nil))
			}
		}

		user, err := m.authUseCase.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		SetUser(c, user)
		return next(c)
	}
}

func SetUser(c echo.Context, user *entity.User) {
	c.Set(contextUser, user)
	c.Set(contextUID, user.ID)
}

// CurrentUser returns the authenticated user, or nil on anonymous routes.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(contextUser).(*entity.User)
	return user
}
