package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/labstack/echo/v4"
)

const userKey = "auth.user"

type Authenticator interface {
	Authenticate(ctx context.Context, plain string) (*models.User, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token owner on the context.
func BearerAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return unauthenticated(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if errors.Is(err, service.ErrUnauthenticated) {
				return unauthenticated(c)
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or nil outside BearerAuth.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Unauthenticated."})
}
