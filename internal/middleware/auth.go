package middleware

import (
	"moviemart-checkout/internal/client"
	"moviemart-checkout/internal/model"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsKey = "user_claims"

// UserClaims is what the MovieMart backend puts into its access tokens.
type UserClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// AuthMiddleware reads the bearer token, if any. The token is not verified
// here: it is only forwarded to the backend, which does verify it, and its
// claims prefill contact details.
func AuthMiddleware() echo.MiddlewareFunc {
	parser := jwt.NewParser()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(client.WithAccessToken(req.Context(), token)))

			claims := &UserClaims{}
			if _, _, err := parser.ParseUnverified(token, claims); err == nil {
				c.Set(claimsKey, claims)
			}
			return next(c)
		}
	}
}

// ProfileFromContext returns the profile carried by the access token.
func ProfileFromContext(c echo.Context) *model.Profile {
	claims, ok := c.Get(claimsKey).(*UserClaims)
	if !ok {
		return nil
	}
	return &model.Profile{
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
		Phone:  claims.Phone,
	}
}
