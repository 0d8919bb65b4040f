package middleware

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blog-post-service/internal/custom_errors"
)

// TokenContextKey is where the validated token is kept on the echo context.
const TokenContextKey = "user"

// JWTAuth accepts HS256 bearer tokens whose subject is the numeric id of the
// calling user.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(secret),
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    TokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		},
	})
}

// CallerID returns the user id carried by the token that JWTAuth accepted.
func CallerID(c echo.Context) (int64, error) {
	token, ok := c.Get(TokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return 0, custom_errors.ErrUnauthenticated
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, custom_errors.ErrUnauthenticated
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, custom_errors.ErrUnauthenticated
	}
	return id, nil
}
