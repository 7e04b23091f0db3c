package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/campusforge/timetable/pkg/errors"
	"github.com/campusforge/timetable/pkg/response"
)

// ContextUserKey is the gin context key storing the validated token's claims.
const ContextUserKey = "currentUser"

// JWT protects the registrar-only /solve and /export routes by requiring a
// bearer token signed with secret. There is no user/password domain behind
// it: the token is a shared-secret credential, not a session.
func JWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c, secret)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, err.Error()))
			c.Abort()
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret string) (jwt.MapClaims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errMissingHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errMalformedHeader
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}
	return claims, nil
}

var (
	errMissingHeader           = simpleError("missing authorization header")
	errMalformedHeader         = simpleError("malformed authorization header")
	errUnexpectedSigningMethod = simpleError("unexpected signing method")
	errInvalidToken            = simpleError("invalid or expired token")
)

type simpleError string

func (e simpleError) Error() string { return string(e) }
