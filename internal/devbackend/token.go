package devbackend

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// sessionTTL matches the session length the real backend issues.
const sessionTTL = 8 * time.Hour

// issueToken signs an HS256 session credential for a cashier. The claims
// mirror the real backend: sub, authorities, iat, exp.
func issueToken(secret []byte, user CashierUser, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":         user.Username,
		"authorities": strings.Split(user.Authorities, ","),
		"iat":         now.Unix(),
		"exp":         now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// requireToken verifies the bearer credential on protected routes. Unlike the
// station's guard, this side holds the secret and checks the signature.
func requireToken(secret []byte, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		}, jwt.WithTimeFunc(now))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, err := claims.GetSubject(); err == nil {
				c.Set("subject", sub)
			}
		}
		c.Next()
	}
}
