package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajifood/saji-cashier-station/internal/models"
	"github.com/sajifood/saji-cashier-station/internal/session"
)

// Context keys set for handlers behind the guard.
const (
	CtxSubjectKey     = "sessionSubject"
	CtxAuthoritiesKey = "sessionAuthorities"
)

// LoginRoute is where the terminal should navigate on a rejected session.
const LoginRoute = "/login"

// SessionGuard gates the protected part of the station. It re-evaluates the
// stored credential on every request and maps the guard's decision onto the
// response; the terminal performs the actual navigation using the redirect
// field. Decode failures are never surfaced as errors, just as a silent
// redirect to login.
func SessionGuard(guard *session.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, claims := guard.Check()

		switch decision {
		case session.Authorized:
			c.Set(CtxSubjectKey, claims.Subject)
			c.Set(CtxAuthoritiesKey, claims.Authorities)
			c.Next()

		case session.Forbidden:
			c.JSON(http.StatusForbidden, gin.H{
				"error":    models.NewAPIError(models.ErrForbidden, "Session lacks the required authority"),
				"redirect": LoginRoute,
			})
			c.Abort()

		case session.Expired:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    models.NewAPIError(models.ErrUnauthorized, "Session expired"),
				"redirect": LoginRoute,
			})
			c.Abort()

		default: // Unauthenticated, including undecodable credentials
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    models.NewAPIError(models.ErrUnauthorized, "No active session"),
				"redirect": LoginRoute,
			})
			c.Abort()
		}
	}
}
