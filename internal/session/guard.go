package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// Decision is the outcome of a session check. The guard never navigates or
// writes a response itself; the caller owns what to do with the decision.
type Decision int

const (
	Authorized Decision = iota
	Unauthenticated
	Expired
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case Expired:
		return "expired"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Claims is the decoded content of the session credential.
type Claims struct {
	Subject     string
	Authorities []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// HasAuthority reports whether the credential carries the given authority.
func (c *Claims) HasAuthority(authority string) bool {
	for _, a := range c.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Guard performs the local session check. The credential is decoded without
// signature verification: every API call carries the token to the backend,
// which rejects forged signatures there. The clock is injected so expiry
// behavior stays testable.
type Guard struct {
	store             Store
	requiredAuthority string
	now               func() time.Time
}

func NewGuard(store Store, requiredAuthority string, now func() time.Time) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{
		store:             store,
		requiredAuthority: requiredAuthority,
		now:               now,
	}
}

// Check evaluates the stored credential and returns a tagged decision.
// An absent token is Unauthenticated. An undecodable token is treated the same
// as an absent one and the store is cleared. Expired or authority-missing
// credentials also clear the store, so the next check starts from a clean
// state. Claims are returned only when the decision is Authorized.
//
// The check runs on every protected request, not on a timer: a credential
// expiring mid-session is only caught on the next request.
func (g *Guard) Check() (Decision, *Claims) {
	token := g.store.Token()
	if token == "" {
		return Unauthenticated, nil
	}

	claims, err := decode(token)
	if err != nil {
		log.WithError(err).Debug("Stored credential is not decodable, treating as absent")
		g.store.Clear()
		return Unauthenticated, nil
	}

	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(g.now()) {
		log.WithField("subject", claims.Subject).Debug("Session credential expired")
		g.store.Clear()
		return Expired, nil
	}

	if !claims.HasAuthority(g.requiredAuthority) {
		log.WithFields(logrus.Fields{
			"subject":  claims.Subject,
			"required": g.requiredAuthority,
		}).Warn("Session credential lacks required authority")
		g.store.Clear()
		return Forbidden, nil
	}

	return Authorized, claims
}

// decode parses the credential locally. ParseUnverified is deliberate here:
// the station does not hold the signing secret.
func decode(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims := &Claims{}

	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if raw, ok := mapClaims["authorities"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				claims.Authorities = append(claims.Authorities, s)
			}
		}
	}

	return claims, nil
}
