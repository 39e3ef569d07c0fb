package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// mintToken signs a token with a throwaway secret. The guard decodes without
// verifying, so the secret never matters on the station side.
func mintToken(t *testing.T, authorities []string, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "kasir-01",
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	}
	if authorities != nil {
		auths := make([]interface{}, len(authorities))
		for i, a := range authorities {
			auths[i] = a
		}
		claims["authorities"] = auths
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)
	return signed
}

func TestCheckAbsentToken(t *testing.T) {
	guard := NewGuard(NewMemoryStore(), "CASHIER", fixedClock)

	decision, claims := guard.Check()

	assert.Equal(t, Unauthenticated, decision)
	assert.Nil(t, claims)
}

func TestCheckUndecodableToken(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken("definitely-not-a-jwt")
	guard := NewGuard(store, "CASHIER", fixedClock)

	decision, claims := guard.Check()

	assert.Equal(t, Unauthenticated, decision, "garbage credential is treated as absent")
	assert.Nil(t, claims)
	assert.Empty(t, store.Token(), "undecodable credential must be cleared")
}

func TestCheckExpiredToken(t *testing.T) {
	store := NewMemoryStore()
	// expired one second before the injected clock
	store.SetToken(mintToken(t, []string{"CASHIER"}, testNow.Add(-time.Hour), testNow.Add(-time.Second)))
	guard := NewGuard(store, "CASHIER", fixedClock)

	decision, claims := guard.Check()

	assert.Equal(t, Expired, decision)
	assert.Nil(t, claims)
	assert.Empty(t, store.Token())
}

func TestCheckMissingAuthority(t *testing.T) {
	store := NewMemoryStore()
	// unexpired, but only WAITER authority
	store.SetToken(mintToken(t, []string{"WAITER"}, testNow, testNow.Add(time.Hour)))
	guard := NewGuard(store, "CASHIER", fixedClock)

	decision, claims := guard.Check()

	assert.Equal(t, Forbidden, decision, "missing authority rejects even an unexpired credential")
	assert.Nil(t, claims)
	assert.Empty(t, store.Token())
}

func TestCheckNoAuthoritiesClaim(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken(mintToken(t, nil, testNow, testNow.Add(time.Hour)))
	guard := NewGuard(store, "CASHIER", fixedClock)

	decision, _ := guard.Check()

	assert.Equal(t, Forbidden, decision)
}

func TestCheckAuthorized(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken(mintToken(t, []string{"CASHIER", "WAITER"}, testNow, testNow.Add(time.Hour)))
	guard := NewGuard(store, "CASHIER", fixedClock)

	decision, claims := guard.Check()

	assert.Equal(t, Authorized, decision)
	require.NotNil(t, claims)
	assert.Equal(t, "kasir-01", claims.Subject)
	assert.ElementsMatch(t, []string{"CASHIER", "WAITER"}, claims.Authorities)
	assert.Equal(t, testNow.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, store.Token(), "valid credential stays stored")
}

func TestCheckReevaluatesEachCall(t *testing.T) {
	store := NewMemoryStore()
	now := testNow
	guard := NewGuard(store, "CASHIER", func() time.Time { return now })
	store.SetToken(mintToken(t, []string{"CASHIER"}, testNow, testNow.Add(time.Minute)))

	decision, _ := guard.Check()
	assert.Equal(t, Authorized, decision)

	// the same credential expires once the clock moves past exp
	now = testNow.Add(2 * time.Minute)
	decision, _ = guard.Check()
	assert.Equal(t, Expired, decision)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "authorized", Authorized.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "expired", Expired.String())
	assert.Equal(t, "forbidden", Forbidden.String())
}
