package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Issuer:         "camera-store-test",
		AccessSecret:   "access-secret",
		RefreshSecret:  "refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	tok, exp, err := m.SignAccess(42, "admin")
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := m.ParseAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "camera-store-test", claims.Issuer)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	m := testManager()

	tok, _, err := m.SignRefresh(7, "employee")
	require.NoError(t, err)

	_, err = m.ParseAccess(tok)
	assert.Error(t, err)

	claims, err := m.ParseRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := testManager()
	_, err := m.ParseAccess("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("refresh-token-value")
	b := HashToken("refresh-token-value")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("other"))
}
