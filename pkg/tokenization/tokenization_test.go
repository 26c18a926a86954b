package tokenization

import (
	"testing"
	"time"

	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("alice", "secret", time.Minute)
	require.NoError(t, err)

	login, err := CheckToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", login)
}

func TestToken_Rejected(t *testing.T) {
	token, err := GenerateToken("alice", "secret", time.Minute)
	require.NoError(t, err)
	_, err = CheckToken(token, "other-secret")
	assert.ErrorIs(t, err, locerr.ErrUnauthorized)

	expired, err := GenerateToken("alice", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = CheckToken(expired, "secret")
	assert.ErrorIs(t, err, locerr.ErrUnauthorized)

	_, err = CheckToken("garbage", "secret")
	assert.ErrorIs(t, err, locerr.ErrUnauthorized)

	noLogin, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = CheckToken(noLogin, "secret")
	assert.ErrorIs(t, err, locerr.ErrUnauthorized)

	_, err = GenerateToken("", "secret", time.Minute)
	assert.ErrorIs(t, err, locerr.ErrEmptyLogin)
}
