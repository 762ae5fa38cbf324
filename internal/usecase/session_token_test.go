package usecase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSigner_RoundTrip(t *testing.T) {
	signer := NewSessionSigner(testSecret)
	userID := uuid.New()
	now := time.Now()

	raw, err := signer.Sign(userID, now, now.Add(SessionTTL))
	require.NoError(t, err)

	got, err := signer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestSessionSigner_DistinctTokensPerSign(t *testing.T) {
	signer := NewSessionSigner(testSecret)
	userID := uuid.New()
	now := time.Now()

	a, err := signer.Sign(userID, now, now.Add(SessionTTL))
	require.NoError(t, err)
	b, err := signer.Sign(userID, now, now.Add(SessionTTL))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSessionSigner_IgnoresExpClaim(t *testing.T) {
	signer := NewSessionSigner(testSecret)
	past := time.Now().Add(-48 * time.Hour)

	raw, err := signer.Sign(uuid.New(), past, past.Add(time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	assert.NoError(t, err)
}

func TestSessionSigner_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"uid": uuid.NewString()})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewSessionSigner(testSecret).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionSigner_RejectsMissingUserID(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "someone"})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewSessionSigner(testSecret).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBearer(t *testing.T) {
	token, err := ParseBearer("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "Bearer  abc", "Bearer abc def"} {
		_, err := ParseBearer(header)
		assert.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}
