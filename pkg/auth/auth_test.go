package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-studio/pkg/apperror"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "a@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.Caller().UserID)
	assert.Equal(t, "a@example.com", claims.Caller().Email)
}

func TestJWT_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Minute).ValidateToken(token)
	assert.Error(t, err)
}

func TestRequireCaller(t *testing.T) {
	_, err := RequireCaller(nil)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = RequireCaller(&Caller{})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	c, err := RequireCaller(&Caller{UserID: uuid.New()})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
