//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"storefront/internal/domain/user"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, clk)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, user.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, clk)

	token, err := svc.GenerateToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		expiredClock := clock.NewMockClock(time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC))
		_, err := jwt.NewService("secret", time.Hour, expiredClock).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := jwt.NewService("other", time.Hour, clk).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		forged, err := svc.GenerateToken(uuid.New(), user.Role("operator"))
		require.NoError(t, err)
		_, err = svc.ValidateToken(forged)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
