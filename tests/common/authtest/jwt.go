//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"storefront/internal/domain/user"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration, nil).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token whose lifetime ended an hour ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	past := clock.NewMockClock(time.Now().Add(-2 * time.Hour))
	token, err := jwt.NewService(h.cfg.Secret, time.Hour, past).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
