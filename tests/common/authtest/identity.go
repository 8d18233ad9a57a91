//go:build unit || e2e

package authtest

import (
	"testing"

	"storefront/internal/domain/user"
	"storefront/internal/pkg/config"
	"storefront/tests/common/dbtest"

	"github.com/google/uuid"
)

// CreateAndAuthenticate inserts a user and returns a bearer token for it.
// Tokens come from the identity provider in production, so tests sign them
// with the service secret instead of logging in.
func CreateAndAuthenticate(t *testing.T, db dbtest.DBLike, cfg config.JWTConfig, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, db, email, role.String())
	return userID, NewJWTHelper(cfg).GenerateToken(t, userID, role)
}
