//go:build unit

package user_test

import (
	"testing"

	"storefront/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    user.Role
		wantErr error
	}{
		{name: "customer", input: "customer", want: user.RoleCustomer},
		{name: "admin", input: "admin", want: user.RoleAdmin},
		{name: "unknown role", input: "operator", wantErr: user.ErrInvalidRole},
		{name: "empty", input: "", wantErr: user.ErrInvalidRole},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := user.NewRole(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, role)
			assert.Equal(t, tc.input == "admin", role.IsAdmin())
		})
	}
}
