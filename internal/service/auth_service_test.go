package service

import (
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	db := testutil.NewDB(t)
	auth := NewAuthService(repository.NewUserRepo(db))

	operator := &model.User{Email: "caisse@example.com", FullName: "Opérateur", IsActive: true}
	require.NoError(t, operator.SetPassword("caisse123"))
	require.NoError(t, db.Create(operator).Error)

	inactive := &model.User{Email: "ancien@example.com", IsActive: false}
	require.NoError(t, inactive.SetPassword("secret"))
	require.NoError(t, db.Create(inactive).Error)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := auth.Login("caisse@example.com", "caisse123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, operator.ID, resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login("caisse@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := auth.Login("nobody@example.com", "caisse123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		_, err := auth.Login("ancien@example.com", "secret")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}
