package service

import (
	"quizdom_backend/internal/config"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	user, err := auth.Register(RegisterParams{
		Name:     "bob",
		Email:    "bob@example.com",
		Password: "sup3rsecret",
		FullName: "Bob Builder",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	// 密码散列后入库
	assert.NotEqual(t, "sup3rsecret", user.Password)

	token, logged, err := auth.Login("bob@example.com", "sup3rsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(RegisterParams{Name: "bob", Email: "bob@example.com", Password: "sup3rsecret", FullName: "Bob"})
	require.NoError(t, err)

	_, err = auth.Register(RegisterParams{Name: "other", Email: "bob@example.com", Password: "sup3rsecret", FullName: "Other"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterDuplicateName(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(RegisterParams{Name: "bob", Email: "bob@example.com", Password: "sup3rsecret", FullName: "Bob"})
	require.NoError(t, err)

	_, err = auth.Register(RegisterParams{Name: "bob", Email: "bob2@example.com", Password: "sup3rsecret", FullName: "Bob 2"})
	assert.ErrorIs(t, err, util.ErrNameTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(RegisterParams{Name: "bob", Email: "bob@example.com", Password: "sup3rsecret", FullName: "Bob"})
	require.NoError(t, err)

	_, _, err = auth.Login("bob@example.com", "wrongpass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@example.com", "sup3rsecret")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
