package service

import (
	"context"
	"strings"
	"testing"

	"minesweeper_webapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	InitJWT("test-secret")
	s := NewAuthService(newFakeUserRepo(), 0)
	s.cost = bcrypt.MinCost
	return s
}

func TestRegisterTakenNameSkipsCreate(t *testing.T) {
	InitJWT("test-secret")
	users := newFakeUserRepo()
	s := NewAuthService(users, 0)
	s.cost = bcrypt.MinCost
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "ivan", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, 1, users.creates)

	_, err = s.Register(ctx, RegisterInput{Username: " ivan ", Password: "secret2"})
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	assert.Equal(t, 1, users.creates)
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	// 72 runes, 144 bytes
	long := strings.Repeat("é", 72)
	_, err := s.Register(ctx, RegisterInput{Username: "judy", Password: long})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = s.Register(ctx, RegisterInput{Username: "judy", Password: strings.Repeat("a", 72)})
	assert.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Username: " alice ", Password: "hunter22", State: "ny"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "NY", u.State)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	token, got, err := s.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	userID, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "bob", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterInput{Username: "bob", Password: "secret2"})
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
}

func TestLoginFailures(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "carol", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = s.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	InitJWT("test-secret")
	s := NewAuthService(newFakeUserRepo(), 3)
	s.cost = bcrypt.MinCost
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "dan", Password: "password"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = s.Register(ctx, RegisterInput{Username: "dan", Password: "dan123"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = s.Register(ctx, RegisterInput{Username: "dan", Password: "vortex-Quill-88-marmalade-Zephyr"})
	assert.NoError(t, err)
}
