package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teatrails/internal/shared/config"
	"teatrails/internal/users"
)

type fakeRepo struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeRepo) CreateUser(ctx context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{
		FullName: "Anjali Perera",
		Email:    "anjali@example.com",
		Password: "leafandbud",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, string(users.RoleTourist), reg.User.Role)

	// The password must never be stored in the clear.
	stored, err := repo.GetUserByEmail(ctx, "anjali@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "leafandbud", stored.Password)

	login, err := svc.Login(ctx, &LoginRequest{
		Email:    "anjali@example.com",
		Password: "leafandbud",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		FullName: "Anjali Perera",
		Email:    "anjali@example.com",
		Password: "leafandbud",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterRequest{
		FullName: "Another Anjali",
		Email:    "anjali@example.com",
		Password: "different",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		FullName: "Anjali Perera",
		Email:    "anjali@example.com",
		Password: "leafandbud",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "anjali@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An unknown email reports the same error as a wrong password.
	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "leafandbud"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{
		FullName: "Anjali Perera",
		Email:    "anjali@example.com",
		Password: "leafandbud",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token cannot be used where a refresh token is expected.
	_, err = svc.RefreshToken(ctx, reg.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
