package service

import (
	"context"
	"testing"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStaffUserRepository mocks the StaffUserRepository interface
type MockStaffUserRepository struct {
	mock.Mock
}

func (m *MockStaffUserRepository) Create(ctx context.Context, user *models.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStaffUserRepository) FindByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

func (m *MockStaffUserRepository) FindByID(ctx context.Context, id string) (*models.StaffUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

func (m *MockStaffUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func newTestAuthService() (*MockStaffUserRepository, *MockRefreshTokenRepository, AuthService) {
	users := new(MockStaffUserRepository)
	tokens := new(MockRefreshTokenRepository)
	cfg := &config.Config{
		JWTSecret:       testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return users, tokens, NewAuthService(users, tokens, cfg)
}

func staffUser(t *testing.T, password string) *models.StaffUser {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.StaffUser{ID: "user-1", Username: "editor", Email: "editor@example.com", Password: hashed, Role: RoleAdmin}
}

func TestCreateStaffUser_Success(t *testing.T) {
	users, _, svc := newTestAuthService()
	ctx := context.Background()

	users.On("Create", ctx, mock.AnythingOfType("*models.StaffUser")).Return(nil)

	user, err := svc.CreateStaffUser(ctx, "editor", "editor@example.com", "password123", RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, "editor", user.Username)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, auth.VerifyPassword(user.Password, "password123"))
	users.AssertExpectations(t)
}

func TestCreateStaffUser_RejectsUnknownRole(t *testing.T) {
	users, _, svc := newTestAuthService()

	_, err := svc.CreateStaffUser(context.Background(), "editor", "editor@example.com", "password123", "root")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users, tokens, svc := newTestAuthService()
	ctx := context.Background()
	user := staffUser(t, "password123")

	users.On("FindByUsername", ctx, "editor").Return(user, nil)
	users.On("TouchLastLogin", ctx, "user-1", mock.AnythingOfType("time.Time")).Return(nil)
	tokens.On("Create", ctx, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	access, refresh, got, err := svc.Login(ctx, "editor", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user, got)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "editor", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestLogin_UnknownUser(t *testing.T) {
	users, _, svc := newTestAuthService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, _, _, err := svc.Login(ctx, "ghost", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	users, tokens, svc := newTestAuthService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "editor").Return(staffUser(t, "password123"), nil)

	_, _, _, err := svc.Login(ctx, "editor", "nope-nope")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefreshAccessToken(t *testing.T) {
	users, tokens, svc := newTestAuthService()
	ctx := context.Background()
	user := staffUser(t, "password123")

	tokens.On("FindByToken", ctx, "refresh-1").Return(&models.RefreshToken{
		ID: "rt-1", UserID: "user-1", Token: "refresh-1", ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("FindByID", ctx, "user-1").Return(user, nil)

	access, err := svc.RefreshAccessToken(ctx, "refresh-1")

	require.NoError(t, err)
	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	_, tokens, svc := newTestAuthService()
	ctx := context.Background()

	tokens.On("FindByToken", ctx, "old").Return(&models.RefreshToken{
		ID: "rt-2", UserID: "user-1", Token: "old", ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	tokens.On("Delete", ctx, "rt-2").Return(nil)

	_, err := svc.RefreshAccessToken(ctx, "old")

	assert.ErrorIs(t, err, ErrExpiredToken)
	tokens.AssertExpectations(t)
}

func TestRefreshAccessToken_Revoked(t *testing.T) {
	_, tokens, svc := newTestAuthService()
	ctx := context.Background()

	tokens.On("FindByToken", ctx, "revoked").Return(&models.RefreshToken{
		ID: "rt-3", UserID: "user-1", Token: "revoked", ExpiresAt: time.Now().Add(time.Hour), Revoked: true,
	}, nil)

	_, err := svc.RefreshAccessToken(ctx, "revoked")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	_, tokens, svc := newTestAuthService()
	ctx := context.Background()

	tokens.On("FindByToken", ctx, "refresh-1").Return(&models.RefreshToken{ID: "rt-1", Token: "refresh-1"}, nil)
	tokens.On("Revoke", ctx, "rt-1").Return(nil)

	require.NoError(t, svc.Revoke(ctx, "refresh-1"))
	tokens.AssertExpectations(t)
}

func TestValidateToken_RejectsOtherSecretAndType(t *testing.T) {
	_, _, svc := newTestAuthService()

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1", Role: RoleAdmin, Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := foreign.SignedString([]byte("some-other-secret-some-other-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	refreshType := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1", Role: RoleAdmin, Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err = refreshType.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	_, _, svc := newTestAuthService()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1", Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
