package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestAdminService(t *testing.T) *service.AdminService {
	t.Helper()
	// Use cost 4 for fast tests.
	hash, err := service.HashPassword("correct horse", 4)
	require.NoError(t, err)
	return service.NewAdminService(hash, testJWTSecret)
}

func TestAdminService_LoginAndValidate(t *testing.T) {
	admin := newTestAdminService(t)

	token, err := admin.Login("correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, admin.ValidateToken(token))
}

func TestAdminService_WrongPassword(t *testing.T) {
	admin := newTestAdminService(t)
	_, err := admin.Login("battery staple")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminService_Disabled(t *testing.T) {
	admin := service.NewAdminService("", testJWTSecret)
	assert.False(t, admin.Enabled())

	_, err := admin.Login("anything")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminService_RejectsForeignTokens(t *testing.T) {
	admin := newTestAdminService(t)

	tests := []struct {
		name  string
		token func() string
	}{
		{"garbage", func() string { return "not-a-jwt" }},
		{"wrong secret", func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "admin",
				"exp": time.Now().Add(time.Hour).Unix(),
			}).SignedString([]byte("some-other-secret-some-other-secret"))
			return tok
		}},
		{"wrong subject", func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "42",
				"exp": time.Now().Add(time.Hour).Unix(),
			}).SignedString([]byte(testJWTSecret))
			return tok
		}},
		{"expired", func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "admin",
				"exp": time.Now().Add(-time.Minute).Unix(),
			}).SignedString([]byte(testJWTSecret))
			return tok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, admin.ValidateToken(tt.token()), domain.ErrUnauthorized)
		})
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := service.HashPassword("short", 4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
