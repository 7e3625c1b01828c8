package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

const (
	adminSubject  = "admin"
	adminTokenTTL = 12 * time.Hour
)

// AdminService guards content editing behind a single shared password and
// issues JWT tokens for the admin cookie.
type AdminService struct {
	passwordHash []byte
	jwtSecret    []byte
}

// NewAdminService creates a new AdminService from a bcrypt password hash.
// An empty hash disables admin login.
func NewAdminService(passwordHash, jwtSecret string) *AdminService {
	return &AdminService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
	}
}

// HashPassword returns a bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Enabled reports whether admin login is configured.
func (s *AdminService) Enabled() bool {
	return len(s.passwordHash) > 0 && len(s.jwtSecret) > 0
}

// Login verifies the admin password and returns a signed JWT token string.
func (s *AdminService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": adminSubject,
		"iat": now.Unix(),
		"exp": now.Add(adminTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}
	return token, nil
}

// ValidateToken parses and validates an admin JWT token string.
func (s *AdminService) ValidateToken(tokenString string) error {
	if !s.Enabled() {
		return domain.ErrUnauthorized
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != adminSubject {
		return domain.ErrUnauthorized
	}
	return nil
}
