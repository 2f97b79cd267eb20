// Package service holds the application services between the HTTP
// handlers and the repositories: authentication, planning reports and
// the weekly submission workflow.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/resourcio/resourcio/internal/config"
	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/repository"
)

// ErrInvalidCredentials is returned for unknown emails and wrong
// passwords alike; the two cases are not distinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveUser is returned when a deactivated account authenticates
// with a correct password.
var ErrInactiveUser = errors.New("user is inactive")

// Claims is the JWT payload. Roles ride along so the authorization
// middleware can evaluate route access without a database read.
type Claims struct {
	UserID     string   `json:"userId"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	ResourceID string   `json:"resourceId,omitempty"`
	jwt.RegisteredClaims
}

// AuthService handles login and token issuance.
type AuthService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates an auth service from the auth config section.
func NewAuthService(users repository.UserRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Login authenticates by email and password and returns the user with a
// signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.Active {
		return nil, "", ErrInactiveUser
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// GenerateToken creates a signed access token for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if user.ResourceID != nil {
		claims.ResourceID = *user.ResourceID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies a token string.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetUser loads a user by ID, for the /auth/me endpoint.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUser(ctx, id)
}

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
