package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aidar/team-users-service/internal/domain"
	"github.com/aidar/team-users-service/internal/repository"
)

// Claims represents JWT access token claims
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService resolves bearer credentials (API keys or JWT access tokens) to a caller
type AuthService struct {
	apiKeyRepo   repository.APIKeyRepository
	apiKeyPrefix string
	jwtSecret    string
	jwtExpiry    time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(apiKeyRepo repository.APIKeyRepository, apiKeyPrefix, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		apiKeyRepo:   apiKeyRepo,
		apiKeyPrefix: apiKeyPrefix,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
	}
}

// Authenticate resolves a bearer credential. Credentials starting with the API
// key prefix are looked up by hash, anything else must be a valid access token.
func (s *AuthService) Authenticate(ctx context.Context, credential string) (*domain.Caller, error) {
	if credential == "" {
		return nil, domain.ErrUnauthorized
	}

	if s.apiKeyPrefix != "" && strings.HasPrefix(credential, s.apiKeyPrefix) {
		userID, err := s.apiKeyRepo.GetUserIDByHashedKey(ctx, s.HashAPIKey(credential))
		if err != nil {
			return nil, err
		}
		return &domain.Caller{UserID: userID, Method: domain.AuthMethodAPIKey}, nil
	}

	claims, err := s.ValidateToken(credential)
	if err != nil {
		return nil, err
	}
	return &domain.Caller{UserID: claims.UserID, Method: domain.AuthMethodAccessToken}, nil
}

// HashAPIKey returns the stored form of an API key: hex SHA-256 of the key without its prefix
func (s *AuthService) HashAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(strings.TrimPrefix(apiKey, s.apiKeyPrefix)))
	return hex.EncodeToString(sum[:])
}

// IssueAccessToken generates a signed access token for a user
func (s *AuthService) IssueAccessToken(userID int) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT access token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
