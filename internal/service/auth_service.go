package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"device_inventory/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for operator auth.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password is too short")
	ErrInvalidUsername    = errors.New("username must be 3-64 characters without spaces")
)

const (
	tokenIssuer    = "device_inventory"
	minPasswordLen = 8
)

// AuthService registers operators and issues the bearer tokens that scope
// sessions and export log entries to them.
type AuthService struct {
	operators  repository.Operators
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(repo repository.Operators, signingKey string, tokenTTL time.Duration) *AuthService {
	return &AuthService{operators: repo, signingKey: []byte(signingKey), tokenTTL: tokenTTL, now: time.Now}
}

// normalizeUsername lowercases and trims a login name.
func normalizeUsername(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 || len(s) > 64 || strings.ContainsAny(s, " \t\r\n") {
		return "", ErrInvalidUsername
	}
	return s, nil
}

// SignUp registers an operator. Usernames are case-insensitive; a taken name
// yields repository.ErrOperatorExists.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	name, err := normalizeUsername(username)
	if err != nil {
		return 0, err
	}
	if len(password) < minPasswordLen {
		return 0, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.operators.Create(ctx, name, string(hash))
}

// GenerateToken checks credentials and returns a signed token whose subject is
// the operator id. Unknown users and wrong passwords are indistinguishable.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	name, err := normalizeUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	op, err := s.operators.ByUsername(ctx, name)
	if err != nil {
		return "", err
	}
	if op == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(op.ID, s.now())
}

// ParseToken verifies a token and returns the operator id it was issued to.
// Tokens of operators that no longer exist are rejected.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (int, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(accessToken, &claims,
		func(*jwt.Token) (interface{}, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: subject %q", ErrInvalidToken, claims.Subject)
	}
	op, err := s.operators.ByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if op == nil {
		return 0, fmt.Errorf("%w: operator %d not found", ErrInvalidToken, id)
	}
	return id, nil
}

func (s *AuthService) issueToken(operatorID int, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(operatorID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	return token.SignedString(s.signingKey)
}
