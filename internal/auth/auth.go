// Package auth issues and validates session tokens. Access is role based:
// the restricted user role needs no credential, the admin role exchanges a
// PIN for its token. Per-capability grants of the user role live in the
// settings row.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role of an authenticated session.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var (
	ErrInvalidCredentials = errors.New("the PIN is not correct")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("authorization token required")
	ErrForbidden          = errors.New("this action needs a permission your role does not hold")
)

// Verifier checks an admin credential. The default implementation compares
// against a bcrypt hash, tests plug in their own.
type Verifier interface {
	Verify(pin string) error
}

// BcryptVerifier verifies a PIN against a bcrypt hash, usually taken from
// the environment.
type BcryptVerifier struct {
	Hash string
}

func (v BcryptVerifier) Verify(pin string) error {
	err := bcrypt.CompareHashAndPassword([]byte(v.Hash), []byte(pin))
	if err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPIN derives the bcrypt hash for a PIN, used by setup tooling.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Claims are the session token claims.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and validates session tokens.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
	verifier Verifier
}

func NewService(secret string, tokenTTL time.Duration, verifier Verifier) *Service {
	return &Service{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		verifier: verifier,
	}
}

// Login exchanges credentials for a session token. The user role is open,
// the admin role requires the PIN to verify.
func (s *Service) Login(role Role, pin string) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role", ErrInvalidCredentials)
	}

	if role == RoleAdmin {
		err := s.verifier.Verify(pin)
		if err != nil {
			return "", err
		}
	}

	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// Validate parses a session token and returns its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
