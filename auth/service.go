package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the login pair does not match
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service issues and validates bearer tokens for the single configured
// credential pair. There is no user store: possession of a validly signed,
// unexpired token is sufficient authorization.
type Service struct {
	user         string
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewService creates the token issuer. The configured password is hashed at
// startup so the plaintext is never held past construction.
func NewService(user, password, jwtSecret string, tokenTTL time.Duration) (*Service, error) {
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	s := &Service{
		user:      user,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash configured password: %w", err)
		}
		s.passwordHash = hash
	}
	return s, nil
}

// Login validates the credential pair and returns a signed access token
func (s *Service) Login(user, password string) (string, error) {
	if s.passwordHash == nil || user != s.user {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": s.user,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken checks signature and expiry and returns the token subject
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token missing subject")
	}
	return sub, nil
}

// TokenTTL returns the configured token lifetime
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}
