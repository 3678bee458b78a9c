package sandbox

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/frahmantamala/project-console/internal/transport/middleware"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 access tokens and remembers the ones logged out.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

func (t *TokenIssuer) Issue(u user.User) (string, error) {
	now := t.now()
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newID(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ValidateToken satisfies middleware.TokenValidator.
func (t *TokenIssuer) ValidateToken(tokenString string) (*middleware.Principal, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	_, revoked := t.revoked[claims.ID]
	t.mu.Unlock()
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &middleware.Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// Revoke invalidates tokenString until it would have expired anyway.
func (t *TokenIssuer) Revoke(tokenString string) error {
	claims, err := t.parse(tokenString)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[claims.ID] = claims.ExpiresAt.Time
	for id, exp := range t.revoked {
		if exp.Before(t.now()) {
			delete(t.revoked, id)
		}
	}
	return nil
}

func (t *TokenIssuer) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
