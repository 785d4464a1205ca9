// Package identity issues and verifies the signed tokens that carry a
// request's authenticated subject.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the subject a verified token represents.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer with the given signing secret. ttl <= 0 falls
// back to DefaultTokenTTL.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for claims.
func (i *Issuer) Issue(claims Claims) (string, error) {
	if i == nil || len(i.secret) == 0 {
		return "", fmt.Errorf("issuer is not configured")
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("user id is required")
	}

	issuedAt := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: claims.Username,
		Role:     claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token and returns its claims. Any
// failure is an Unauthenticated error.
func (i *Issuer) Verify(signed string) (Claims, error) {
	if i == nil || len(i.secret) == 0 {
		return Claims{}, fmt.Errorf("issuer is not configured")
	}

	parsed := &tokenClaims{}
	token, err := jwt.ParseWithClaims(signed, parsed, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time {
		return i.now()
	}))
	if err != nil {
		return Claims{}, errs.Wrap(errs.CodeUnauthenticated, "invalid token", err)
	}
	if !token.Valid || parsed.Subject == "" {
		return Claims{}, errs.New(errs.CodeUnauthenticated, "invalid token")
	}
	return Claims{
		UserID:   parsed.Subject,
		Username: parsed.Username,
		Role:     parsed.Role,
	}, nil
}
