// Package token issues and verifies the HMAC-signed bearer tokens handed out
// at login, and provides the HTTP middleware that authenticates requests
// with them.
package token

import (
	stdliberrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

var (
	ErrTokenMalformed        = errors.New(errors.ErrCodeTokenInvalid, "malformed token")
	ErrTokenInvalidSignature = errors.New(errors.ErrCodeTokenInvalid, "invalid token signature")
	ErrTokenInvalidIssuer    = errors.New(errors.ErrCodeTokenInvalid, "invalid token issuer")
	ErrTokenExpired          = errors.New(errors.ErrCodeTokenExpired, "token expired")
)

// Claims are the application claims carried by a token.
type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject.
func (c *Claims) UserID() string { return c.Subject }

// Config holds issuer parameters.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer builds an Issuer.
func NewIssuer(cfg Config, opts ...IssuerOption) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New(errors.ErrCodeValidation, "token secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "scholarai"
	}
	i := &Issuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue returns a signed token for the user and its expiry.
func (i *Issuer) Issue(userID, name, role string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := &Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to sign token")
	}
	return signed, exp, nil
}

// Verify parses raw and returns its claims.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		switch {
		case stdliberrors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case stdliberrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalidSignature
		case stdliberrors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrTokenInvalidIssuer
		case stdliberrors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		}
		return nil, errors.Wrap(err, errors.ErrCodeTokenInvalid, "token verification failed")
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

//Personal.AI order the ending
