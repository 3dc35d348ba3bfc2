package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const adminSubject = "admin"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload.
type Claims struct {
	Role string `json:"role"`
	jwtlib.RegisteredClaims
}

// Issuer signs and verifies HS256 admin tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign creates a signed admin token valid for the issuer's TTL.
func (i *Issuer) Sign() (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("jwt signing key is empty")
	}
	now := i.now()
	expires := now.Add(i.ttl)
	claims := Claims{
		Role: adminSubject,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   adminSubject,
			ExpiresAt: jwtlib.NewNumericDate(expires),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse validates a token string and returns the claims.
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	if len(i.secret) == 0 {
		return nil, ErrInvalidToken
	}
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwtlib.WithTimeFunc(i.now), jwtlib.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != adminSubject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
