package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer is the iss claim on every issued token.
const tokenIssuer = "site-api"

// Token validation errors. These distinctions are for logging only; the
// AccessGuard collapses all of them into ErrUnauthorized before they reach
// a caller.
var (
	// ErrTokenMalformed indicates a structurally invalid token.
	ErrTokenMalformed = errors.New("auth: malformed token")

	// ErrTokenSignature indicates the signature does not match.
	ErrTokenSignature = errors.New("auth: invalid token signature")

	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("auth: token expired")
)

// Claims is the validated content of a bearer token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenService issues and validates HMAC-SHA256 signed bearer tokens.
// Claims are integrity-protected but not encrypted.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{
		secret: secret,
		now:    time.Now,
	}
}

// Issue creates a signed token carrying the subject and an expiry of
// now + ttl. Two tokens for the same subject are distinct (iat differs)
// but both validate independently until their own expiry.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a token, returning its claims.
// Fails with ErrTokenMalformed, ErrTokenSignature, or ErrTokenExpired.
//
// There is no revocation: a validly-signed, unexpired token is always
// accepted. Disabled accounts are caught by the AccessGuard's identity
// re-fetch, not here.
func (s *TokenService) Validate(tokenStr string) (*Claims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignature):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, ErrTokenSignature
	}

	// A token without an expiry is rejected outright
	if claims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}

	return &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
