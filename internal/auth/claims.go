package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthorized covers a missing, invalid, expired or mismatched credential.
	// Callers must not tell the cases apart in responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the principal is authenticated but holds the wrong role.
	ErrForbidden = errors.New("forbidden")
	// ErrPrincipalNotFound means no user is stored for an authenticated email.
	ErrPrincipalNotFound = errors.New("principal not found")
)

// Claims is the credential payload. Email is the only identity claim.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authorization string) (string, bool) {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Verifier checks HS256 credentials signed with the shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify validates the bearer credential in authorization and binds it to
// email, the address the caller is acting for. Every failure wraps ErrUnauthorized.
func (v *Verifier) Verify(authorization, email string) (*Claims, error) {
	raw, ok := BearerToken(authorization)
	if !ok {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrUnauthorized)
	}
	if claims.Email != email {
		return nil, fmt.Errorf("%w: token email does not match request email", ErrUnauthorized)
	}
	return claims, nil
}

// Issuer mints credentials. A zero TTL produces tokens without an expiry.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Mint(email string) (string, error) {
	now := i.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
