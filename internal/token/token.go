package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"callsync/internal/platform/middleware"
	"callsync/pkg/domerr"
)

// Claims are the JWT claims accepted on API tokens. The subject carries the
// user ID; nothing else from the token is trusted.
type Claims struct {
	jwt.RegisteredClaims
}

// Validator checks HS256-signed bearer tokens issued by the identity
// provider in front of this service. Validation only; this service never
// mints tokens.
type Validator struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewValidator(signingKey, issuer, audience string) *Validator {
	return &Validator{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// ValidateToken parses and verifies a token, returning the claims the
// middleware consumes. Every failure collapses to an unauthorized error so
// callers cannot distinguish forged from expired tokens.
func (v *Validator) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return v.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domerr.New(domerr.CodeUnauthorized, "token has expired")
		}
		return nil, domerr.New(domerr.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domerr.New(domerr.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, domerr.New(domerr.CodeUnauthorized, "token subject is required")
	}

	return &middleware.TokenClaims{Subject: claims.Subject}, nil
}
