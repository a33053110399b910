package identity

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// accessClaims son los claims del access token.
type accessClaims struct {
	Email string `json:"email"`
	SID   string `json:"sid"`
	jwtv5.RegisteredClaims
}

func (p *localProvider) signAccess(u User, sid string, now time.Time) (string, time.Time, error) {
	exp := now.Add(p.deps.AccessTTL)
	claims := accessClaims{
		Email: u.Email,
		SID:   sid,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    p.deps.Issuer,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(p.deps.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("identity: sign access token: %w", err)
	}
	return signed, exp, nil
}

var errInvalidAccess = errors.New("identity: invalid access token")

func (p *localProvider) parseAccess(raw string) (*accessClaims, error) {
	if raw == "" {
		return nil, errInvalidAccess
	}
	claims := &accessClaims{}
	_, err := jwtv5.ParseWithClaims(raw, claims,
		func(t *jwtv5.Token) (any, error) { return p.deps.Secret, nil },
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithIssuer(p.deps.Issuer),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(p.deps.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidAccess, err)
	}
	if claims.Subject == "" {
		return nil, errInvalidAccess
	}
	return claims, nil
}
