package services

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
)

// jwtIdentityResolver reads the session-token cookie and validates it as an
// HS256 JWT carrying `sub` (identity) and `email` claims. It is the default
// IdentityResolver; deployments fronted by a different auth provider plug in
// their own.
type jwtIdentityResolver struct {
	log        *logger.Logger
	secret     []byte
	cookieName string
}

func NewJWTIdentityResolver(baseLog *logger.Logger, secret, cookieName string) IdentityResolver {
	resolverLog := baseLog.With("service", "JWTIdentityResolver")
	return &jwtIdentityResolver{log: resolverLog, secret: []byte(secret), cookieName: cookieName}
}

func (r *jwtIdentityResolver) Resolve(cookieHeader string) (string, string, error) {
	raw := parseCookieHeader(cookieHeader)[r.cookieName]
	if raw == "" {
		return "", "", fmt.Errorf("no session token")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid session token")
	}

	identity, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if strings.TrimSpace(identity) == "" {
		return "", "", fmt.Errorf("session token missing subject")
	}
	return identity, email, nil
}
