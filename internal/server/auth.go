package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var errUnauthorized = errors.New("unauthorized")

type ctxKey string

const ctxKeyUser ctxKey = "user"

// WithUser returns a context carrying the authenticated user id.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUser, userID)
}

// UserFromContext returns the authenticated user id, or "".
func UserFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUser).(string); ok {
		return v
	}
	return ""
}

// Authenticator verifies HS256 bearer tokens issued by the hosted auth
// backend. The token's subject is the user id. Without a secret every
// request is attributed to the default user.
type Authenticator struct {
	secret      []byte
	issuer      string
	defaultUser string
}

// NewAuthenticator creates an Authenticator. An empty secret disables
// verification.
func NewAuthenticator(secret, issuer, defaultUser string) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, defaultUser: defaultUser}
}

// Enabled reports whether tokens are verified.
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Parse verifies tokenStr and returns its subject.
func (a *Authenticator) Parse(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUnauthorized, err)
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: token has no subject", errUnauthorized)
	}
	return claims.Subject, nil
}

// Middleware attaches the request's user to its context, rejecting
// requests whose bearer token is missing or invalid.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), a.defaultUser)))
			return
		}

		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			writeError(w, r, fmt.Errorf("%w: missing bearer token", errUnauthorized))
			return
		}
		sub, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), sub)))
	})
}
