package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if ok {
			return strings.TrimSpace(token)
		}
	}
	// browsers cannot set headers on websocket upgrades
	return r.URL.Query().Get("token")
}

// Auth attaches valid session claims to the request context. Requests
// without a valid token pass through unannotated.
func Auth(log *logrus.Logger, j *config.JWT) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := j.ParseSessionClaims(token)
			if err != nil {
				log.WithError(err).Debug("rejected session token")
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaims(r *http.Request) (*config.SessionClaims, bool) {
	claims, ok := r.Context().Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
