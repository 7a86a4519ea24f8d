package httpapi

import (
	"context"
	"net/http"
	"strings"

	"studymate/internal/common"
	"studymate/internal/server/auth"
)

type ctxKey int

const ctxKeyUserID ctxKey = 0

// userIDFrom returns the authenticated user id stored by AuthMiddleware.
func userIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int64)
	return id, ok
}

// AuthMiddleware verifies the bearer token of every protected request and
// injects the authenticated user id into the request context.
func (h *Handler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		if !strings.HasPrefix(header, common.AuthSchemePrefix) {
			respondError(w, common.ErrorUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, common.AuthSchemePrefix)
		userID, err := auth.GetUserIDFromToken(token, h.secret)
		if err != nil {
			respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next(w, r.WithContext(ctx))
	}
}

// corsMiddleware lets the browser-based client call the API cross-origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
