package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"
)

type sessionCtxKey struct{}

// SessionMiddleware находит сессию покупателя по заголовку или cookie и создаёт новую при её отсутствии.
// Идентификатор сессии возвращается в заголовке и в cookie.
func SessionMiddleware(store *usecase.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					id = c.Value
				}
			}

			sess, _ := store.GetOrCreate(id)

			w.Header().Set(SessionHeader, sess.ID)
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionCtxKey{}, sess)))
		})
	}
}

// sessionFromContext возвращает сессию, положенную SessionMiddleware, или nil.
func sessionFromContext(ctx context.Context) *usecase.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*usecase.Session)
	return sess
}
