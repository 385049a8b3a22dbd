package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/edm-sync/internal/transport/http/errors"
)

// APIKey закрывает операторские маршруты статическим ключом. Ключ
// принимается в заголовке X-Api-Key либо как Authorization: Bearer.
// Сравнение — за постоянное время. Пустой сконфигурированный ключ
// не означает открытый доступ: такие запросы отклоняются все.
func APIKey(key string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := clientKey(r)

			if key == "" || got == "" ||
				subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if key := r.Header.Get("X-Api-Key"); key != "" {
		return key
	}

	auth := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) && len(auth) > len(prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}
