package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingLifecycle/pkg/reqctx"
)

// HeaderUserID заголовок с идентификатором пользователя
const HeaderUserID = "X-User-ID"

// Actor переносит X-User-ID в контекст как инициатора операции
// Заголовок необязателен и используется только для аудита
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if actor != "" {
			r = r.WithContext(reqctx.WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}
