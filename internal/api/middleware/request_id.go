package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingLifecycle/pkg/reqctx"
)

// HeaderRequestID заголовок идентификатора запроса
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID берёт X-Request-ID из запроса или генерирует новый
// Идентификатор кладётся в контекст и возвращается в заголовке ответа
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), id)))
	})
}
