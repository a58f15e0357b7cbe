package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/consultation-booking/internal/api/handlers"
)

// AdminSecretHeader заголовок с секретом администратора
const AdminSecretHeader = "X-Admin-Secret"

const msgUnauthorized = "unauthorized admin access"

// AdminAuth пропускает только запросы с верным секретом.
// Пустой секрет в конфигурации закрывает админку полностью.
func AdminAuth(secret string, proxies *TrustedProxies, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminSecretHeader)
			if secret == "" || provided == "" ||
				subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				logger.Warn("%s %s - Unauthorized admin request from %s", r.Method, r.URL.Path, proxies.ClientIP(r))
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
