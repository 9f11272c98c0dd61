package middleware

import (
	"net/http"

	"schoolsite/internal/entity"
)

// RequireAuth пускает дальше только авторизованных. Анонима отправляем
// на логин, запомнив куда он шел.
func (s *Sessions) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.User(r) == nil {
			s.setRedirectAfterLogin(w, r, r.URL.RequestURI())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRoles - проверка ролей для защищенных маршрутов.
// Чужая роль получает флеш и редирект на главную, без 403.
func (s *Sessions) RequireRoles(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := s.User(r)

			success := false
			if user != nil {
				for _, value := range allowedRoles {
					if user.Role == value {
						success = true
					}
				}
			}

			if !success {
				s.Flash(w, r, "Access denied")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
