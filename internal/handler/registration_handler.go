package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"schoolsite/internal/auth"
	"schoolsite/internal/entity"
	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
	"schoolsite/internal/templates"
)

type RegistrationHandler struct {
	userRepo *repository.UserRepository
	sessions *middleware.Sessions
	logger   *zap.Logger
	tmpl     *template.Template
}

func NewRegistrationHandler(
	userRepo *repository.UserRepository,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
		tmpl:     templates.Must("register.html"),
	}
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title": "Register",
	})

	render(h.logger, h.tmpl, w, data)
}

// Register создает учетку студента. Регистрация всегда дает роль student.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		h.sessions.Flash(w, r, "All fields are required")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	// Предварительная проверка ради понятного сообщения. От гонки
	// страхует уникальный индекс, смотри обработку ошибки Create ниже.
	if taken, err := h.userRepo.UsernameExists(username); err != nil {
		h.logger.Error("ошибка проверки username", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	} else if taken {
		h.sessions.Flash(w, r, "Username already exists")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if taken, err := h.userRepo.EmailExists(email); err != nil {
		h.logger.Error("ошибка проверки email", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	} else if taken {
		h.sessions.Flash(w, r, "Email already exists")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		h.logger.Error("ошибка хеширования пароля", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	_, err = h.userRepo.Create(username, email, passwordHash, entity.RoleStudent)
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		h.sessions.Flash(w, r, "Username already exists")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	case errors.Is(err, repository.ErrEmailTaken):
		h.sessions.Flash(w, r, "Email already exists")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	case err != nil:
		h.logger.Error("ошибка создания пользователя", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Registration successful. Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
