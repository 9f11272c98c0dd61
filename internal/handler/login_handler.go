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

type LoginHandler struct {
	userRepo *repository.UserRepository
	sessions *middleware.Sessions
	logger   *zap.Logger
	tmpl     *template.Template
}

func NewLoginHandler(
	userRepo *repository.UserRepository,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *LoginHandler {
	return &LoginHandler{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
		tmpl:     templates.Must("login.html"),
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Уже вошел - на свою страницу
	if user := h.sessions.User(r); user != nil {
		redirectByRole(w, r, user.Role)
		return
	}

	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title": "Login",
	})

	render(h.logger, h.tmpl, w, data)
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.userRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.logger.Error("ошибка поиска пользователя", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Одно сообщение на оба случая, чтобы не подсказывать какие логины есть
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		h.sessions.Flash(w, r, "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.sessions.SignIn(w, r, user); err != nil {
		h.logger.Error("ошибка сохранения сессии", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("успешный вход",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	// Сначала туда, куда пользователь шел до логина
	if next := h.sessions.PopRedirectAfterLogin(w, r); next != "" {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	redirectByRole(w, r, user.Role)
}

func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func redirectByRole(w http.ResponseWriter, r *http.Request, role entity.Role) {
	switch role {
	case entity.RoleAdmin:
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	case entity.RoleTeacher:
		http.Redirect(w, r, "/teacher/dashboard", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
