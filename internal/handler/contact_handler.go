package handler

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"schoolsite/internal/entity"
	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
)

type ContactHandler struct {
	queryRepo *repository.QueryRepository
	sessions  *middleware.Sessions
	logger    *zap.Logger
}

func NewContactHandler(
	queryRepo *repository.QueryRepository,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *ContactHandler {
	return &ContactHandler{
		queryRepo: queryRepo,
		sessions:  sessions,
		logger:    logger,
	}
}

// Contact принимает обращение с контактной формы, авторизация не нужна
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	message := strings.TrimSpace(r.FormValue("message"))

	if name == "" || email == "" || phone == "" || message == "" {
		h.sessions.Flash(w, r, "All fields are required")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	query := &entity.StudentQuery{
		StudentName: name,
		Email:       email,
		Phone:       phone,
		Message:     message,
	}

	if err := h.queryRepo.Create(query); err != nil {
		h.logger.Error("ошибка сохранения обращения", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Your query has been submitted. We will contact you soon.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
