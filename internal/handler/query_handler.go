package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"schoolsite/internal/entity"
	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
	"schoolsite/internal/templates"
)

type QueryHandler struct {
	queryRepo *repository.QueryRepository
	sessions  *middleware.Sessions
	logger    *zap.Logger
	tmpl      *template.Template
}

func NewQueryHandler(
	queryRepo *repository.QueryRepository,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *QueryHandler {
	return &QueryHandler{
		queryRepo: queryRepo,
		sessions:  sessions,
		logger:    logger,
		tmpl:      templates.Must("student_queries.html"),
	}
}

// List показывает обращения, новые сверху. Доступно админу и преподавателю.
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	queries, err := h.queryRepo.GetAll()
	if err != nil {
		h.logger.Error("ошибка получения обращений", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title":   "Student Queries",
		"Queries": queries,
		"Statuses": []entity.QueryStatus{
			entity.QueryStatusNew,
			entity.QueryStatusInProgress,
			entity.QueryStatusResolved,
		},
	})

	render(h.logger, h.tmpl, w, data)
}

func (h *QueryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := entity.QueryStatus(chi.URLParam(r, "status"))
	if !status.Valid() {
		h.sessions.Flash(w, r, "Invalid status")
		http.Redirect(w, r, "/admin/queries", http.StatusSeeOther)
		return
	}

	err = h.queryRepo.UpdateStatus(id, status)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("ошибка обновления статуса", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Query status updated")
	http.Redirect(w, r, "/admin/queries", http.StatusSeeOther)
}
