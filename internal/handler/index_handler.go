package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
	"schoolsite/internal/templates"
)

type IndexHandler struct {
	teacherRepo *repository.TeacherRepository
	sectionRepo *repository.SectionRepository
	sessions    *middleware.Sessions
	logger      *zap.Logger
	tmpl        *template.Template
}

func NewIndexHandler(
	teacherRepo *repository.TeacherRepository,
	sectionRepo *repository.SectionRepository,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *IndexHandler {
	return &IndexHandler{
		teacherRepo: teacherRepo,
		sectionRepo: sectionRepo,
		sessions:    sessions,
		logger:      logger,
		tmpl:        templates.Must("index.html"),
	}
}

// Index - публичная главная со списками преподавателей и курсов
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teacherRepo.GetAll()
	if err != nil {
		h.logger.Error("ошибка получения преподавателей", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sections, err := h.sectionRepo.GetAll()
	if err != nil {
		h.logger.Error("ошибка получения курсов", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title":    "School",
		"Teachers": teachers,
		"Sections": sections,
	})

	render(h.logger, h.tmpl, w, data)
}
