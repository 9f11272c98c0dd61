package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"schoolsite/internal/entity"
	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
	"schoolsite/internal/templates"
)

type DashboardHandler struct {
	teacherRepo *repository.TeacherRepository
	sectionRepo *repository.SectionRepository
	queryRepo   *repository.QueryRepository
	sessions    *middleware.Sessions
	logger      *zap.Logger
	tmplAdmin   *template.Template
	tmplTeacher *template.Template
}

func NewDashboardHandler(
	teacherRepo *repository.TeacherRepository,
	sectionRepo *repository.SectionRepository,
	queryRepo *repository.QueryRepository,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		teacherRepo: teacherRepo,
		sectionRepo: sectionRepo,
		queryRepo:   queryRepo,
		sessions:    sessions,
		logger:      logger,
		tmplAdmin:   templates.Must("admin_dashboard.html"),
		tmplTeacher: templates.Must("teacher_dashboard.html"),
	}
}

// AdminDashboard - сводка счетчиков для администратора
func (h *DashboardHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teacherRepo.Count()
	if err != nil {
		h.logger.Error("ошибка подсчета преподавателей", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sections, err := h.sectionRepo.Count()
	if err != nil {
		h.logger.Error("ошибка подсчета курсов", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	queries, newQueries, err := h.queryCounts()
	if err != nil {
		h.logger.Error("ошибка подсчета обращений", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title":      "Admin Dashboard",
		"Teachers":   teachers,
		"Sections":   sections,
		"Queries":    queries,
		"NewQueries": newQueries,
	})

	render(h.logger, h.tmplAdmin, w, data)
}

// TeacherDashboard - сводка для преподавателя, только обращения
func (h *DashboardHandler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	queries, newQueries, err := h.queryCounts()
	if err != nil {
		h.logger.Error("ошибка подсчета обращений", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title":      "Teacher Dashboard",
		"Queries":    queries,
		"NewQueries": newQueries,
	})

	render(h.logger, h.tmplTeacher, w, data)
}

func (h *DashboardHandler) queryCounts() (total, fresh int, err error) {
	total, err = h.queryRepo.Count()
	if err != nil {
		return 0, 0, err
	}

	fresh, err = h.queryRepo.CountByStatus(entity.QueryStatusNew)
	if err != nil {
		return 0, 0, err
	}

	return total, fresh, nil
}
