package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"schoolsite/internal/entity"
	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
	"schoolsite/internal/templates"
	"schoolsite/internal/upload"
)

const maxUploadSize = 10 << 20

type TeacherHandler struct {
	teacherRepo *repository.TeacherRepository
	uploads     *upload.Storage
	sessions    *middleware.Sessions
	logger      *zap.Logger
	tmplList    *template.Template
	tmplAdd     *template.Template
}

func NewTeacherHandler(
	teacherRepo *repository.TeacherRepository,
	uploads *upload.Storage,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		teacherRepo: teacherRepo,
		uploads:     uploads,
		sessions:    sessions,
		logger:      logger,
		tmplList:    templates.Must("manage_teachers.html"),
		tmplAdd:     templates.Must("add_teacher.html"),
	}
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teacherRepo.GetAll()
	if err != nil {
		h.logger.Error("ошибка получения преподавателей", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title":    "Manage Teachers",
		"Teachers": teachers,
	})

	render(h.logger, h.tmplList, w, data)
}

func (h *TeacherHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title": "Add Teacher",
	})

	render(h.logger, h.tmplAdd, w, data)
}

// Add создает профиль преподавателя, картинка опциональна.
// Файл пишем до вставки в БД и убираем, если вставка не прошла.
func (h *TeacherHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	teacher := &entity.Teacher{
		Name:          strings.TrimSpace(r.FormValue("name")),
		Subject:       strings.TrimSpace(r.FormValue("subject")),
		Qualification: strings.TrimSpace(r.FormValue("qualification")),
		Experience:    strings.TrimSpace(r.FormValue("experience")),
		Description:   strings.TrimSpace(r.FormValue("description")),
	}

	if teacher.Name == "" || teacher.Subject == "" || teacher.Qualification == "" ||
		teacher.Experience == "" || teacher.Description == "" {
		h.sessions.Flash(w, r, "All fields are required")
		http.Redirect(w, r, "/admin/teachers/add", http.StatusSeeOther)
		return
	}

	stored, err := saveOptionalImage(h.uploads, r)
	if err != nil {
		h.logger.Error("ошибка сохранения картинки", zap.Error(err))
		h.sessions.Flash(w, r, "Failed to save image")
		http.Redirect(w, r, "/admin/teachers/add", http.StatusSeeOther)
		return
	}
	teacher.Image = stored

	if err := h.teacherRepo.Create(teacher); err != nil {
		// не оставляем файл без записи
		h.uploads.Remove(stored)
		h.logger.Error("ошибка создания преподавателя", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Teacher added successfully")
	http.Redirect(w, r, "/admin/teachers", http.StatusSeeOther)
}

func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = h.teacherRepo.Delete(id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("ошибка удаления преподавателя", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Teacher deleted successfully")
	http.Redirect(w, r, "/admin/teachers", http.StatusSeeOther)
}

// saveOptionalImage сохраняет файл из поля image, если он есть.
// Нет файла - не ошибка, сущность остается без картинки.
func saveOptionalImage(uploads *upload.Storage, r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if header.Filename == "" {
		return "", nil
	}

	return uploads.Save(file, header)
}
