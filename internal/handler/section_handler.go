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

type SectionHandler struct {
	sectionRepo *repository.SectionRepository
	uploads     *upload.Storage
	sessions    *middleware.Sessions
	logger      *zap.Logger
	tmplList    *template.Template
	tmplAdd     *template.Template
}

func NewSectionHandler(
	sectionRepo *repository.SectionRepository,
	uploads *upload.Storage,
	sessions *middleware.Sessions,
	logger *zap.Logger,
) *SectionHandler {
	return &SectionHandler{
		sectionRepo: sectionRepo,
		uploads:     uploads,
		sessions:    sessions,
		logger:      logger,
		tmplList:    templates.Must("manage_sections.html"),
		tmplAdd:     templates.Must("add_section.html"),
	}
}

func (h *SectionHandler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sectionRepo.GetAll()
	if err != nil {
		h.logger.Error("ошибка получения курсов", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title":    "Manage Sections",
		"Sections": sections,
	})

	render(h.logger, h.tmplList, w, data)
}

func (h *SectionHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	data := pageData(h.sessions, w, r, map[string]interface{}{
		"Title": "Add Section",
	})

	render(h.logger, h.tmplAdd, w, data)
}

func (h *SectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	section := &entity.Section{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Grade:       strings.TrimSpace(r.FormValue("grade")),
	}

	if section.Title == "" || section.Description == "" || section.Grade == "" {
		h.sessions.Flash(w, r, "All fields are required")
		http.Redirect(w, r, "/admin/sections/add", http.StatusSeeOther)
		return
	}

	stored, err := saveOptionalImage(h.uploads, r)
	if err != nil {
		h.logger.Error("ошибка сохранения картинки", zap.Error(err))
		h.sessions.Flash(w, r, "Failed to save image")
		http.Redirect(w, r, "/admin/sections/add", http.StatusSeeOther)
		return
	}
	section.Image = stored

	if err := h.sectionRepo.Create(section); err != nil {
		// не оставляем файл без записи
		h.uploads.Remove(stored)
		h.logger.Error("ошибка создания курса", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Section added successfully")
	http.Redirect(w, r, "/admin/sections", http.StatusSeeOther)
}

func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = h.sectionRepo.Delete(id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("ошибка удаления курса", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(w, r, "Section deleted successfully")
	http.Redirect(w, r, "/admin/sections", http.StatusSeeOther)
}
