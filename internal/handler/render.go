package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	middleware "schoolsite/internal/midlleware"
)

// pageData собирает общие данные страницы: флеш-сообщения и текущий пользователь
func pageData(sessions *middleware.Sessions, w http.ResponseWriter, r *http.Request, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"Flashes": sessions.PopFlashes(w, r),
		"User":    sessions.User(r),
	}
	for key, value := range extra {
		data[key] = value
	}

	return data
}

func render(logger *zap.Logger, tmpl *template.Template, w http.ResponseWriter, data interface{}) {
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error("ошибка рендера шаблона", zap.Error(err))
	}
}
