package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"schoolsite/internal/entity"
	middleware "schoolsite/internal/midlleware"
)

type Handlers struct {
	Index        *IndexHandler
	Registration *RegistrationHandler
	Login        *LoginHandler
	Contact      *ContactHandler
	Dashboard    *DashboardHandler
	Teachers     *TeacherHandler
	Sections     *SectionHandler
	Queries      *QueryHandler
}

// NewRouter собирает все маршруты сайта
func NewRouter(h Handlers, sessions *middleware.Sessions, staticDir string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", h.Index.Index)
	r.Get("/register", h.Registration.RegisterPage)
	r.Post("/register", h.Registration.Register)
	r.Get("/login", h.Login.LoginPage)
	r.Post("/login", h.Login.Login)
	r.With(sessions.RequireAuth).Get("/logout", h.Login.Logout)
	r.Post("/contact", h.Contact.Contact)

	r.Route("/admin", func(r chi.Router) {
		r.Use(sessions.RequireAuth)

		adminOnly := sessions.RequireRoles(entity.RoleAdmin)
		staff := sessions.RequireRoles(entity.RoleAdmin, entity.RoleTeacher)

		r.With(adminOnly).Get("/dashboard", h.Dashboard.AdminDashboard)

		r.With(adminOnly).Get("/teachers", h.Teachers.List)
		r.With(adminOnly).Get("/teachers/add", h.Teachers.AddPage)
		r.With(adminOnly).Post("/teachers/add", h.Teachers.Add)
		r.With(adminOnly).Get("/teachers/delete/{id}", h.Teachers.Delete)

		r.With(adminOnly).Get("/sections", h.Sections.List)
		r.With(adminOnly).Get("/sections/add", h.Sections.AddPage)
		r.With(adminOnly).Post("/sections/add", h.Sections.Add)
		r.With(adminOnly).Get("/sections/delete/{id}", h.Sections.Delete)

		r.With(staff).Get("/queries", h.Queries.List)
		r.With(staff).Get("/queries/update_status/{id}/{status}", h.Queries.UpdateStatus)
	})

	r.With(sessions.RequireAuth, sessions.RequireRoles(entity.RoleTeacher)).
		Get("/teacher/dashboard", h.Dashboard.TeacherDashboard)

	// загруженные картинки отдаются как статика
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	return r
}
