package handler

import (
	"bytes"
	"database/sql"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schoolsite/internal/auth"
	"schoolsite/internal/database"
	"schoolsite/internal/entity"
	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
	"schoolsite/internal/upload"
)

// Интеграционные тесты ходят в настоящий Postgres.
// Без TEST_DATABASE_URL они пропускаются.
type testApp struct {
	server     *httptest.Server
	db         *sql.DB
	uploadsDir string
	userRepo   *repository.UserRepository
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())

	require.NoError(t, database.MigrateURL(databaseURL))

	_, err = db.Exec(`TRUNCATE TABLE student_queries, sections, teachers, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	logger := zap.NewNop()
	sessions := middleware.NewSessions("test-secret")

	staticDir := t.TempDir()
	uploadsDir := filepath.Join(staticDir, "images")
	uploads, err := upload.NewStorage(uploadsDir)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	queryRepo := repository.NewQueryRepository(db)

	router := NewRouter(Handlers{
		Index:        NewIndexHandler(teacherRepo, sectionRepo, sessions, logger),
		Registration: NewRegistrationHandler(userRepo, sessions, logger),
		Login:        NewLoginHandler(userRepo, sessions, logger),
		Contact:      NewContactHandler(queryRepo, sessions, logger),
		Dashboard:    NewDashboardHandler(teacherRepo, sectionRepo, queryRepo, sessions, logger),
		Teachers:     NewTeacherHandler(teacherRepo, uploads, sessions, logger),
		Sections:     NewSectionHandler(sectionRepo, uploads, sessions, logger),
		Queries:      NewQueryHandler(queryRepo, sessions, logger),
	}, sessions, staticDir)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, db: db, uploadsDir: uploadsDir, userRepo: userRepo}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar}
}

func (a *testApp) createUser(t *testing.T, username, email, password string, role entity.Role) {
	t.Helper()

	passwordHash, err := auth.HashPassword(password)
	require.NoError(t, err)

	_, err = a.userRepo.Create(username, email, passwordHash, role)
	require.NoError(t, err)
}

// post отправляет форму и возвращает финальный ответ после редиректов
func (a *testApp) post(t *testing.T, client *http.Client, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	resp, err := client.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func (a *testApp) get(t *testing.T, client *http.Client, path string) (*http.Response, string) {
	t.Helper()

	resp, err := client.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func (a *testApp) login(t *testing.T, client *http.Client, username, password string) (*http.Response, string) {
	t.Helper()

	return a.post(t, client, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

func (a *testApp) count(t *testing.T, query string, args ...interface{}) int {
	t.Helper()

	var count int
	require.NoError(t, a.db.QueryRow(query, args...).Scan(&count))
	return count
}

func TestRegister_DuplicateUsername(t *testing.T) {
	app := setupApp(t)

	_, body := app.post(t, newClient(t), "/register", url.Values{
		"username": {"alice"},
		"email":    {"a@x.com"},
		"password": {"p1"},
	})
	require.Contains(t, body, "Registration successful. Please login.")

	_, body = app.post(t, newClient(t), "/register", url.Values{
		"username": {"alice"},
		"email":    {"other@x.com"},
		"password": {"p2"},
	})
	require.Contains(t, body, "Username already exists")

	require.Equal(t, 1, app.count(t, `SELECT COUNT(*) FROM users WHERE username = $1`, "alice"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := setupApp(t)

	app.post(t, newClient(t), "/register", url.Values{
		"username": {"alice"},
		"email":    {"a@x.com"},
		"password": {"p1"},
	})

	_, body := app.post(t, newClient(t), "/register", url.Values{
		"username": {"bob"},
		"email":    {"a@x.com"},
		"password": {"p2"},
	})
	require.Contains(t, body, "Email already exists")

	require.Equal(t, 1, app.count(t, `SELECT COUNT(*) FROM users`))
}

func TestLogin_RedirectsByRole(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "root", "root@x.com", "p1", entity.RoleAdmin)
	app.createUser(t, "sharma", "s@x.com", "p1", entity.RoleTeacher)
	app.createUser(t, "alice", "a@x.com", "p1", entity.RoleStudent)

	resp, body := app.login(t, newClient(t), "root", "p1")
	require.Equal(t, "/admin/dashboard", resp.Request.URL.Path)
	require.Contains(t, body, "Admin Dashboard")

	resp, body = app.login(t, newClient(t), "sharma", "p1")
	require.Equal(t, "/teacher/dashboard", resp.Request.URL.Path)
	require.Contains(t, body, "Teacher Dashboard")

	resp, _ = app.login(t, newClient(t), "alice", "p1")
	require.Equal(t, "/", resp.Request.URL.Path)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "alice", "a@x.com", "p1", entity.RoleStudent)

	client := newClient(t)

	resp, body := app.login(t, client, "alice", "wrong")
	require.Equal(t, "/login", resp.Request.URL.Path)
	require.Contains(t, body, "Invalid username or password")

	// сессии нет, защищенный маршрут снова ведет на логин
	resp, _ = app.get(t, client, "/admin/dashboard")
	require.Equal(t, "/login", resp.Request.URL.Path)
}

func TestLogin_UnknownUser(t *testing.T) {
	app := setupApp(t)

	_, body := app.login(t, newClient(t), "ghost", "p1")
	require.Contains(t, body, "Invalid username or password")
}

func TestAccessDenied_ForStudent(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "alice", "a@x.com", "p1", entity.RoleStudent)

	client := newClient(t)
	app.login(t, client, "alice", "p1")

	resp, body := app.get(t, client, "/admin/dashboard")
	require.Equal(t, "/", resp.Request.URL.Path)
	require.Contains(t, body, "Access denied")
}

func TestLogin_NextRedirect(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "sharma", "s@x.com", "p1", entity.RoleTeacher)

	client := newClient(t)

	// аноним идет на защищенную страницу и попадает на логин
	resp, _ := app.get(t, client, "/admin/queries")
	require.Equal(t, "/login", resp.Request.URL.Path)

	// после логина возвращаемся на исходную страницу
	resp, body := app.login(t, client, "sharma", "p1")
	require.Equal(t, "/admin/queries", resp.Request.URL.Path)
	require.Contains(t, body, "Student Queries")
}

func TestContact_Anonymous(t *testing.T) {
	app := setupApp(t)

	_, body := app.post(t, newClient(t), "/contact", url.Values{
		"name":    {"Bob"},
		"email":   {"b@x.com"},
		"phone":   {"123456"},
		"message": {"When do admissions open?"},
	})
	require.Contains(t, body, "Your query has been submitted. We will contact you soon.")

	require.Equal(t, 1, app.count(t, `SELECT COUNT(*) FROM student_queries WHERE status = $1`, "new"))
}

func TestAdminSeed_Idempotent(t *testing.T) {
	app := setupApp(t)

	passwordHash, err := auth.HashPassword("changeme")
	require.NoError(t, err)

	require.NoError(t, app.userRepo.EnsureAdmin("admin", "admin@school.local", passwordHash))
	require.NoError(t, app.userRepo.EnsureAdmin("admin", "admin@school.local", passwordHash))

	require.Equal(t, 1, app.count(t, `SELECT COUNT(*) FROM users WHERE username = $1 AND role = $2`, "admin", "admin"))
}

func TestTeacher_AddAndDelete(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "root", "root@x.com", "p1", entity.RoleAdmin)

	client := newClient(t)
	app.login(t, client, "root", "p1")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range map[string]string{
		"name":          "Mr. Sharma",
		"subject":       "Maths",
		"qualification": "M.Sc.",
		"experience":    "10 years",
		"description":   "Senior maths teacher",
	} {
		require.NoError(t, w.WriteField(key, value))
	}
	fw, err := w.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	fw.Write([]byte("not-really-a-png"))
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/admin/teachers/add", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := client.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Contains(t, string(body), "Teacher added successfully")

	// картинка получила ключ хранения и легла на диск
	var image string
	require.NoError(t, app.db.QueryRow(`SELECT image FROM teachers WHERE name = $1`, "Mr. Sharma").Scan(&image))
	require.NotEmpty(t, image)
	_, err = os.Stat(filepath.Join(app.uploadsDir, image))
	require.NoError(t, err)

	var id int
	require.NoError(t, app.db.QueryRow(`SELECT id FROM teachers WHERE name = $1`, "Mr. Sharma").Scan(&id))

	_, delBody := app.get(t, client, "/admin/teachers/delete/"+itoa(id))
	require.Contains(t, delBody, "Teacher deleted successfully")
	require.Equal(t, 0, app.count(t, `SELECT COUNT(*) FROM teachers`))
}

func TestTeacherDelete_NotFound(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "root", "root@x.com", "p1", entity.RoleAdmin)

	client := newClient(t)
	app.login(t, client, "root", "p1")

	resp, _ := app.get(t, client, "/admin/teachers/delete/9999")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSectionAdd_MissingTitle_NoRow(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "root", "root@x.com", "p1", entity.RoleAdmin)

	client := newClient(t)
	app.login(t, client, "root", "p1")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("description", "Primary wing"))
	require.NoError(t, w.WriteField("grade", "5"))
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/admin/sections/add", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := client.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Contains(t, string(body), "All fields are required")

	require.Equal(t, 0, app.count(t, `SELECT COUNT(*) FROM sections`))
}

func TestQueryStatus_UpdateByTeacher(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "sharma", "s@x.com", "p1", entity.RoleTeacher)

	app.post(t, newClient(t), "/contact", url.Values{
		"name":    {"Bob"},
		"email":   {"b@x.com"},
		"phone":   {"123456"},
		"message": {"Fees?"},
	})

	var id int
	require.NoError(t, app.db.QueryRow(`SELECT id FROM student_queries`).Scan(&id))

	client := newClient(t)
	app.login(t, client, "sharma", "p1")

	_, body := app.get(t, client, "/admin/queries/update_status/"+itoa(id)+"/in_progress")
	require.Contains(t, body, "Query status updated")
	require.Equal(t, 1, app.count(t, `SELECT COUNT(*) FROM student_queries WHERE status = $1`, "in_progress"))

	resp, _ := app.get(t, client, "/admin/queries/update_status/9999/resolved")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
