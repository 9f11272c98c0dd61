package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"schoolsite/internal/auth"
	"schoolsite/internal/database"
	"schoolsite/internal/handler"
	middleware "schoolsite/internal/midlleware"
	"schoolsite/internal/repository"
	"schoolsite/internal/upload"
)

func main() {
	// .env опционален, на хостинге переменные приходят из окружения
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	config := database.LoadConfig()

	db, err := database.InitDB(config)
	if err != nil {
		logger.Fatal("ошибка инициализации БД", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(config); err != nil {
		logger.Fatal("ошибка миграций", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	queryRepo := repository.NewQueryRepository(db)

	if err := seedAdmin(userRepo); err != nil {
		logger.Fatal("ошибка создания администратора", zap.Error(err))
	}

	sessions := middleware.NewSessions(getEnv("SESSION_SECRET", "a-very-secret-key"))

	staticDir := getEnv("STATIC_DIR", "static")

	uploads, err := upload.NewStorage(getEnv("UPLOAD_DIR", filepath.Join(staticDir, "images")))
	if err != nil {
		logger.Fatal("ошибка директории загрузок", zap.Error(err))
	}

	router := handler.NewRouter(handler.Handlers{
		Index:        handler.NewIndexHandler(teacherRepo, sectionRepo, sessions, logger),
		Registration: handler.NewRegistrationHandler(userRepo, sessions, logger),
		Login:        handler.NewLoginHandler(userRepo, sessions, logger),
		Contact:      handler.NewContactHandler(queryRepo, sessions, logger),
		Dashboard:    handler.NewDashboardHandler(teacherRepo, sectionRepo, queryRepo, sessions, logger),
		Teachers:     handler.NewTeacherHandler(teacherRepo, uploads, sessions, logger),
		Sections:     handler.NewSectionHandler(sectionRepo, uploads, sessions, logger),
		Queries:      handler.NewQueryHandler(queryRepo, sessions, logger),
	}, sessions, staticDir)

	port := getEnv("PORT", "8080")

	logger.Info("сервер запущен", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal("ошибка запуска сервера", zap.Error(err))
	}
}

// seedAdmin гарантирует ровно одну учетку администратора
func seedAdmin(userRepo *repository.UserRepository) error {
	passwordHash, err := auth.HashPassword(getEnv("ADMIN_PASSWORD", "changeme"))
	if err != nil {
		return err
	}

	return userRepo.EnsureAdmin(
		getEnv("ADMIN_USERNAME", "admin"),
		getEnv("ADMIN_EMAIL", "admin@school.local"),
		passwordHash,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
