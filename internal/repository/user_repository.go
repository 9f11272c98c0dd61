package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"schoolsite/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создает пользователя. Уникальность username/email гарантирует
// ограничение в БД, ошибка переводится в ErrUsernameTaken/ErrEmailTaken.
func (r *UserRepository) Create(username, email, passwordHash string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("недопустимая роль: %q", role)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	err := r.db.QueryRow(`
        INSERT INTO users (username, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, username, email, passwordHash, string(role)).Scan(&user.ID, &user.CreatedAt)

	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case "users_username_key":
			return nil, ErrUsernameTaken
		case "users_email_key":
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(`
        SELECT id, username, email, password_hash, role, created_at
        FROM users WHERE username = $1
    `, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByID(id int) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(`
        SELECT id, username, email, password_hash, role, created_at
        FROM users WHERE id = $1
    `, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)
    `, username).Scan(&exists)

	return exists, err
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
    `, email).Scan(&exists)

	return exists, err
}

// EnsureAdmin создает учетку администратора, если её ещё нет.
// Повторный запуск ничего не меняет - гонку закрывает ON CONFLICT.
func (r *UserRepository) EnsureAdmin(username, email, passwordHash string) error {
	_, err := r.db.Exec(`
        INSERT INTO users (username, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (username) DO NOTHING
    `, username, email, passwordHash, string(entity.RoleAdmin))

	return err
}
