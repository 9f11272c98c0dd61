package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("repository: запись не найдена")
	ErrUsernameTaken = errors.New("repository: имя пользователя занято")
	ErrEmailTaken    = errors.New("repository: email занят")
)

// uniqueViolation возвращает имя нарушенного ограничения уникальности
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return pqErr.Constraint, true
	}
	return "", false
}
