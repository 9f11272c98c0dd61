package repository

import (
	"database/sql"
	"errors"

	"schoolsite/internal/entity"
)

type TeacherRepository struct {
	db *sql.DB
}

func NewTeacherRepository(db *sql.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func (r *TeacherRepository) Create(teacher *entity.Teacher) error {
	return r.db.QueryRow(`
        INSERT INTO teachers (name, subject, qualification, experience, description, image)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `,
		teacher.Name,
		teacher.Subject,
		teacher.Qualification,
		teacher.Experience,
		teacher.Description,
		teacher.Image,
	).Scan(&teacher.ID, &teacher.CreatedAt)
}

func (r *TeacherRepository) GetByID(id int) (*entity.Teacher, error) {
	var teacher entity.Teacher
	err := r.db.QueryRow(`
        SELECT id, name, subject, qualification, experience, description, image, created_at
        FROM teachers WHERE id = $1
    `, id).Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Subject,
		&teacher.Qualification,
		&teacher.Experience,
		&teacher.Description,
		&teacher.Image,
		&teacher.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &teacher, nil
}

func (r *TeacherRepository) GetAll() ([]entity.Teacher, error) {
	rows, err := r.db.Query(`
        SELECT id, name, subject, qualification, experience, description, image, created_at
        FROM teachers
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []entity.Teacher

	for rows.Next() {
		var teacher entity.Teacher
		if err := rows.Scan(
			&teacher.ID,
			&teacher.Name,
			&teacher.Subject,
			&teacher.Qualification,
			&teacher.Experience,
			&teacher.Description,
			&teacher.Image,
			&teacher.CreatedAt,
		); err != nil {
			return teachers, err
		}
		teachers = append(teachers, teacher)
	}

	if err = rows.Err(); err != nil {
		return teachers, err
	}

	return teachers, nil
}

func (r *TeacherRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM teachers`).Scan(&count)
	return count, err
}

// Delete удаляет преподавателя. Несуществующий id - это ErrNotFound,
// а не тихий успех.
func (r *TeacherRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
