package repository

import (
	"database/sql"
	"errors"

	"schoolsite/internal/entity"
)

type SectionRepository struct {
	db *sql.DB
}

func NewSectionRepository(db *sql.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) Create(section *entity.Section) error {
	return r.db.QueryRow(`
        INSERT INTO sections (title, description, grade, image)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `,
		section.Title,
		section.Description,
		section.Grade,
		section.Image,
	).Scan(&section.ID, &section.CreatedAt)
}

func (r *SectionRepository) GetByID(id int) (*entity.Section, error) {
	var section entity.Section
	err := r.db.QueryRow(`
        SELECT id, title, description, grade, image, created_at
        FROM sections WHERE id = $1
    `, id).Scan(
		&section.ID,
		&section.Title,
		&section.Description,
		&section.Grade,
		&section.Image,
		&section.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &section, nil
}

func (r *SectionRepository) GetAll() ([]entity.Section, error) {
	rows, err := r.db.Query(`
        SELECT id, title, description, grade, image, created_at
        FROM sections
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []entity.Section

	for rows.Next() {
		var section entity.Section
		if err := rows.Scan(
			&section.ID,
			&section.Title,
			&section.Description,
			&section.Grade,
			&section.Image,
			&section.CreatedAt,
		); err != nil {
			return sections, err
		}
		sections = append(sections, section)
	}

	if err = rows.Err(); err != nil {
		return sections, err
	}

	return sections, nil
}

func (r *SectionRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sections`).Scan(&count)
	return count, err
}

func (r *SectionRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM sections WHERE id = $1`, id)
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
