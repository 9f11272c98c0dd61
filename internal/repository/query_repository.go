package repository

import (
	"database/sql"

	"schoolsite/internal/entity"
)

type QueryRepository struct {
	db *sql.DB
}

func NewQueryRepository(db *sql.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

func (r *QueryRepository) Create(query *entity.StudentQuery) error {
	query.Status = entity.QueryStatusNew

	return r.db.QueryRow(`
        INSERT INTO student_queries (student_name, email, phone, message, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `,
		query.StudentName,
		query.Email,
		query.Phone,
		query.Message,
		string(query.Status),
	).Scan(&query.ID, &query.CreatedAt)
}

// GetAll возвращает обращения, новые сверху
func (r *QueryRepository) GetAll() ([]entity.StudentQuery, error) {
	rows, err := r.db.Query(`
        SELECT id, student_name, email, phone, message, status, created_at
        FROM student_queries
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []entity.StudentQuery

	for rows.Next() {
		var query entity.StudentQuery
		if err := rows.Scan(
			&query.ID,
			&query.StudentName,
			&query.Email,
			&query.Phone,
			&query.Message,
			&query.Status,
			&query.CreatedAt,
		); err != nil {
			return queries, err
		}
		queries = append(queries, query)
	}

	if err = rows.Err(); err != nil {
		return queries, err
	}

	return queries, nil
}

func (r *QueryRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM student_queries`).Scan(&count)
	return count, err
}

func (r *QueryRepository) CountByStatus(status entity.QueryStatus) (int, error) {
	var count int
	err := r.db.QueryRow(`
        SELECT COUNT(*) FROM student_queries WHERE status = $1
    `, string(status)).Scan(&count)

	return count, err
}

func (r *QueryRepository) UpdateStatus(id int, status entity.QueryStatus) error {
	result, err := r.db.Exec(`
        UPDATE student_queries SET status = $1 WHERE id = $2
    `, string(status), id)
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
