package entity

import "time"

type QueryStatus string

const (
	QueryStatusNew        QueryStatus = "new"
	QueryStatusInProgress QueryStatus = "in_progress"
	QueryStatusResolved   QueryStatus = "resolved"
)

// Valid проверяет, что статус из закрытого списка
func (s QueryStatus) Valid() bool {
	switch s {
	case QueryStatusNew, QueryStatusInProgress, QueryStatusResolved:
		return true
	}
	return false
}

// StudentQuery - обращение через контактную форму
type StudentQuery struct {
	ID          int         `json:"id"`
	StudentName string      `json:"student_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Message     string      `json:"message"`
	Status      QueryStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
