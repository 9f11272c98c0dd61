package entity

import "time"

type Teacher struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Subject       string    `json:"subject"`
	Qualification string    `json:"qualification"`
	Experience    string    `json:"experience"`
	Description   string    `json:"description"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
