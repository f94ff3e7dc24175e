package domain

import "time"

type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LibraryID string    `json:"library_id,omitempty"`
	JoinedOn  time.Time `json:"joined_on"`
}
