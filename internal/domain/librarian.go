package domain

import "time"

type Librarian struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	LibraryID string    `json:"library_id"`
	CreatedOn time.Time `json:"created_on"`
}
