package domain

import "time"

type Book struct {
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int32     `json:"publication_year"`
	LibraryID       string    `json:"library_id,omitempty"`
	IsAvailable     bool      `json:"is_available"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}
