package domain

import "time"

type Library struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedOn time.Time `json:"created_on"`
}
