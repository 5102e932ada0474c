package model

import "time"

// Story data model. A story is created once via a validated submission and
// never updated or deleted afterwards. All string fields are stored trimmed
// of surrounding whitespace.
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Tag       string    `json:"tag"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
