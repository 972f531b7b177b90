package domain

import "time"

// Page is one numbered page of a project's script.
type Page struct {
	ID        string
	ProjectID string
	Number    int
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
