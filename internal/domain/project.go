package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxProjectNameLen bounds project names to the width of the projects.name column.
const MaxProjectNameLen = 100

// Project groups a script (pages) and a storyboard (frames).
type Project struct {
	ID        string
	Name      string
	Owner     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateName checks that Name is non-blank and fits the column width.
func (p *Project) ValidateName() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("project name is required")
	}
	if utf8.RuneCountInString(p.Name) > MaxProjectNameLen {
		return NewValidationError("project name must be at most 100 characters")
	}
	return nil
}

// DisplayID returns the first 8 characters of ID for compact output.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
