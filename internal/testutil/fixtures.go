package testutil

import (
	"fmt"
	"time"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/google/uuid"
)

// ProjectOption customizes a project built by NewTestProject.
type ProjectOption func(*domain.Project)

func WithOwner(owner string) ProjectOption {
	return func(p *domain.Project) {
		p.Owner = owner
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Owner:     "tester",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PageOption customizes a page built by NewTestPage.
type PageOption func(*domain.Page)

func WithPageText(text string) PageOption {
	return func(p *domain.Page) {
		p.Text = text
	}
}

func NewTestPage(projectID string, number int, opts ...PageOption) *domain.Page {
	now := time.Now().UTC()
	p := &domain.Page{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Number:    number,
		Text:      fmt.Sprintf("Page %d", number),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FrameOption customizes a frame built by NewTestFrame.
type FrameOption func(*domain.Frame)

func WithTimes(start, end int) FrameOption {
	return func(f *domain.Frame) {
		f.StartTime = start
		f.EndTime = end
	}
}

func WithDescription(d string) FrameOption {
	return func(f *domain.Frame) {
		f.Description = d
	}
}

func WithConnectedPage(pageID string) FrameOption {
	return func(f *domain.Frame) {
		f.ConnectedPage = &pageID
	}
}

func WithPicPath(path string) FrameOption {
	return func(f *domain.Frame) {
		f.PicPath = path
	}
}

func NewTestFrame(projectID string, number int, opts ...FrameOption) *domain.Frame {
	now := time.Now().UTC()
	f := &domain.Frame{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Number:      number,
		StartTime:   0,
		EndTime:     10,
		Description: fmt.Sprintf("Frame %d", number),
		PicPath:     fmt.Sprintf("/uploads/frame_%d.jpg", number),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ContiguousFrames builds one frame per duration, numbered from 1 and laid
// out back to back from time 0.
func ContiguousFrames(projectID string, durations ...int) []*domain.Frame {
	frames := make([]*domain.Frame, len(durations))
	cursor := 0
	for i, d := range durations {
		frames[i] = NewTestFrame(projectID, i+1, WithTimes(cursor, cursor+d))
		cursor += d
	}
	return frames
}
