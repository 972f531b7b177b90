package service

import (
	"context"
	"io"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/imagestore"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, owner string) ([]*domain.Project, error)
	Rename(ctx context.Context, id, name string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	DeleteScript(ctx context.Context, id string) (int, error)
	DeleteFrames(ctx context.Context, id string) (int, error)
}

type PageService interface {
	Create(ctx context.Context, p *domain.Page) error
	GetByID(ctx context.Context, id string) (*domain.Page, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Page, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Page, error)
	Delete(ctx context.Context, id string) error
}

// FrameService owns the storyboard of a project: frame lifecycle, ordering
// and timeline. Reorder, ReorderByFrameID and Delete keep every project's
// frames numbered 1..N and laid out contiguously from time 0.
type FrameService interface {
	Create(ctx context.Context, in CreateFrameInput) (*domain.Frame, error)
	GetByID(ctx context.Context, id string) (*domain.Frame, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Frame, error)
	Reorder(ctx context.Context, projectID, frameID string, newNumber int) ([]*domain.Frame, error)
	ReorderByFrameID(ctx context.Context, frameID string, newNumber int) ([]*domain.Frame, error)
	Delete(ctx context.Context, id string) error

	SetStartTime(ctx context.Context, id string, start int) (*domain.Frame, error)
	SetEndTime(ctx context.Context, id string, end int) (*domain.Frame, error)
	SetTimes(ctx context.Context, id string, start, end int) (*domain.Frame, error)
	SetDescription(ctx context.Context, id, description string) (*domain.Frame, error)
	ConnectPage(ctx context.Context, frameID, pageID string) (*domain.Frame, error)
	DisconnectPage(ctx context.Context, frameID string) (*domain.Frame, error)

	UploadImage(ctx context.Context, frameID string, r io.Reader) (*domain.Frame, error)
	DeleteImage(ctx context.Context, frameID string) error
	ImagePath(ctx context.Context, frameID string) (string, error)

	ExportStoryboard(ctx context.Context, projectID string) (*Storyboard, error)
}

// ImageStore keeps frame images on disk.
type ImageStore interface {
	Save(frameID string, r io.Reader) (*imagestore.Saved, error)
	Remove(path string) error
	Exists(path string) bool
}

// CreateFrameInput carries the fields accepted when creating a frame.
// A nil Number appends the frame after the last one.
type CreateFrameInput struct {
	ProjectID     string
	StartTime     int
	EndTime       int
	Description   string
	PicPath       string
	Number        *int
	ConnectedPage *string
}

// Storyboard is a read-only snapshot of a project's frames in order.
type Storyboard struct {
	ProjectID   string           `json:"project_id" yaml:"project_id"`
	ProjectName string           `json:"project_name" yaml:"project_name"`
	TotalLength int              `json:"total_length" yaml:"total_length"`
	Frames      []StoryboardShot `json:"frames" yaml:"frames"`
}

// StoryboardShot is one frame of a Storyboard.
type StoryboardShot struct {
	Number      int    `json:"number" yaml:"number"`
	FrameID     string `json:"frame_id" yaml:"frame_id"`
	StartTime   int    `json:"start_time" yaml:"start_time"`
	EndTime     int    `json:"end_time" yaml:"end_time"`
	Duration    int    `json:"duration" yaml:"duration"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	Page        int    `json:"page,omitempty" yaml:"page,omitempty"`
}
