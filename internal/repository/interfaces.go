package repository

import (
	"context"

	"github.com/GIVandez/plot-twister/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, owner string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type PageRepo interface {
	Create(ctx context.Context, p *domain.Page) error
	GetByID(ctx context.Context, id string) (*domain.Page, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Page, error)
	MaxNumber(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, p *domain.Page) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}

// FrameRepo persists storyboard frames. Ordered reads always return frames
// sorted by number. AssignNumbers and ApplyPlacements each issue exactly one
// statement so a renumbering phase is a single atomic write.
type FrameRepo interface {
	Create(ctx context.Context, f *domain.Frame) error
	GetByID(ctx context.Context, id string) (*domain.Frame, error)
	GetByNumber(ctx context.Context, projectID string, number int) (*domain.Frame, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Frame, error)
	Count(ctx context.Context, projectID string) (int, error)
	MaxNumber(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, f *domain.Frame) error
	UpdatePlacement(ctx context.Context, f *domain.Frame) error
	AssignNumbers(ctx context.Context, projectID string, batch []domain.NumberAssignment) error
	ApplyPlacements(ctx context.Context, projectID string, frames []*domain.Frame) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}
