package service

import (
	"context"
	"strings"
	"time"

	"github.com/GIVandez/plot-twister/internal/db"
	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	images   ImageStore
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, images ImageStore, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		uow:      uow,
		images:   images,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner": p.Owner}
	defer func() { observe(ctx, s.observer, "create-project", startedAt, fields, err) }()

	p.Name = strings.TrimSpace(p.Name)
	if err = p.ValidateName(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	fields["project_id"] = p.ID

	err = domain.Internal("create project", s.projects.Create(ctx, p))
	return err
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get project", err)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, owner string) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx, owner)
	if err != nil {
		return nil, domain.Internal("list projects", err)
	}
	return projects, nil
}

func (s *projectService) Rename(ctx context.Context, id, name string) (project *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { observe(ctx, s.observer, "rename-project", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		p, err := projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Name = strings.TrimSpace(name)
		if err := p.ValidateName(); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		if err := projects.Update(ctx, p); err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		err = domain.Internal("rename project", err)
		return nil, err
	}
	return project, nil
}

// Delete removes a project with its pages and frames. Stored frame images
// are removed once the rows are gone.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { observe(ctx, s.observer, "delete-project", startedAt, fields, err) }()

	var pics []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		frames, err := repository.NewSQLiteFrameRepo(tx).ListByProject(ctx, id)
		if err != nil {
			return err
		}
		pics = picPaths(frames)
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
	})
	if err != nil {
		err = domain.Internal("delete project", err)
		return err
	}
	fields["frames"] = len(pics)
	s.removeImages(fields, pics)
	return nil
}

// DeleteScript removes every page of a project. Frames stay and lose their
// page link.
func (s *projectService) DeleteScript(ctx context.Context, id string) (deleted int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { observe(ctx, s.observer, "delete-script", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		deleted, err = repository.NewSQLitePageRepo(tx).DeleteByProject(ctx, id)
		return err
	})
	if err != nil {
		err = domain.Internal("delete script", err)
		return 0, err
	}
	fields["pages"] = deleted
	return deleted, nil
}

// DeleteFrames empties the storyboard of a project.
func (s *projectService) DeleteFrames(ctx context.Context, id string) (deleted int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { observe(ctx, s.observer, "delete-storyboard", startedAt, fields, err) }()

	var pics []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, id); err != nil {
			return err
		}
		frames := repository.NewSQLiteFrameRepo(tx)
		existing, err := frames.ListByProject(ctx, id)
		if err != nil {
			return err
		}
		pics = picPaths(existing)
		deleted, err = frames.DeleteByProject(ctx, id)
		return err
	})
	if err != nil {
		err = domain.Internal("delete storyboard", err)
		return 0, err
	}
	fields["frames"] = deleted
	s.removeImages(fields, pics)
	return deleted, nil
}

func (s *projectService) removeImages(fields map[string]any, paths []string) {
	failed := 0
	for _, p := range paths {
		if err := s.images.Remove(p); err != nil {
			failed++
		}
	}
	if failed > 0 {
		fields["image_cleanup_failures"] = failed
	}
}

func picPaths(frames []*domain.Frame) []string {
	out := make([]string, 0, len(frames))
	for _, f := range frames {
		out = append(out, f.PicPath)
	}
	return out
}
