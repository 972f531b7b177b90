package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GIVandez/plot-twister/internal/db"
	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/repository"
	"github.com/google/uuid"
)

type pageService struct {
	pages    repository.PageRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPageService(pages repository.PageRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PageService {
	return &pageService{
		pages:    pages,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create adds a page to a project. A zero Number appends the page after the
// last one.
func (s *pageService) Create(ctx context.Context, p *domain.Page) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": p.ProjectID}
	defer func() { observe(ctx, s.observer, "create-page", startedAt, fields, err) }()

	if p.Number < 0 {
		err = domain.NewValidationError(fmt.Sprintf("page number must be positive, got %d", p.Number))
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, p.ProjectID); err != nil {
			return err
		}
		pages := repository.NewSQLitePageRepo(tx)
		if p.Number == 0 {
			maxNumber, err := pages.MaxNumber(ctx, p.ProjectID)
			if err != nil {
				return err
			}
			p.Number = maxNumber + 1
		}
		return pages.Create(ctx, p)
	})
	if err != nil {
		err = domain.Internal("create page", err)
		return err
	}
	fields["page_id"] = p.ID
	fields["number"] = p.Number
	return nil
}

func (s *pageService) GetByID(ctx context.Context, id string) (*domain.Page, error) {
	p, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get page", err)
	}
	return p, nil
}

func (s *pageService) ListByProject(ctx context.Context, projectID string) ([]*domain.Page, error) {
	var pages []*domain.Page
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		var err error
		pages, err = repository.NewSQLitePageRepo(tx).ListByProject(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, domain.Internal("list pages", err)
	}
	return pages, nil
}

func (s *pageService) UpdateText(ctx context.Context, id, text string) (page *domain.Page, err error) {
	startedAt := time.Now()
	fields := map[string]any{"page_id": id}
	defer func() { observe(ctx, s.observer, "update-page-text", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		pages := repository.NewSQLitePageRepo(tx)
		p, err := pages.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Text = text
		p.UpdatedAt = time.Now().UTC()
		if err := pages.Update(ctx, p); err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		err = domain.Internal("update page text", err)
		return nil, err
	}
	return page, nil
}

// Delete removes a page. Frames linked to it keep their place and lose the
// link.
func (s *pageService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"page_id": id}
	defer func() { observe(ctx, s.observer, "delete-page", startedAt, fields, err) }()

	err = domain.Internal("delete page", s.pages.Delete(ctx, id))
	return err
}
