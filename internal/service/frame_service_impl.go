package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GIVandez/plot-twister/internal/db"
	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/imagestore"
	"github.com/GIVandez/plot-twister/internal/repository"
	"github.com/GIVandez/plot-twister/internal/timeline"
	"github.com/google/uuid"
)

type frameService struct {
	frames        repository.FrameRepo
	uow           db.UnitOfWork
	images        ImageStore
	reorderPolicy timeline.DurationPolicy
	deletePolicy  timeline.DurationPolicy
	observer      UseCaseObserver
}

// FrameServiceOption customizes NewFrameService.
type FrameServiceOption func(*frameService)

// WithReorderPolicy sets how durations are carried over when a frame moves.
// The default is timeline.SlotDurationPolicy.
func WithReorderPolicy(p timeline.DurationPolicy) FrameServiceOption {
	return func(s *frameService) {
		if p != nil {
			s.reorderPolicy = p
		}
	}
}

// WithDeletePolicy sets how durations are carried over when a frame is
// deleted. The default is timeline.OwnDurationPolicy.
func WithDeletePolicy(p timeline.DurationPolicy) FrameServiceOption {
	return func(s *frameService) {
		if p != nil {
			s.deletePolicy = p
		}
	}
}

// WithFrameObserver sets the use-case observer.
func WithFrameObserver(obs UseCaseObserver) FrameServiceOption {
	return func(s *frameService) {
		s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs})
	}
}

func NewFrameService(frames repository.FrameRepo, uow db.UnitOfWork, images ImageStore, opts ...FrameServiceOption) FrameService {
	s := &frameService{
		frames:        frames,
		uow:           uow,
		images:        images,
		reorderPolicy: timeline.SlotDurationPolicy{},
		deletePolicy:  timeline.OwnDurationPolicy{},
		observer:      NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *frameService) Create(ctx context.Context, in CreateFrameInput) (frame *domain.Frame, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": in.ProjectID}
	defer func() { observe(ctx, s.observer, "create-frame", startedAt, fields, err) }()

	now := time.Now().UTC()
	f := &domain.Frame{
		ID:            uuid.New().String(),
		ProjectID:     in.ProjectID,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Description:   in.Description,
		PicPath:       in.PicPath,
		ConnectedPage: in.ConnectedPage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err = f.ValidateTimes(); err != nil {
		return nil, err
	}
	if f.PicPath == "" {
		f.PicPath = imagestore.PlaceholderPath()
	}
	if f.ConnectedPage != nil && *f.ConnectedPage == "" {
		f.ConnectedPage = nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		pages := repository.NewSQLitePageRepo(tx)
		frames := repository.NewSQLiteFrameRepo(tx)

		if _, err := projects.GetByID(ctx, in.ProjectID); err != nil {
			return err
		}
		if f.ConnectedPage != nil {
			if err := checkSameProject(ctx, pages, *f.ConnectedPage, in.ProjectID); err != nil {
				return err
			}
		}

		number, err := s.nextNumber(ctx, frames, in.ProjectID, in.Number)
		if err != nil {
			return err
		}
		f.Number = number
		return frames.Create(ctx, f)
	})
	if err != nil {
		err = domain.Internal("create frame", err)
		return nil, err
	}
	fields["frame_id"] = f.ID
	fields["number"] = f.Number
	return f, nil
}

// nextNumber resolves the number of a new frame. Without a requested number
// the frame goes after the current last one. A requested number must be the
// next free position: numbers already held are a conflict, numbers past the
// end would leave a gap.
func (s *frameService) nextNumber(ctx context.Context, frames repository.FrameRepo, projectID string, requested *int) (int, error) {
	if requested == nil {
		maxNumber, err := frames.MaxNumber(ctx, projectID)
		if err != nil {
			return 0, err
		}
		return maxNumber + 1, nil
	}

	n := *requested
	if n <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("frame number must be positive, got %d", n))
	}
	count, err := frames.Count(ctx, projectID)
	if err != nil {
		return 0, err
	}
	switch {
	case n <= count:
		return 0, fmt.Errorf("frame number %d is taken: %w", n, domain.ErrConflict)
	case n > count+1:
		return 0, domain.NewValidationError(fmt.Sprintf("frame number %d leaves a gap, next free number is %d", n, count+1))
	}
	return n, nil
}

func (s *frameService) GetByID(ctx context.Context, id string) (*domain.Frame, error) {
	f, err := s.frames.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get frame", err)
	}
	return f, nil
}

func (s *frameService) ListByProject(ctx context.Context, projectID string) ([]*domain.Frame, error) {
	var frames []*domain.Frame
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		var err error
		frames, err = repository.NewSQLiteFrameRepo(tx).ListByProject(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, domain.Internal("list frames", err)
	}
	return frames, nil
}

func (s *frameService) Reorder(ctx context.Context, projectID, frameID string, newNumber int) (order []*domain.Frame, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"project_id": projectID,
		"frame_id":   frameID,
		"new_number": newNumber,
		"policy":     s.reorderPolicy.Name(),
	}
	defer func() { observe(ctx, s.observer, "reorder-frame", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		order, err = s.reorder(ctx, repository.NewSQLiteFrameRepo(tx), projectID, frameID, newNumber)
		return err
	})
	if err != nil {
		err = domain.Internal("reorder frame", err)
		return nil, err
	}
	return order, nil
}

func (s *frameService) ReorderByFrameID(ctx context.Context, frameID string, newNumber int) (order []*domain.Frame, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"frame_id":   frameID,
		"new_number": newNumber,
		"policy":     s.reorderPolicy.Name(),
	}
	defer func() { observe(ctx, s.observer, "reorder-frame", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		frames := repository.NewSQLiteFrameRepo(tx)
		f, err := frames.GetByID(ctx, frameID)
		if err != nil {
			return err
		}
		fields["project_id"] = f.ProjectID
		order, err = s.reorder(ctx, frames, f.ProjectID, frameID, newNumber)
		return err
	})
	if err != nil {
		err = domain.Internal("reorder frame", err)
		return nil, err
	}
	return order, nil
}

// reorder moves frameID to newNumber inside an open transaction. The old
// slot durations are captured before anything is mutated; the numbers then
// go through two batch writes, the second of which also carries the new
// start and end times.
func (s *frameService) reorder(ctx context.Context, frames repository.FrameRepo, projectID, frameID string, newNumber int) ([]*domain.Frame, error) {
	oldOrder, err := frames.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	newOrder, err := timeline.Move(oldOrder, frameID, newNumber)
	if err != nil {
		return nil, err
	}
	durations := s.reorderPolicy.Durations(oldOrder, newOrder)

	r := timeline.NewRenumbering(newOrder)
	for !r.Done() {
		phase, batch, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch phase {
		case timeline.TemporaryNegative:
			if err := frames.AssignNumbers(ctx, projectID, batch); err != nil {
				return nil, writeFailure("reorder frame", fmt.Errorf("%s phase: %w", phase, err))
			}
		case timeline.FinalPositive:
			timeline.Recompute(newOrder, durations)
			if err := frames.ApplyPlacements(ctx, projectID, newOrder); err != nil {
				return nil, writeFailure("reorder frame", fmt.Errorf("%s phase: %w", phase, err))
			}
		}
	}
	return newOrder, nil
}

func (s *frameService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"frame_id": id, "policy": s.deletePolicy.Name()}
	defer func() { observe(ctx, s.observer, "delete-frame", startedAt, fields, err) }()

	var picPath string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		frames := repository.NewSQLiteFrameRepo(tx)

		victim, err := frames.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields["project_id"] = victim.ProjectID
		picPath = victim.PicPath

		oldOrder, err := frames.ListByProject(ctx, victim.ProjectID)
		if err != nil {
			return err
		}
		if err := frames.Delete(ctx, id); err != nil {
			return writeFailure("delete frame", err)
		}
		remaining, err := frames.ListByProject(ctx, victim.ProjectID)
		if err != nil {
			return err
		}

		durations := s.deletePolicy.Durations(oldOrder, remaining)
		timeline.Compact(remaining)
		timeline.Recompute(remaining, durations)

		// Ascending order never moves a number onto one still held.
		for _, f := range remaining {
			if err := frames.UpdatePlacement(ctx, f); err != nil {
				return writeFailure("delete frame", err)
			}
		}
		fields["remaining"] = len(remaining)
		return nil
	})
	if err != nil {
		err = domain.Internal("delete frame", err)
		return err
	}

	if rmErr := s.images.Remove(picPath); rmErr != nil {
		fields["image_cleanup_error"] = rmErr.Error()
	}
	return nil
}

// writeFailure marks an error from a write that runs after every lookup has
// succeeded. Conflict or NotFound at that point means the renumbering broke
// an invariant, so it is reported as internal.
func writeFailure(op string, err error) error {
	return &domain.InternalError{Op: op, Cause: err}
}

// editFrame loads a frame, applies fn and saves the editable fields, all in
// one transaction.
func (s *frameService) editFrame(ctx context.Context, op, id string, fn func(ctx context.Context, tx db.DBTX, f *domain.Frame) error) (frame *domain.Frame, err error) {
	startedAt := time.Now()
	fields := map[string]any{"frame_id": id}
	defer func() { observe(ctx, s.observer, op, startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		frames := repository.NewSQLiteFrameRepo(tx)
		f, err := frames.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, f); err != nil {
			return err
		}
		f.UpdatedAt = time.Now().UTC()
		if err := frames.Update(ctx, f); err != nil {
			return err
		}
		frame = f
		return nil
	})
	if err != nil {
		err = domain.Internal(op, err)
		return nil, err
	}
	return frame, nil
}

func (s *frameService) SetStartTime(ctx context.Context, id string, start int) (*domain.Frame, error) {
	return s.editFrame(ctx, "set-frame-start", id, func(_ context.Context, _ db.DBTX, f *domain.Frame) error {
		if start < 0 {
			return domain.NewValidationError(fmt.Sprintf("start time must be >= 0, got %d", start))
		}
		if start > f.EndTime {
			return domain.NewValidationError(fmt.Sprintf("start time %d is after end time %d", start, f.EndTime))
		}
		f.StartTime = start
		return nil
	})
}

func (s *frameService) SetEndTime(ctx context.Context, id string, end int) (*domain.Frame, error) {
	return s.editFrame(ctx, "set-frame-end", id, func(_ context.Context, _ db.DBTX, f *domain.Frame) error {
		if end < f.StartTime {
			return domain.NewValidationError(fmt.Sprintf("end time %d is before start time %d", end, f.StartTime))
		}
		f.EndTime = end
		return nil
	})
}

// SetTimes replaces both bounds in one transaction, so a rejected pair
// leaves the frame untouched.
func (s *frameService) SetTimes(ctx context.Context, id string, start, end int) (*domain.Frame, error) {
	return s.editFrame(ctx, "set-frame-times", id, func(_ context.Context, _ db.DBTX, f *domain.Frame) error {
		f.StartTime = start
		f.EndTime = end
		return f.ValidateTimes()
	})
}

func (s *frameService) SetDescription(ctx context.Context, id, description string) (*domain.Frame, error) {
	return s.editFrame(ctx, "set-frame-description", id, func(_ context.Context, _ db.DBTX, f *domain.Frame) error {
		if strings.TrimSpace(description) == "" {
			return domain.NewValidationError("description must not be empty")
		}
		f.Description = description
		return nil
	})
}

func (s *frameService) ConnectPage(ctx context.Context, frameID, pageID string) (*domain.Frame, error) {
	return s.editFrame(ctx, "connect-frame", frameID, func(ctx context.Context, tx db.DBTX, f *domain.Frame) error {
		if err := checkSameProject(ctx, repository.NewSQLitePageRepo(tx), pageID, f.ProjectID); err != nil {
			return err
		}
		f.ConnectedPage = &pageID
		return nil
	})
}

func (s *frameService) DisconnectPage(ctx context.Context, frameID string) (*domain.Frame, error) {
	return s.editFrame(ctx, "disconnect-frame", frameID, func(_ context.Context, _ db.DBTX, f *domain.Frame) error {
		f.ConnectedPage = nil
		return nil
	})
}

// checkSameProject verifies that pageID exists and belongs to projectID.
func checkSameProject(ctx context.Context, pages repository.PageRepo, pageID, projectID string) error {
	page, err := pages.GetByID(ctx, pageID)
	if err != nil {
		return err
	}
	if page.ProjectID != projectID {
		return fmt.Errorf("page %s: %w", pageID, domain.ErrCrossProject)
	}
	return nil
}

func (s *frameService) UploadImage(ctx context.Context, frameID string, r io.Reader) (frame *domain.Frame, err error) {
	startedAt := time.Now()
	fields := map[string]any{"frame_id": frameID}
	defer func() { observe(ctx, s.observer, "upload-frame-image", startedAt, fields, err) }()

	if _, err = s.frames.GetByID(ctx, frameID); err != nil {
		err = domain.Internal("upload frame image", err)
		return nil, err
	}

	saved, err := s.images.Save(frameID, r)
	if err != nil {
		err = domain.Internal("upload frame image", err)
		return nil, err
	}
	fields["format"] = saved.Format
	fields["bytes"] = saved.Size

	var previous string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		frames := repository.NewSQLiteFrameRepo(tx)
		f, err := frames.GetByID(ctx, frameID)
		if err != nil {
			return err
		}
		previous = f.PicPath
		f.PicPath = saved.Path
		f.UpdatedAt = time.Now().UTC()
		if err := frames.Update(ctx, f); err != nil {
			return err
		}
		frame = f
		return nil
	})
	if err != nil {
		_ = s.images.Remove(saved.Path)
		err = domain.Internal("upload frame image", err)
		return nil, err
	}

	if previous != saved.Path {
		if rmErr := s.images.Remove(previous); rmErr != nil {
			fields["image_cleanup_error"] = rmErr.Error()
		}
	}
	return frame, nil
}

// DeleteImage removes the stored image file. The frame keeps its pic_path,
// which then no longer resolves.
func (s *frameService) DeleteImage(ctx context.Context, frameID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"frame_id": frameID}
	defer func() { observe(ctx, s.observer, "delete-frame-image", startedAt, fields, err) }()

	f, err := s.frames.GetByID(ctx, frameID)
	if err != nil {
		err = domain.Internal("delete frame image", err)
		return err
	}
	if !s.images.Exists(f.PicPath) {
		err = domain.NewValidationError("frame has no image to delete")
		return err
	}
	if err = s.images.Remove(f.PicPath); err != nil {
		err = domain.Internal("delete frame image", err)
		return err
	}
	return nil
}

func (s *frameService) ImagePath(ctx context.Context, frameID string) (string, error) {
	f, err := s.frames.GetByID(ctx, frameID)
	if err != nil {
		return "", domain.Internal("frame image", err)
	}
	if !s.images.Exists(f.PicPath) {
		return "", fmt.Errorf("frame image: %w", domain.ErrNotFound)
	}
	return f.PicPath, nil
}

func (s *frameService) ExportStoryboard(ctx context.Context, projectID string) (*Storyboard, error) {
	var sb *Storyboard
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		project, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		frames, err := repository.NewSQLiteFrameRepo(tx).ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		pages, err := repository.NewSQLitePageRepo(tx).ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		pageNumbers := make(map[string]int, len(pages))
		for _, p := range pages {
			pageNumbers[p.ID] = p.Number
		}

		sb = &Storyboard{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			TotalLength: timeline.TotalLength(frames),
			Frames:      make([]StoryboardShot, 0, len(frames)),
		}
		for _, f := range frames {
			shot := StoryboardShot{
				Number:      f.Number,
				FrameID:     f.ID,
				StartTime:   f.StartTime,
				EndTime:     f.EndTime,
				Duration:    f.Duration(),
				Description: f.Description,
			}
			if s.images.Exists(f.PicPath) {
				shot.Image = f.PicPath
			}
			if f.IsConnected() {
				shot.Page = pageNumbers[*f.ConnectedPage]
			}
			sb.Frames = append(sb.Frames, shot)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Internal("export storyboard", err)
	}
	return sb, nil
}
