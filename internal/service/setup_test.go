package service

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/imagestore"
	"github.com/GIVandez/plot-twister/internal/repository"
	"github.com/GIVandez/plot-twister/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db       *sql.DB
	projects *repository.SQLiteProjectRepo
	pages    *repository.SQLitePageRepo
	frames   *repository.SQLiteFrameRepo
	images   *imagestore.Store
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:       database,
		projects: repository.NewSQLiteProjectRepo(database),
		pages:    repository.NewSQLitePageRepo(database),
		frames:   repository.NewSQLiteFrameRepo(database),
		images:   imagestore.New(t.TempDir(), imagestore.DefaultMaxBytes),
	}
}

func (r repos) frameService(opts ...FrameServiceOption) FrameService {
	return NewFrameService(r.frames, testutil.NewTestUoW(r.db), r.images, opts...)
}

// seedStoryboard stores a project with contiguous frames of the given
// durations.
func seedStoryboard(t *testing.T, r repos, durations ...int) (*domain.Project, []*domain.Frame) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Storyboard")
	require.NoError(t, r.projects.Create(ctx, proj))

	frames := testutil.ContiguousFrames(proj.ID, durations...)
	for _, f := range frames {
		require.NoError(t, r.frames.Create(ctx, f))
	}
	return proj, frames
}

type placement struct {
	ID         string
	Number     int
	Start, End int
}

func placements(t *testing.T, r repos, projectID string) []placement {
	t.Helper()
	frames, err := r.frames.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	out := make([]placement, len(frames))
	for i, f := range frames {
		out[i] = placement{ID: f.ID, Number: f.Number, Start: f.StartTime, End: f.EndTime}
	}
	return out
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
