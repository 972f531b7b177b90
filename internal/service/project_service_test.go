package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, testutil.NewTestUoW(r.db), r.images)

	proj := &domain.Project{Name: "  Night Train  ", Owner: "ana"}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, "Night Train", proj.Name)

	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Night Train", fetched.Name)
	assert.Equal(t, "ana", fetched.Owner)
}

func TestProjectService_Create_InvalidName(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, testutil.NewTestUoW(r.db), r.images)

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too long", strings.Repeat("x", domain.MaxProjectNameLen+1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(ctx, &domain.Project{Name: tc.in})
			assert.True(t, domain.IsValidation(err), "name %q should be rejected", tc.in)
		})
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProjectService_ListByOwner(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, testutil.NewTestUoW(r.db), r.images)

	require.NoError(t, svc.Create(ctx, &domain.Project{Name: "One", Owner: "ana"}))
	require.NoError(t, svc.Create(ctx, &domain.Project{Name: "Two", Owner: "ben"}))
	require.NoError(t, svc.Create(ctx, &domain.Project{Name: "Three", Owner: "ana"}))

	mine, err := svc.List(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProjectService_Rename(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, testutil.NewTestUoW(r.db), r.images)

	proj := testutil.NewTestProject("Draft")
	require.NoError(t, r.projects.Create(ctx, proj))

	renamed, err := svc.Rename(ctx, proj.ID, "Final Cut")
	require.NoError(t, err)
	assert.Equal(t, "Final Cut", renamed.Name)

	_, err = svc.Rename(ctx, proj.ID, " ")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Rename(ctx, "missing", "Anything")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := r.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final Cut", stored.Name)
}

func TestProjectService_Delete_CascadesAndRemovesImages(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj, frames := seedStoryboard(t, r, 2, 3)
	page := testutil.NewTestPage(proj.ID, 1)
	require.NoError(t, r.pages.Create(ctx, page))

	frameSvc := r.frameService()
	f, err := frameSvc.UploadImage(ctx, frames[0].ID, bytes.NewReader(pngBytes(t, 2, 2)))
	require.NoError(t, err)

	rec := &RecordingObserver{}
	svc := NewProjectService(r.projects, testutil.NewTestUoW(r.db), r.images, rec)
	require.NoError(t, svc.Delete(ctx, proj.ID))

	_, err = r.projects.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.pages.GetByID(ctx, page.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.frames.GetByID(ctx, frames[1].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoFileExists(t, f.PicPath)

	require.Len(t, rec.Events, 1)
	assert.Equal(t, "delete-project", rec.Events[0].Name)
	assert.Equal(t, 2, rec.Events[0].Fields["frames"])

	err = svc.Delete(ctx, proj.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_DeleteScript_UnlinksFrames(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Script")
	require.NoError(t, r.projects.Create(ctx, proj))
	p1 := testutil.NewTestPage(proj.ID, 1)
	p2 := testutil.NewTestPage(proj.ID, 2)
	require.NoError(t, r.pages.Create(ctx, p1))
	require.NoError(t, r.pages.Create(ctx, p2))
	frame := testutil.NewTestFrame(proj.ID, 1, testutil.WithConnectedPage(p1.ID))
	require.NoError(t, r.frames.Create(ctx, frame))

	svc := NewProjectService(r.projects, testutil.NewTestUoW(r.db), r.images)
	n, err := svc.DeleteScript(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := r.frames.GetByID(ctx, frame.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsConnected())

	_, err = svc.DeleteScript(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_DeleteFrames(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj, _ := seedStoryboard(t, r, 1, 2, 3)
	other, _ := seedStoryboard(t, r, 4)

	svc := NewProjectService(r.projects, testutil.NewTestUoW(r.db), r.images)
	n, err := svc.DeleteFrames(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Empty(t, placements(t, r, proj.ID))
	assert.Len(t, placements(t, r, other.ID), 1)

	_, err = r.projects.GetByID(ctx, proj.ID)
	assert.NoError(t, err, "project itself stays")
}
