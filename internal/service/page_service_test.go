package service

import (
	"context"
	"testing"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_Create_AutoNumbers(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Script")
	require.NoError(t, r.projects.Create(ctx, proj))
	svc := NewPageService(r.pages, testutil.NewTestUoW(r.db))

	first := &domain.Page{ProjectID: proj.ID, Text: "INT. KITCHEN - NIGHT"}
	require.NoError(t, svc.Create(ctx, first))
	assert.Equal(t, 1, first.Number)

	second := &domain.Page{ProjectID: proj.ID}
	require.NoError(t, svc.Create(ctx, second))
	assert.Equal(t, 2, second.Number)

	explicit := &domain.Page{ProjectID: proj.ID, Number: 10}
	require.NoError(t, svc.Create(ctx, explicit))
	assert.Equal(t, 10, explicit.Number)

	pages, err := svc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "INT. KITCHEN - NIGHT", pages[0].Text)
}

func TestPageService_Create_Errors(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Script")
	require.NoError(t, r.projects.Create(ctx, proj))
	svc := NewPageService(r.pages, testutil.NewTestUoW(r.db))

	require.NoError(t, svc.Create(ctx, &domain.Page{ProjectID: proj.ID, Number: 1}))

	err := svc.Create(ctx, &domain.Page{ProjectID: proj.ID, Number: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = svc.Create(ctx, &domain.Page{ProjectID: proj.ID, Number: -2})
	assert.True(t, domain.IsValidation(err))

	err = svc.Create(ctx, &domain.Page{ProjectID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ListByProject(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageService_UpdateTextAndDelete(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Script")
	require.NoError(t, r.projects.Create(ctx, proj))
	page := testutil.NewTestPage(proj.ID, 1)
	require.NoError(t, r.pages.Create(ctx, page))
	frame := testutil.NewTestFrame(proj.ID, 1, testutil.WithConnectedPage(page.ID))
	require.NoError(t, r.frames.Create(ctx, frame))

	rec := &RecordingObserver{}
	svc := NewPageService(r.pages, testutil.NewTestUoW(r.db), rec)

	updated, err := svc.UpdateText(ctx, page.ID, "EXT. ROOFTOP - DAWN")
	require.NoError(t, err)
	assert.Equal(t, "EXT. ROOFTOP - DAWN", updated.Text)

	_, err = svc.UpdateText(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, page.ID))
	assert.ErrorIs(t, svc.Delete(ctx, page.ID), domain.ErrNotFound)

	stored, err := r.frames.GetByID(ctx, frame.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsConnected(), "frame link is cleared")
	assert.Equal(t, 1, stored.Number, "frame keeps its place")

	names := make([]string, 0, len(rec.Events))
	for _, e := range rec.Events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"update-page-text", "update-page-text", "delete-page", "delete-page"}, names)
}
