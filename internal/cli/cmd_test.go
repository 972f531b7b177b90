package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/imagestore"
	"github.com/GIVandez/plot-twister/internal/repository"
	"github.com/GIVandez/plot-twister/internal/service"
	"github.com/GIVandez/plot-twister/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	images := imagestore.New(t.TempDir(), imagestore.DefaultMaxBytes)

	return &App{
		Projects:      service.NewProjectService(repository.NewSQLiteProjectRepo(database), uow, images),
		Pages:         service.NewPageService(repository.NewSQLitePageRepo(database), uow),
		Frames:        service.NewFrameService(repository.NewSQLiteFrameRepo(database), uow, images),
		IsInteractive: func() bool { return false },
	}
}

// seedStoryboard creates a project with contiguous frames of the given
// durations through the services.
func seedStoryboard(t *testing.T, app *App, durations ...int) (*domain.Project, []*domain.Frame) {
	t.Helper()
	ctx := context.Background()
	p := &domain.Project{Name: "Night Train"}
	require.NoError(t, app.Projects.Create(ctx, p))

	var frames []*domain.Frame
	start := 0
	for _, d := range durations {
		f, err := app.Frames.Create(ctx, service.CreateFrameInput{ProjectID: p.ID, StartTime: start, EndTime: start + d})
		require.NoError(t, err)
		frames = append(frames, f)
		start += d
	}
	return p, frames
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- project ---

func TestProjectAddAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "add", "--name", "Heist", "--owner", "ben")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Heist")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Heist")
	assert.Contains(t, out, "ben")

	out, err = executeCmd(t, app, "project", "list", "--owner", "someone-else")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects yet")
}

func TestProjectAdd_RequiresName(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add")
	assert.Error(t, err)
}

func TestProjectAdd_BlankNameIsRejected(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "--name", "   ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), err)
}

func TestResolveProjectID_Prefix(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	require.NoError(t, app.Projects.Create(ctx, &domain.Project{ID: "aaaa1111-0000-0000-0000-000000000000", Name: "One"}))
	require.NoError(t, app.Projects.Create(ctx, &domain.Project{ID: "aaaa2222-0000-0000-0000-000000000000", Name: "Two"}))

	id, err := resolveProjectID(ctx, app, "aaaa2")
	require.NoError(t, err)
	assert.Equal(t, "aaaa2222-0000-0000-0000-000000000000", id)

	_, err = resolveProjectID(ctx, app, "aaaa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = resolveProjectID(ctx, app, "ffff")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRename(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app)

	_, err := executeCmd(t, app, "project", "rename", p.ID[:8], "Day Train")
	require.NoError(t, err)

	got, err := app.Projects.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Day Train", got.Name)
}

func TestProjectShow(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app, 30, 45)

	out, err := executeCmd(t, app, "project", "show", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "NIGHT TRAIN")
	assert.Contains(t, out, "1:15")
}

func TestProjectRemove_NonInteractiveNeedsYes(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app, 5)

	_, err := executeCmd(t, app, "project", "remove", p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	_, err = app.Projects.GetByID(context.Background(), p.ID)
	require.NoError(t, err, "project must survive a refused removal")

	_, err = executeCmd(t, app, "project", "remove", p.ID, "--yes")
	require.NoError(t, err)

	_, err = app.Projects.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRemove_ConfirmPrompt(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app)

	var asked string
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	_, err := executeCmd(t, app, "project", "remove", p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
	assert.Contains(t, asked, "Night Train")
}

func TestProjectClear(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p, _ := seedStoryboard(t, app, 5, 5)
	require.NoError(t, app.Pages.Create(ctx, &domain.Page{ProjectID: p.ID, Text: "INT. CAR"}))

	_, err := executeCmd(t, app, "project", "clear", p.ID, "--yes")
	require.Error(t, err, "nothing selected")

	out, err := executeCmd(t, app, "project", "clear", p.ID, "--storyboard", "--script", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 frames")
	assert.Contains(t, out, "Deleted 1 pages")
}

// --- page ---

func TestPageAddListEdit(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app)

	_, err := executeCmd(t, app, "page", "add", p.ID, "--text", "INT. KITCHEN - NIGHT")
	require.NoError(t, err)

	script := filepath.Join(t.TempDir(), "page2.txt")
	require.NoError(t, os.WriteFile(script, []byte("EXT. ROOF - DAWN"), 0o644))
	_, err = executeCmd(t, app, "page", "add", p.ID, "--file", script)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "page", "list", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "INT. KITCHEN - NIGHT")
	assert.Contains(t, out, "EXT. ROOF - DAWN")

	pages, err := app.Pages.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 2, pages[1].Number)

	_, err = executeCmd(t, app, "page", "edit", pages[0].ID, "--text", "INT. KITCHEN - DAY")
	require.NoError(t, err)
	got, err := app.Pages.GetByID(context.Background(), pages[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "INT. KITCHEN - DAY", got.Text)
}

func TestPageAdd_TextAndFileAreExclusive(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app)

	_, err := executeCmd(t, app, "page", "add", p.ID, "--text", "a", "--file", "b")
	assert.Error(t, err)
}

func TestPageEdit_RequiresText(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "page", "edit", "some-page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--text")
}

func TestPageRemove_UnlinksFrames(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p, frames := seedStoryboard(t, app, 5)
	page := &domain.Page{ProjectID: p.ID, Text: "INT. CAR"}
	require.NoError(t, app.Pages.Create(ctx, page))
	_, err := app.Frames.ConnectPage(ctx, frames[0].ID, page.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "page", "remove", page.ID, "-y")
	require.NoError(t, err)

	f, err := app.Frames.GetByID(ctx, frames[0].ID)
	require.NoError(t, err)
	assert.False(t, f.IsConnected())
}

// --- frame ---

func TestFrameAddAndList(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app)

	out, err := executeCmd(t, app, "frame", "add", p.ID, "--start", "0", "--end", "4", "--description", "Wide shot")
	require.NoError(t, err)
	assert.Contains(t, out, "Added frame #1")

	out, err = executeCmd(t, app, "frame", "list", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Wide shot")
	assert.Contains(t, out, "0:04")
}

func TestFrameAdd_TakenNumberConflicts(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app, 5)

	_, err := executeCmd(t, app, "frame", "add", p.ID, "--start", "5", "--end", "9", "--number", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFrameList_Empty(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app)

	out, err := executeCmd(t, app, "frame", "list", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "empty")
}

func TestFrameMove_RenumbersAndRetimes(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p, frames := seedStoryboard(t, app, 2, 3, 5)

	_, err := executeCmd(t, app, "frame", "move", "#3", "1", "--project", p.ID)
	require.NoError(t, err)

	got, err := app.Frames.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{frames[2].ID, frames[0].ID, frames[1].ID}, []string{got[0].ID, got[1].ID, got[2].ID})
	for i, f := range got {
		assert.Equal(t, i+1, f.Number)
		if i > 0 {
			assert.Equal(t, got[i-1].EndTime, f.StartTime, "frames stay contiguous")
		}
	}
	assert.Equal(t, 0, got[0].StartTime)
	assert.Equal(t, 10, got[2].EndTime)
}

func TestFrameMove_RejectsBadNumbers(t *testing.T) {
	app := testApp(t)
	_, frames := seedStoryboard(t, app, 2, 3)

	_, err := executeCmd(t, app, "frame", "move", frames[0].ID, "0")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "frame", "move", frames[0].ID, "two")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "frame", "move", "#1", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--project")
}

func TestFrameTime_MovesSlotLater(t *testing.T) {
	app := testApp(t)
	_, frames := seedStoryboard(t, app, 5)

	_, err := executeCmd(t, app, "frame", "time", frames[0].ID, "--start", "20", "--end", "30")
	require.NoError(t, err)

	f, err := app.Frames.GetByID(context.Background(), frames[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 20, f.StartTime)
	assert.Equal(t, 30, f.EndTime)

	_, err = executeCmd(t, app, "frame", "time", frames[0].ID)
	assert.Error(t, err)
}

func TestFrameTime_RejectedPairLeavesFrameUnchanged(t *testing.T) {
	app := testApp(t)
	_, frames := seedStoryboard(t, app, 10)

	_, err := executeCmd(t, app, "frame", "time", frames[0].ID, "--start", "5", "--end", "3")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), err)

	f, err := app.Frames.GetByID(context.Background(), frames[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.StartTime)
	assert.Equal(t, 10, f.EndTime)
}

func TestFrameTime_SingleBound(t *testing.T) {
	app := testApp(t)
	_, frames := seedStoryboard(t, app, 10)

	_, err := executeCmd(t, app, "frame", "time", frames[0].ID, "--end", "12")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "frame", "time", frames[0].ID, "--start", "13")
	require.Error(t, err, "start past the current end")

	f, err := app.Frames.GetByID(context.Background(), frames[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.StartTime)
	assert.Equal(t, 12, f.EndTime)
}

func TestFrameDescribeLinkUnlink(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p, frames := seedStoryboard(t, app, 5)
	page := &domain.Page{ProjectID: p.ID, Text: "INT. CAR"}
	require.NoError(t, app.Pages.Create(ctx, page))

	_, err := executeCmd(t, app, "frame", "describe", frames[0].ID, "Close-up")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "frame", "link", frames[0].ID, page.ID)
	require.NoError(t, err)

	f, err := app.Frames.GetByID(ctx, frames[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Close-up", f.Description)
	assert.True(t, f.IsConnected())

	_, err = executeCmd(t, app, "frame", "unlink", frames[0].ID)
	require.NoError(t, err)
	f, err = app.Frames.GetByID(ctx, frames[0].ID)
	require.NoError(t, err)
	assert.False(t, f.IsConnected())
}

func TestFrameRemove(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p, frames := seedStoryboard(t, app, 2, 3, 5)

	_, err := executeCmd(t, app, "frame", "remove", frames[0].ID[:8], "--project", p.ID[:8], "--yes")
	require.NoError(t, err)

	got, err := app.Frames.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, frames[1].ID, got[0].ID)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, 0, got[0].StartTime)
}

func TestFrameExport_YAML(t *testing.T) {
	app := testApp(t)
	p, _ := seedStoryboard(t, app, 2, 3)

	out, err := executeCmd(t, app, "frame", "export", p.ID)
	require.NoError(t, err)

	var sb service.Storyboard
	require.NoError(t, yaml.Unmarshal([]byte(out), &sb))
	assert.Equal(t, "Night Train", sb.ProjectName)
	assert.Equal(t, 5, sb.TotalLength)
	require.Len(t, sb.Frames, 2)
	assert.Equal(t, 2, sb.Frames[1].Number)

	path := filepath.Join(t.TempDir(), "board.yaml")
	_, err = executeCmd(t, app, "frame", "export", p.ID, "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "project_name: Night Train")
}

// --- serve / flags ---

func TestServe_NotConfigured(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "serve")
	assert.Error(t, err)
}

func TestServe_RunsUntilReturn(t *testing.T) {
	app := testApp(t)
	called := false
	app.Serve = func(ctx context.Context) error {
		called = true
		return nil
	}
	_, err := executeCmd(t, app, "serve")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestConfigPathFromArgs(t *testing.T) {
	assert.Equal(t, "/etc/pt.yaml", ConfigPathFromArgs([]string{"frame", "list", "x", "--config", "/etc/pt.yaml", "--unknown"}))
	assert.Equal(t, "a.yaml", ConfigPathFromArgs([]string{"--config=a.yaml", "serve"}))
	assert.Equal(t, "", ConfigPathFromArgs([]string{"serve"}))
}

func TestConfigFlagAccepted(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "--config", "ignored.yaml", "project", "list")
	require.NoError(t, err)
}
