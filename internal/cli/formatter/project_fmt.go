package formatter

import (
	"fmt"
	"strings"

	"github.com/GIVandez/plot-twister/internal/domain"
)

// FormatProjectList renders projects as a table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "OWNER", "CREATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		id := p.DisplayID()
		if id == "" {
			id = "--"
		}
		owner := p.Owner
		if owner == "" {
			owner = Dim("--")
		}
		rows = append(rows, []string{
			StyleDim.Render(id),
			Bold(p.Name),
			owner,
			Dim(p.CreatedAt.Format("2006-01-02")),
		})
	}
	return Header("Projects") + "\n" + RenderTable(headers, rows)
}

// StoryboardSummary is the per-project overview shown by `project show`.
type StoryboardSummary struct {
	Project     *domain.Project
	Pages       int
	Frames      int
	Connected   int
	TotalLength int
}

// FormatProjectSummary renders a boxed project overview.
func FormatProjectSummary(s StoryboardSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID      "), s.Project.ID)
	if s.Project.Owner != "" {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Owner   "), s.Project.Owner)
	}
	fmt.Fprintf(&b, "%s  %d\n", Dim("Pages   "), s.Pages)
	fmt.Fprintf(&b, "%s  %d (%d linked to pages)\n", Dim("Frames  "), s.Frames, s.Connected)
	fmt.Fprintf(&b, "%s  %s", Dim("Length  "), Timecode(s.TotalLength))
	return RenderBox(s.Project.Name, b.String())
}
