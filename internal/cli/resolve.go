package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID accepts a full project UUID or a unique prefix of one.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx, "")
	if err != nil {
		return "", err
	}

	var matches []string
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveFrameID resolves a frame reference inside a project: a full UUID,
// a unique UUID prefix, or "#N" for the frame currently numbered N. Without
// a project the input is passed through unchanged.
func resolveFrameID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if projectID == "" {
		if strings.HasPrefix(input, "#") {
			return "", fmt.Errorf("frame %s requires project context (use --project)", input)
		}
		return input, nil
	}

	frames, err := app.Frames.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	if rest, ok := strings.CutPrefix(input, "#"); ok {
		for _, f := range frames {
			if fmt.Sprint(f.Number) == rest {
				return f.ID, nil
			}
		}
		return "", fmt.Errorf("frame %s not found in project", input)
	}

	var matches []string
	for _, f := range frames {
		if f.ID == input {
			return f.ID, nil
		}
		if strings.HasPrefix(f.ID, input) {
			matches = append(matches, f.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("frame not found in project: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("frame ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
