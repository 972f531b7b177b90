package cli

import (
	"fmt"

	"github.com/GIVandez/plot-twister/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// plottwisterHuhTheme returns a huh theme matching the formatter palette.
func plottwisterHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmDestructive asks before an irreversible command. --yes skips the
// prompt; without a terminal the command refuses to run.
func confirmDestructive(app *App, title string, yes bool) error {
	if yes {
		return nil
	}

	ask := app.Confirm
	if ask == nil {
		if app.IsInteractive == nil || !app.IsInteractive() {
			return fmt.Errorf("%s: refusing without --yes on a non-interactive terminal", title)
		}
		ask = huhConfirm
	}

	ok, err := ask(title)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cancelled")
	}
	return nil
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(plottwisterHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
