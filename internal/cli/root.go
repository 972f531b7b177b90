package cli

import (
	"context"

	"github.com/GIVandez/plot-twister/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Pages    service.PageService
	Frames   service.FrameService

	// Serve runs the HTTP API until ctx is cancelled. Nil disables `serve`.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether stdin is a terminal. Destructive
	// commands only prompt when it returns true.
	IsInteractive func() bool

	// Confirm overrides the interactive yes/no prompt; tests set it.
	Confirm func(title string) (bool, error)
}

// NewRootCmd creates the top-level "plottwister" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "plottwister",
		Short:         "Storyboard backend: projects, script pages and timed frames",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Read before the command tree is built; declared here for --help and so
	// cobra accepts it.
	root.PersistentFlags().String(configFlag, "", "Path to a YAML config file (env "+configEnvHint+")")

	root.AddCommand(
		newServeCmd(app),
		newProjectCmd(app),
		newPageCmd(app),
		newFrameCmd(app),
	)

	return root
}
