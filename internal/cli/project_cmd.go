package cli

import (
	"fmt"

	"github.com/GIVandez/plot-twister/internal/cli/formatter"
	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectRenameCmd(app),
		newProjectRemoveCmd(app),
		newProjectClearCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, owner string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{Name: name, Owner: owner}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created project %s (%s)", p.Name, p.DisplayID())))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&owner, "owner", "", "Owning user")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), owner)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No projects yet. Create one with `plottwister project add --name ...`."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Only projects of this owner")

	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project overview and its timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			pages, err := app.Pages.ListByProject(ctx, id)
			if err != nil {
				return err
			}
			frames, err := app.Frames.ListByProject(ctx, id)
			if err != nil {
				return err
			}

			summary := formatter.StoryboardSummary{Project: p, Pages: len(pages), Frames: len(frames)}
			for _, f := range frames {
				if f.IsConnected() {
					summary.Connected++
				}
				summary.TotalLength = max(summary.TotalLength, f.EndTime)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProjectSummary(summary))
			fmt.Fprintln(out, formatter.TimelineBar(frames))
			return nil
		},
	}
}

func newProjectRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PROJECT NAME",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Rename(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Renamed project to "+p.Name))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Delete a project with its script, frames and images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := confirmDestructive(app, fmt.Sprintf("Delete project %q?", p.Name), yes); err != nil {
				return err
			}
			if err := app.Projects.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted project "+p.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newProjectClearCmd(app *App) *cobra.Command {
	var script, storyboard, yes bool

	cmd := &cobra.Command{
		Use:   "clear PROJECT",
		Short: "Delete all pages and/or all frames of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !script && !storyboard {
				return fmt.Errorf("nothing to clear: pass --script and/or --storyboard")
			}
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := confirmDestructive(app, "Clear project contents?", yes); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if storyboard {
				n, err := app.Projects.DeleteFrames(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Deleted %d frames", n)))
			}
			if script {
				n, err := app.Projects.DeleteScript(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Deleted %d pages", n)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&script, "script", false, "Delete every script page")
	cmd.Flags().BoolVar(&storyboard, "storyboard", false, "Delete every frame and its image")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
