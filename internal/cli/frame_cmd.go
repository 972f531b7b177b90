package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/GIVandez/plot-twister/internal/cli/formatter"
	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newFrameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Manage storyboard frames",
	}

	cmd.AddCommand(
		newFrameAddCmd(app),
		newFrameListCmd(app),
		newFrameMoveCmd(app),
		newFrameTimeCmd(app),
		newFrameDescribeCmd(app),
		newFrameLinkCmd(app),
		newFrameUnlinkCmd(app),
		newFrameImageCmd(app),
		newFrameRemoveCmd(app),
		newFrameExportCmd(app),
	)

	return cmd
}

// frameRef resolves the FRAME argument against the optional --project flag.
func frameRef(cmd *cobra.Command, app *App, input string) (string, error) {
	project, _ := cmd.Flags().GetString("project")
	projectID, err := resolveProjectForFlag(cmd, app, project)
	if err != nil {
		return "", err
	}
	return resolveFrameID(cmd.Context(), app, projectID, input)
}

func resolveProjectForFlag(cmd *cobra.Command, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	return resolveProjectID(cmd.Context(), app, input)
}

func addProjectFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("project", "p", "", "Project ID or prefix; enables frame prefixes and #N references")
}

func newFrameAddCmd(app *App) *cobra.Command {
	var (
		start, end  int
		description string
		pageID      string
	)

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a frame to a project's storyboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			number, err := optionalInt(cmd.Flags(), "number")
			if err != nil {
				return err
			}
			in := service.CreateFrameInput{
				ProjectID:   projectID,
				StartTime:   start,
				EndTime:     end,
				Description: description,
				Number:      number,
			}
			if pageID != "" {
				in.ConnectedPage = &pageID
			}

			f, err := app.Frames.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added frame #%d (%s) %s-%s",
				f.Number, formatter.TruncID(f.ID), formatter.Timecode(f.StartTime), formatter.Timecode(f.EndTime))))
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "Start time in seconds")
	cmd.Flags().IntVar(&end, "end", 0, "End time in seconds")
	cmd.Flags().StringVar(&description, "description", "", "Shot description")
	cmd.Flags().StringVar(&pageID, "page", "", "Script page to link")
	cmd.Flags().Int("number", 0, "Position (default: after the last frame)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newFrameListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "Show the storyboard in frame order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			frames, err := app.Frames.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(frames) == 0 {
				fmt.Fprintln(out, formatter.Dim("The storyboard is empty."))
				return nil
			}
			pages, err := app.Pages.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			pageNumbers := make(map[string]int, len(pages))
			for _, p := range pages {
				pageNumbers[p.ID] = p.Number
			}

			fmt.Fprint(out, formatter.FormatFrameList(frames, pageNumbers))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.TimelineBar(frames))
			return nil
		},
	}
}

func newFrameMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move FRAME NUMBER",
		Short: "Move a frame to a new position and retime the storyboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid frame number %q", args[1])
			}
			if number <= 0 {
				return fmt.Errorf("frame number must be positive, got %d", number)
			}
			frameID, err := frameRef(cmd, app, args[0])
			if err != nil {
				return err
			}

			frames, err := app.Frames.ReorderByFrameID(cmd.Context(), frameID, number)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Moved frame to #%d", number)))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.TimelineBar(frames))
			return nil
		},
	}

	addProjectFlag(cmd)

	return cmd
}

func newFrameTimeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time FRAME",
		Short: "Set a frame's start and/or end time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := optionalInt(cmd.Flags(), "start")
			if err != nil {
				return err
			}
			end, err := optionalInt(cmd.Flags(), "end")
			if err != nil {
				return err
			}
			if start == nil && end == nil {
				return fmt.Errorf("one of --start or --end is required")
			}
			frameID, err := frameRef(cmd, app, args[0])
			if err != nil {
				return err
			}

			var f *domain.Frame
			switch {
			case start != nil && end != nil:
				f, err = app.Frames.SetTimes(cmd.Context(), frameID, *start, *end)
			case start != nil:
				f, err = app.Frames.SetStartTime(cmd.Context(), frameID, *start)
			default:
				f, err = app.Frames.SetEndTime(cmd.Context(), frameID, *end)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Frame #%d now %s-%s",
				f.Number, formatter.Timecode(f.StartTime), formatter.Timecode(f.EndTime))))
			return nil
		},
	}

	cmd.Flags().Int("start", 0, "New start time in seconds")
	cmd.Flags().Int("end", 0, "New end time in seconds")
	addProjectFlag(cmd)

	return cmd
}

func newFrameDescribeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe FRAME TEXT",
		Short: "Replace a frame's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			frameID, err := frameRef(cmd, app, args[0])
			if err != nil {
				return err
			}
			f, err := app.Frames.SetDescription(cmd.Context(), frameID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated frame #%d", f.Number)))
			return nil
		},
	}

	addProjectFlag(cmd)

	return cmd
}

func newFrameLinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link FRAME PAGE",
		Short: "Link a frame to a script page of the same project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			frameID, err := frameRef(cmd, app, args[0])
			if err != nil {
				return err
			}
			f, err := app.Frames.ConnectPage(cmd.Context(), frameID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Linked frame #%d", f.Number)))
			return nil
		},
	}

	addProjectFlag(cmd)

	return cmd
}

func newFrameUnlinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlink FRAME",
		Short: "Remove a frame's page link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frameID, err := frameRef(cmd, app, args[0])
			if err != nil {
				return err
			}
			f, err := app.Frames.DisconnectPage(cmd.Context(), frameID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Unlinked frame #%d", f.Number)))
			return nil
		},
	}

	addProjectFlag(cmd)

	return cmd
}

func newFrameImageCmd(app *App) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "image FRAME [FILE]",
		Short: "Upload a frame's picture, or remove it with --clear",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			frameID, err := frameRef(cmd, app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if remove {
				if err := app.Frames.DeleteImage(cmd.Context(), frameID); err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Success("Removed frame image"))
				return nil
			}
			if len(args) < 2 {
				return fmt.Errorf("an image FILE is required (- for stdin)")
			}

			var r io.Reader
			if args[1] == "-" {
				r = cmd.InOrStdin()
			} else {
				file, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer file.Close()
				r = file
			}

			f, err := app.Frames.UploadImage(cmd.Context(), frameID, r)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Success("Stored image at "+f.PicPath))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "clear", false, "Delete the stored image")
	addProjectFlag(cmd)

	return cmd
}

func newFrameRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove FRAME",
		Short: "Delete a frame; later frames are renumbered and retimed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frameID, err := frameRef(cmd, app, args[0])
			if err != nil {
				return err
			}
			f, err := app.Frames.GetByID(cmd.Context(), frameID)
			if err != nil {
				return err
			}
			if err := confirmDestructive(app, fmt.Sprintf("Delete frame #%d?", f.Number), yes); err != nil {
				return err
			}
			if err := app.Frames.Delete(cmd.Context(), f.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted frame #%d", f.Number)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	addProjectFlag(cmd)

	return cmd
}

func newFrameExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export the storyboard as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			sb, err := app.Frames.ExportStoryboard(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(sb); err != nil {
				return fmt.Errorf("encoding storyboard: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
