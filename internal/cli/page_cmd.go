package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/GIVandez/plot-twister/internal/cli/formatter"
	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/spf13/cobra"
)

func newPageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage script pages",
	}

	cmd.AddCommand(
		newPageAddCmd(app),
		newPageListCmd(app),
		newPageEditCmd(app),
		newPageRemoveCmd(app),
	)

	return cmd
}

// pageText returns the text given by --text, or the contents of --file
// ("-" reads stdin). ok is false when neither flag was set.
func pageText(cmd *cobra.Command) (text string, ok bool, err error) {
	t, err := optionalString(cmd.Flags(), "text")
	if err != nil {
		return "", false, err
	}
	if t != nil {
		return *t, true, nil
	}
	path, err := optionalString(cmd.Flags(), "file")
	if err != nil || path == nil {
		return "", false, err
	}

	var data []byte
	if *path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(*path)
	}
	if err != nil {
		return "", false, fmt.Errorf("reading page text: %w", err)
	}
	return string(data), true, nil
}

func addPageTextFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Page text")
	cmd.Flags().String("file", "", "Read page text from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
}

func newPageAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a script page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			text, _, err := pageText(cmd)
			if err != nil {
				return err
			}
			number, err := optionalInt(cmd.Flags(), "number")
			if err != nil {
				return err
			}

			p := &domain.Page{ProjectID: projectID, Text: text}
			if number != nil {
				if *number <= 0 {
					return fmt.Errorf("--number must be positive, got %d", *number)
				}
				p.Number = *number
			}
			if err := app.Pages.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added page %d (%s)", p.Number, formatter.TruncID(p.ID))))
			return nil
		},
	}

	cmd.Flags().Int("number", 0, "Page number (default: after the last page)")
	addPageTextFlags(cmd)

	return cmd
}

func newPageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's script pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			pages, err := app.Pages.ListByProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			if len(pages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("The script is empty."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPageList(pages))
			return nil
		},
	}
}

func newPageEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit PAGE",
		Short: "Replace the text of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ok, err := pageText(cmd)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("one of --text or --file is required")
			}
			p, err := app.Pages.UpdateText(cmd.Context(), args[0], text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated page %d", p.Number)))
			return nil
		},
	}

	addPageTextFlags(cmd)

	return cmd
}

func newPageRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PAGE",
		Short: "Delete a page; frames linked to it are unlinked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Pages.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := confirmDestructive(app, fmt.Sprintf("Delete page %d?", p.Number), yes); err != nil {
				return err
			}
			if err := app.Pages.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted page %d", p.Number)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
