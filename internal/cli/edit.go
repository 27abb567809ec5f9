package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/fretboard"
	"github.com/matzehuels/tabsmith/pkg/session"
	"github.com/matzehuels/tabsmith/pkg/store"
)

func (c *CLI) editCommand() *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "edit <doc>",
		Short: "Edit a stored tab in the terminal",
		Long: `Open a stored tab in an interactive terminal editor.

The document is found by ID or name. With --new a document of that name is
created instead. Edits are saved with ctrl+s and when the editor exits.`,
		Example: `  tabsmith edit "intro riff"
  tabsmith edit --new "solo"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], create)
		},
	}
	cmd.Flags().BoolVar(&create, "new", false, "create a new document with this name")
	return cmd
}

func (c *CLI) runEdit(ctx context.Context, ref string, create bool) error {
	docs, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer docs.Close()

	reg := session.NewRegistry(docs, c.sessionOptions())
	var sess *session.Session
	if create {
		if err := errors.ValidateDocumentName(ref); err != nil {
			return err
		}
		sess, err = reg.Create(ctx, store.NewDocument(ref, nil))
	} else {
		var doc *store.Document
		doc, err = store.Resolve(ctx, docs, ref)
		if err == nil {
			sess, err = reg.Open(ctx, doc.ID)
		}
	}
	if err != nil {
		return err
	}

	model := NewEditorModel(ctx, sess, reg, c.cfg.Layout.MaxPerRow)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if err := reg.Close(ctx, sess.ID()); err != nil {
		return err
	}
	doc := sess.Document()
	printSuccess("Saved %s", StyleHighlight.Render(doc.Name))
	printDetail("id %s · %d positions", doc.ID, len(doc.Grid.Compact()))
	return nil
}

// sessionOptions returns editing session settings from the config file.
func (c *CLI) sessionOptions() session.Options {
	return session.Options{
		Metrics: c.cfg.Metrics(),
		Theme:   c.cfg.Theme,
		Neck:    fretboard.ForSurface(c.cfg.Fretboard.Width, c.cfg.Fretboard.Height),
		Flash:   c.cfg.Fretboard.Flash.Duration,
		Logger:  c.Logger,
	}
}
