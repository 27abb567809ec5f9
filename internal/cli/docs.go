package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/render/sink"
	"github.com/matzehuels/tabsmith/pkg/store"
	"github.com/matzehuels/tabsmith/pkg/tabio"
)

// docCommand creates the document management command.
func (c *CLI) docCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"docs"},
		Short:   "Manage stored tabs",
	}

	cmd.AddCommand(c.docListCommand())
	cmd.AddCommand(c.docShowCommand())
	cmd.AddCommand(c.docImportCommand())
	cmd.AddCommand(c.docExportCommand())
	cmd.AddCommand(c.docRemoveCommand())

	return cmd
}

// withStore opens the document store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	docs, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer docs.Close()
	return fn(docs)
}

func (c *CLI) docListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored tabs, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(docs store.Store) error {
				list, err := docs.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No stored tabs")
					printNextStep("Create one", appName+" edit --new <name>")
					return nil
				}
				for _, d := range list {
					fmt.Printf("%s  %-24s %s\n",
						StyleDim.Render(shortID(d.ID)),
						StyleValue.Render(d.Name),
						StyleDim.Render(formatRelativeTime(d.UpdatedAt)))
				}
				return nil
			})
		},
	}
}

func (c *CLI) docShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <doc>",
		Short: "Print a stored tab as ASCII tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(docs store.Store) error {
				doc, err := store.Resolve(cmd.Context(), docs, args[0])
				if err != nil {
					return err
				}
				fmt.Println(StyleTitle.Render(doc.Name))
				printKeyValue("id", doc.ID)
				printKeyValue("updated", doc.UpdatedAt.Local().Format(time.DateTime))
				printKeyValue("positions", fmt.Sprint(len(doc.Grid.Compact())))
				fmt.Println()
				fmt.Print(sink.RenderText(doc.Grid, sink.WithTextMaxPerRow(c.cfg.Layout.MaxPerRow)))
				return nil
			})
		},
	}
}

func (c *CLI) docImportCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <grid.json>",
		Short: "Store a notation grid file as a new tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := tabio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			if err := errors.ValidateDocumentName(name); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(docs store.Store) error {
				doc := store.NewDocument(name, g)
				if err := docs.Put(cmd.Context(), doc); err != nil {
					return err
				}
				printSuccess("Imported %s", StyleHighlight.Render(doc.Name))
				printDetail("id %s", doc.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "document name (default: file name)")
	return cmd
}

func (c *CLI) docExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <doc>",
		Short: "Write a stored tab as a notation grid file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(docs store.Store) error {
				doc, err := store.Resolve(cmd.Context(), docs, args[0])
				if err != nil {
					return err
				}
				if output == "-" {
					return tabio.WriteGrid(doc.Grid, cmd.OutOrStdout())
				}
				path := output
				if path == "" {
					path = slug(doc.Name) + ".json"
				}
				if err := tabio.ExportJSON(doc.Grid, path); err != nil {
					return err
				}
				printSuccess("Exported %s", StyleHighlight.Render(doc.Name))
				printFile(path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default: <name>.json)")
	return cmd
}

func (c *CLI) docRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <doc>...",
		Aliases: []string{"remove"},
		Short:   "Delete stored tabs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(docs store.Store) error {
				for _, ref := range args {
					doc, err := store.Resolve(cmd.Context(), docs, ref)
					if err != nil {
						return err
					}
					if err := docs.Delete(cmd.Context(), doc.ID); err != nil {
						return err
					}
					printSuccess("Removed %s", doc.Name)
				}
				return nil
			})
		},
	}
}

// formatRelativeTime renders t relative to now for listings.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
