package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabsmith/internal/server"
	"github.com/matzehuels/tabsmith/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP editing API",
		Long: `Serve the tab editing API under /api/v1.

Documents come from the configured storage backend. Browser front-ends on
other origins are allowed per server.allowed_origins in the config file.`,
		Example: `  tabsmith serve --addr :9000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetEditHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	docs, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer docs.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(docs, server.Options{
		Config:  c.cfg.Server,
		Session: c.sessionOptions(),
		Render:  c.pipelineOptions(),
		Runner:  runner,
		Logger:  c.Logger,
	})
	printInfo("Serving on %s", StyleHighlight.Render(c.cfg.Server.Addr))
	err = srv.ListenAndServe(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
