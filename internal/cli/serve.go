package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/animation"
	"github.com/Zachkp/folio/internal/catalog"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/server"
)

func newServeCmd() *cobra.Command {
	var contentPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if contentPath != "" {
				cfg.ContentPath = contentPath
			}
			if addr == "" {
				addr = cfg.Addr()
			}
			return runServe(cmd.Context(), cfg, addr)
		},
	}

	cmd.Flags().StringVar(&contentPath, "content", "", "content TOML file (default: embedded, or $FOLIO_CONTENT)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: :$PORT)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, addr string) error {
	logger := loggerFromContext(ctx)

	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}
	cat, err := catalog.Open(ctx, site)
	if err != nil {
		return err
	}
	defer cat.Close()

	srv, err := server.New(server.Options{
		Site:       site,
		Catalog:    cat,
		Config:     cfg,
		Logger:     logger,
		Animations: animation.Init(),
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	logger.Info("loaded content", "projects", len(site.Projects), "card_interval", cfg.CardInterval, "detail_interval", cfg.DetailInterval)
	return srv.Run(ctx, addr)
}
