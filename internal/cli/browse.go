package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/carousel"
	"github.com/Zachkp/folio/internal/catalog"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var contentPath, kind string
	var preview bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse project carousels in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			switch kind {
			case "", content.KindProfessional, content.KindPersonal:
			default:
				return fmt.Errorf("unknown kind %q (want %s or %s)", kind, content.KindProfessional, content.KindPersonal)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if contentPath == "" {
				contentPath = cfg.ContentPath
			}
			site, err := content.Load(contentPath)
			if err != nil {
				return err
			}
			cat, err := catalog.Open(ctx, site)
			if err != nil {
				return err
			}
			defer cat.Close()

			projects, err := cat.List(ctx, kind)
			if err != nil {
				return err
			}
			logger.Debug("browsing", "projects", len(projects), "kind", kind)

			m, err := tui.New(projects, carousel.Options{AutoAdvance: cfg.DetailInterval, Preview: preview})
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		},
	}

	cmd.Flags().StringVar(&contentPath, "content", "", "content TOML file (default: embedded, or $FOLIO_CONTENT)")
	cmd.Flags().StringVar(&kind, "kind", "", "only show professional or personal projects")
	cmd.Flags().BoolVar(&preview, "preview", true, "allow the full-screen preview")
	return cmd
}
