package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
)

var (
	version = "dev"
	commit  string
)

// SetVersion records build metadata injected via ldflags.
func SetVersion(v, c string) {
	if v != "" {
		version = v
	}
	commit = c
}

// Execute runs the folio CLI until ctx is cancelled or the command returns.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Log output goes to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var (
		verbose bool
		envFile string
	)

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Portfolio site with HTMX image carousels",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(logOut, level)
			if envFile != "" {
				if err := config.LoadEnvFile(envFile); err != nil {
					return err
				}
				logger.Debug("loaded env file", "path", envFile)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("folio %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from `file`")

	root.AddCommand(newServeCmd())
	root.AddCommand(newBrowseCmd())
	return root
}
