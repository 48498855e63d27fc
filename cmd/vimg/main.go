package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vimg/internal/config"
	"github.com/vango-dev/vimg/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Split from main for tests.
func newRootCmd() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "vimg",
		Short: "Lazy, blur-up images for server-driven Go UIs",
		Long: `vimg renders lazy-loading images with blurred placeholders
and generates those placeholders.

  • Server-render the image component to HTML
  • Generate blurred placeholders from JPEG, PNG, GIF and WebP
  • Serve placeholders from a directory, S3 or MinIO over HTTP`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "", "Directory containing vimg.json (default: nearest parent of the working directory)")

	load := func() (*config.Config, error) {
		var (
			cfg *config.Config
			err error
		)
		if configDir != "" {
			cfg, err = config.Load(configDir)
		} else {
			cfg, err = config.LoadFromWorkingDir()
		}
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	rootCmd.AddCommand(
		renderCmd(load),
		placeholderCmd(load),
		serveCmd(load),
		versionCmd(),
	)
	return rootCmd
}

type configLoader func() (*config.Config, error)

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
