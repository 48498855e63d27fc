package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vimg/internal/errors"
	"github.com/vango-dev/vimg/pkg/placeholder"
)

func placeholderCmd(load configLoader) *cobra.Command {
	var (
		asJSON  bool
		outFile string
		width   int
		sigma   float64
		quality int
	)

	cmd := &cobra.Command{
		Use:   "placeholder <file>",
		Short: "Generate a blurred placeholder for an image",
		Long: `Generate a blurred placeholder for a JPEG, PNG, GIF or WebP file.

By default the data URI is printed. Generator settings come from
vimg.json and can be overridden with flags.

Examples:
  vimg placeholder photos/lake.jpg
  vimg placeholder photos/lake.jpg --json
  vimg placeholder photos/lake.jpg --out lake.blur.jpg --width 24`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			opts := cfg.Placeholder.Options()
			if width > 0 {
				opts.Width = width
			}
			if sigma > 0 {
				opts.Sigma = sigma
			}
			if quality > 0 {
				opts.Quality = quality
			}

			f, err := os.Open(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.New("E020").WithDetail(args[0])
				}
				return err
			}
			defer f.Close()

			p, err := placeholder.NewGenerator(opts).Generate(cmd.Context(), f)
			if err != nil {
				return err
			}
			p.Key = args[0]

			out := cmd.OutOrStdout()
			if outFile != "" {
				if err := os.WriteFile(outFile, p.JPEG, 0644); err != nil {
					return errors.New("E022").Wrap(err)
				}
				success(out, "Wrote %s (%d bytes, %s)", outFile, len(p.JPEG), p.Color)
				return nil
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			fmt.Fprintln(out, p.DataURI)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the placeholder as JSON")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the blurred JPEG to a file")
	cmd.Flags().IntVar(&width, "width", 0, "Placeholder width in pixels (default from config)")
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "Blur radius (default from config)")
	cmd.Flags().IntVar(&quality, "quality", 0, "JPEG quality 1-100 (default from config)")

	return cmd
}
