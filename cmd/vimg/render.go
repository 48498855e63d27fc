package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vimg/internal/errors"
	"github.com/vango-dev/vimg/pkg/img"
	"github.com/vango-dev/vimg/pkg/render"
)

type renderOptions struct {
	props    img.Props
	src      string
	fallback string
	sources  []string
	loading  string
	seen     bool
	commit   bool
	noscript bool
	pretty   bool
}

func renderCmd(load configLoader) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an image component to HTML",
		Long: `Render the image component as it appears in the first server
render, before the client has reported anything.

Pass --source (repeatable) and --fallback for a responsive picture;
each source is "srcset|media|type|sizes" with trailing parts optional.

Examples:
  vimg render --src /photos/lake.jpg --alt "A lake" --width 640 --height 480
  vimg render --fallback b.webp --source "a.webp|(min-width:600px)" --alt Mountains
  vimg render --src /photos/lake.jpg --noscript`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			svc := img.NewService(img.ServerEnvironment,
				img.WithConfig(cfg.Image.ServiceConfig()),
				img.WithLogger(cfg.Log.NewLogger(cmd.ErrOrStderr())))

			out, err := runRender(svc, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.src, "src", "", "Image URL")
	f.StringVar(&opts.fallback, "fallback", "", "Fallback URL of a responsive picture")
	f.StringArrayVar(&opts.sources, "source", nil, `Picture source "srcset|media|type|sizes" (repeatable)`)
	f.StringVar(&opts.props.Alt, "alt", "", "Alternative text")
	f.StringVar(&opts.props.PlaceholderSrc, "placeholder", "", "Placeholder image URL or data URI")
	f.StringVar(&opts.props.BackgroundColor, "background", "", "Container background colour")
	f.StringVar(&opts.loading, "loading", "lazy", "Loading mode: lazy, eager or auto")
	f.StringVar(&opts.props.ObjectPosition, "object-position", "", "CSS object-position (default from config)")
	f.StringVar(&opts.props.ErrorMessage, "error-message", "", "Error panel text (default from config)")
	f.BoolVar(&opts.props.Fill, "fill", false, "Fill the parent instead of using width and height")
	f.IntVar(&opts.props.Width, "width", 0, "Width in pixels")
	f.IntVar(&opts.props.Height, "height", 0, "Height in pixels")
	f.StringVar(&opts.props.SrcSet, "srcset", "", "srcset attribute")
	f.StringVar(&opts.props.Sizes, "sizes", "", "sizes attribute")
	f.StringVar(&opts.props.CrossOrigin, "crossorigin", "", "crossorigin attribute")
	f.StringVar(&opts.props.Title, "title", "", "title attribute")
	f.StringVar(&opts.props.Draggable, "draggable", "", "draggable attribute")
	f.BoolVar(&opts.seen, "seen", false, "Render as if the image loaded earlier in the session")
	f.BoolVar(&opts.commit, "commit", false, "Render after commit instead of the first render")
	f.BoolVar(&opts.noscript, "noscript", false, "Print only the no-script markup")
	f.BoolVar(&opts.pretty, "pretty", false, "Indent the HTML output")

	return cmd
}

func runRender(svc *img.Service, opts renderOptions) (string, error) {
	p := opts.props
	switch opts.loading {
	case "lazy", "eager", "auto":
		p.Loading = img.Loading(opts.loading)
	default:
		return "", errors.New("E002").WithDetail("unknown loading mode " + `"` + opts.loading + `"`)
	}

	switch {
	case len(opts.sources) > 0 || opts.fallback != "":
		pic := img.PictureImage{Fallback: opts.fallback}
		for _, s := range opts.sources {
			pic.Sources = append(pic.Sources, parseSource(s))
		}
		p.Variant = pic
	case opts.src != "":
		p.Variant = img.SimpleImage{Src: opts.src}
	default:
		return "", errors.New("E002").
			WithDetail("no image source").
			WithSuggestion("Pass --src, or --fallback with --source")
	}

	if opts.seen {
		svc.Cache().MarkLoaded(p.CacheKey())
	}
	inst, err := svc.NewImage(p)
	if err != nil {
		return "", err
	}
	if opts.noscript {
		return img.NoscriptMarkup(inst.Props()), nil
	}
	if opts.commit {
		inst.Commit()
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: opts.pretty})
	return r.RenderToString(inst.Render())
}

// parseSource parses "srcset|media|type|sizes".
func parseSource(s string) img.PictureSource {
	parts := strings.SplitN(s, "|", 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return img.PictureSource{
		SrcSet: strings.TrimSpace(parts[0]),
		Media:  strings.TrimSpace(parts[1]),
		Type:   strings.TrimSpace(parts[2]),
		Sizes:  strings.TrimSpace(parts[3]),
	}
}
