package placeholder

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/vango-dev/vimg/internal/errors"
)

// Options configures a Generator.
type Options struct {
	// Width of the placeholder in pixels. The height keeps the aspect ratio.
	// Default: 16
	Width int

	// Sigma is the gaussian blur radius applied after downscaling.
	// Default: 1.5
	Sigma float64

	// Quality is the JPEG quality, 1-100.
	// Default: 60
	Quality int
}

// DefaultOptions returns the default generator options.
func DefaultOptions() Options {
	return Options{
		Width:   16,
		Sigma:   1.5,
		Quality: 60,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Sigma <= 0 {
		o.Sigma = def.Sigma
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = def.Quality
	}
	return o
}

// Generator turns source images into blurred placeholders.
// It is stateless and safe for concurrent use.
type Generator struct {
	opts Options
}

// NewGenerator creates a Generator. Zero options take their defaults.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (g *Generator) Options() Options { return g.opts }

// Generate decodes an image (JPEG, PNG, GIF or WebP) from r and returns its
// placeholder. EXIF orientation is applied before resizing.
func (g *Generator) Generate(ctx context.Context, r io.Reader) (*Placeholder, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.FromImage(src)
}

// FromImage builds the placeholder for an already decoded image.
func (g *Generator) FromImage(src image.Image) (*Placeholder, error) {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, errors.New("E021").WithDetail("image has no pixels")
	}

	width := g.opts.Width
	if bounds.Dx() < width {
		width = bounds.Dx()
	}
	small := imaging.Resize(src, width, 0, imaging.Lanczos)
	blurred := blur.Gaussian(small, g.opts.Sigma)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, blurred, imaging.JPEG, imaging.JPEGQuality(g.opts.Quality)); err != nil {
		return nil, errors.New("E022").Wrap(err)
	}

	return &Placeholder{
		DataURI: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Color:   averageColor(small),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		JPEG:    buf.Bytes(),
	}, nil
}

// averageColor averages the opaque pixels in linear RGB.
func averageColor(img image.Image) string {
	bounds := img.Bounds()
	var r, g, b, n float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent.
				continue
			}
			lr, lg, lb := c.LinearRgb()
			r += lr
			g += lg
			b += lb
			n++
		}
	}
	if n == 0 {
		return "#000000"
	}
	return colorful.LinearRgb(r/n, g/n, b/n).Clamped().Hex()
}
