package placeholder

import (
	"github.com/vango-dev/vimg/internal/errors"
)

// Errors returned by the package. Match them with errors.Is; the returned
// errors carry the same code plus detail and cause.
var (
	// ErrNotFound is returned when the source image does not exist.
	ErrNotFound error = errors.New("E020")

	// ErrDecode is returned when the source is not a supported image.
	ErrDecode error = errors.New("E021")

	// ErrEncode is returned when the blurred image cannot be encoded.
	ErrEncode error = errors.New("E022")

	// ErrInvalidKey is returned for keys that are empty or escape the source
	// root.
	ErrInvalidKey error = errors.New("E023")
)

// Placeholder is a tiny blurred version of an image, suitable for inlining
// as the PlaceholderSrc of an image component.
type Placeholder struct {
	// Key identifies the source image.
	Key string `json:"key,omitempty"`

	// DataURI is the blurred JPEG as a data: URI.
	DataURI string `json:"dataURI"`

	// Color is the average colour of the image as "#rrggbb".
	Color string `json:"color"`

	// Width and Height are the dimensions of the source image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// JPEG is the encoded blurred image.
	JPEG []byte `json:"-"`
}
