package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Terminal styles.
const (
	styleReset = "\033[0m"
	styleError = "\033[1;31m"
	styleCode  = "\033[1;37m"
	styleLabel = "\033[90m"
	styleHint  = "\033[36m"
	styleLink  = "\033[34m"
)

var colorEnabled = true

// DisableColors turns off ANSI styling in Format and PrintError.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI styling back on.
func EnableColors() { colorEnabled = true }

func styled(style, s string) string {
	if !colorEnabled {
		return s
	}
	return style + s + styleReset
}

// Format renders the error for a terminal:
//
//	ERROR E021: Placeholder decode failed
//
//	  The image could not be decoded ...
//
//	  Cause: image: unknown format
//	  Hint: Convert the image to JPEG or PNG
//	  Learn more: https://...
func (e *Error) Format() string {
	var b strings.Builder

	head := "ERROR:"
	if e.Code != "" {
		head = "ERROR " + e.Code + ":"
	}
	fmt.Fprintf(&b, "\n%s %s\n\n", styled(styleError, head), styled(styleCode, e.Message))

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  " + styled(styleLabel, "Cause: ") + e.Wrapped.Error() + "\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  " + styled(styleHint, "Hint: ") + e.Suggestion + "\n")
	}
	if e.DocURL != "" {
		b.WriteString("  " + styled(styleLabel, "Learn more: ") + styled(styleLink, e.DocURL) + "\n")
	}
	return b.String()
}

// FormatJSON returns the error as a JSON object. The placeholder HTTP
// handler uses it for error bodies.
func (e *Error) FormatJSON() string {
	data, _ := json.Marshal(struct {
		Code       string   `json:"code,omitempty"`
		Category   Category `json:"category"`
		Message    string   `json:"message"`
		Detail     string   `json:"detail,omitempty"`
		Suggestion string   `json:"suggestion,omitempty"`
		DocURL     string   `json:"docUrl,omitempty"`
	}{e.Code, e.Category, e.Message, e.Detail, e.Suggestion, e.DocURL})
	return string(data)
}

// wrapText breaks text into lines of at most width bytes, splitting on
// whitespace. A single word longer than width gets its own line.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Fprint writes err to w, using Format when err wraps an *Error.
func Fprint(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		io.WriteString(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", styled(styleError, "ERROR:"), err)
}

// PrintError writes err to stderr.
func PrintError(err error) { Fprint(os.Stderr, err) }
