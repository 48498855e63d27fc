package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"image load", "E001", "Image failed to load", CategoryRuntime},
		{"invalid props", "E002", "Invalid image props", CategoryValidation},
		{"placeholder missing", "E020", "Placeholder source not found", CategoryPlaceholder},
		{"config", "E120", "Invalid configuration", CategoryConfig},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "--alt")
	if err.Message != `flag "--alt" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrorString(t *testing.T) {
	err := New("E020").WithDetail("no such key: hero.jpg")
	want := "E020: Placeholder source not found (no such key: hero.jpg)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("open hero.jpg: no such file")
	err := New("E020").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if stderrors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIsByCode(t *testing.T) {
	err := fmt.Errorf("generate: %w", New("E021").WithDetail("bad header"))

	if !stderrors.Is(err, New("E021")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New("E020")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(Newf(CategoryCLI, "x"), Newf(CategoryCLI, "x")) {
		t.Error("codeless errors never match by code")
	}
	if !HasCode(err, "E021") || HasCode(err, "E022") {
		t.Error("HasCode")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E020")
	if FromError(fmt.Errorf("wrapped: %w", orig), "E120") != orig {
		t.Error("FromError should return the existing *Error")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E120")
	if got.Code != "E120" || got.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E021").
		Wrap(stderrors.New("image: unknown format")).
		WithSuggestion("Convert the image to JPEG or PNG")
	out := err.Format()

	for _, want := range []string{
		"ERROR E021: Placeholder decode failed",
		"Cause: image: unknown format",
		"Hint: Convert the image to JPEG or PNG",
		"Learn more: https://vango.dev/docs/vimg/errors/E021",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	var decoded map[string]string
	if err := json.Unmarshal([]byte(New("E023").FormatJSON()), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["code"] != "E023" || decoded["category"] != "placeholder" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) < 8 {
		t.Errorf("expected registered codes, got %v", codes)
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("bad template for %s: %+v", code, tmpl)
		}
	}

	Register("E900", ErrorTemplate{Category: CategoryCLI, Message: "custom", DocURL: "https://example.com/E900"})
	if New("E900").Message != "custom" {
		t.Error("Register did not add the template")
	}
	delete(registry, "E900")
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf strings.Builder
	Fprint(&buf, fmt.Errorf("render: %w", New("E002")))
	if !strings.Contains(buf.String(), "ERROR E002:") {
		t.Errorf("wrapped *Error not formatted: %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("boom"))
	if !strings.Contains(buf.String(), "ERROR: boom") {
		t.Errorf("plain error = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	if wrapText("", 10) != nil {
		t.Error("empty text")
	}
	lines := wrapText("one two three four five", 9)
	want := []string{"one two", "three", "four five"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrapText = %q, want %q", lines, want)
	}
	if got := wrapText("averyveryverylongword x", 5); len(got) != 2 || got[0] != "averyveryverylongword" {
		t.Errorf("long word = %q", got)
	}
}
