package render

import (
	"strings"
	"testing"
)

// extractAttrValue returns the raw, still escaped value of the first
// name="..." in s.
func extractAttrValue(t *testing.T, s, name string) string {
	t.Helper()
	_, rest, ok := strings.Cut(s, " "+name+`="`)
	if !ok {
		t.Fatalf("no %s attribute in %q", name, s)
	}
	value, _, ok := strings.Cut(rest, `"`)
	if !ok {
		t.Fatalf("unterminated %s attribute in %q", name, s)
	}
	return value
}
