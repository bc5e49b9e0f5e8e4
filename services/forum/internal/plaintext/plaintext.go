// Package plaintext normalizes user supplied text before it is stored.
// Stored text never carries markup; rendering is left to the client.
package plaintext

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Clean strips every HTML element from s and trims surrounding whitespace.
// Text outside tags is returned as written, so "Tom & Jerry" stays
// "Tom & Jerry" rather than its escaped form.
func Clean(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
