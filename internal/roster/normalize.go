package roster

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var headerFolder = cases.Fold()

// normalizeHeader makes header matching insensitive to case, surrounding
// space, and Unicode composition form.
func normalizeHeader(value string) string {
	return headerFolder.String(norm.NFC.String(strings.TrimSpace(value)))
}
