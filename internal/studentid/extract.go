package studentid

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Length is the number of digits in a student ID.
const Length = 9

var idPattern = regexp.MustCompile(fmt.Sprintf(`\d{%d}`, Length))

// Extract returns the leftmost run of nine decimal digits in value.
//
// A longer digit run still yields its first nine digits, so "1234567890.py"
// extracts "123456789". Full-width digits are folded to ASCII first.
func Extract(value string) (string, bool) {
	match := idPattern.FindString(fold(value))
	if match == "" {
		return "", false
	}
	return match, true
}

func fold(value string) string {
	return width.Narrow.String(norm.NFC.String(value))
}
