package payload

import (
	"net/url"
	"strings"
)

var specialChars = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
)

// Escape prefixes the WIFI/MECARD special characters \ ; , : with a backslash.
func Escape(s string) string {
	return specialChars.Replace(s)
}

// queryEscape percent-encodes s for use in a URI query, encoding spaces as %20.
// Scanner apps hand the value to SMS and mail clients that do not treat + as space.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
