// Package device turns raw User-Agent strings into short human-readable
// summaries ("Chrome on Mac OS X") for display on confirmation records.
package device

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent extracts a display name from a User-Agent string. The
// summary is stored alongside link confirmations so reviewers can see which
// device confirmed a match; it is informational only and never used for
// identification.
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	os := parsed.OSInfo().Name

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}

	return strings.TrimSpace(fmt.Sprintf("%s on %s", browser, os))
}
