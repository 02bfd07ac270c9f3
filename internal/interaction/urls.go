package interaction

import "regexp"

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// DetectURLs returns every HTTP and HTTPS URL in text, in order of
// appearance. Returns nil when there are none.
func DetectURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
