package pipeline

import "regexp"

var urlRegexp = regexp.MustCompile(`https?://[^\s]+`)

// Linkify rewrites http(s) URLs in text as underlined spans using tview
// style tags, the terminal analogue of rewriting them as anchors. Everything
// outside the matches passes through untouched.
func Linkify(text string) string {
	return urlRegexp.ReplaceAllString(text, "[::u]$0[::-]")
}

// HasLink reports whether text contains an http(s) URL.
func HasLink(text string) bool {
	return urlRegexp.MatchString(text)
}
