// Package navigation decides whether typed text is a URL or a search query
// and knows which URLs belong to the shell itself.
package navigation

import "strings"

// HomeURLPrefix identifies the generated home page. The page is delivered
// as an inline document, so every home URL starts with this prefix.
const HomeURLPrefix = "data:text/html"

// BlankURL is the engine's empty page.
const BlankURL = "about:blank"

// KnownSchemes are the prefixes that mark typed text as an explicit URL.
var KnownSchemes = []string{"http://", "https://", "file://", "ftp://"}

// IsHomeURL reports whether u is the generated home page.
func IsHomeURL(u string) bool {
	return strings.HasPrefix(u, HomeURLPrefix)
}

// IsInternalURL reports whether u is a page that must never be recorded or
// starred: empty, blank or the home page.
func IsInternalURL(u string) bool {
	return u == "" || u == BlankURL || IsHomeURL(u)
}

// HasScheme reports whether text starts with one of KnownSchemes.
func HasScheme(text string) bool {
	for _, scheme := range KnownSchemes {
		if strings.HasPrefix(text, scheme) {
			return true
		}
	}
	return false
}

// IsURL classifies text typed into the address bar. The space check runs
// first, so "https://example.com/a b" is a search query.
func IsURL(text string) bool {
	if strings.Contains(text, " ") {
		return false
	}
	if strings.Contains(text, ".") && !strings.HasPrefix(text, ".") && !strings.HasSuffix(text, ".") {
		return true
	}
	return HasScheme(text)
}

// Normalize prefixes a scheme-less URL with https://.
func Normalize(text string) string {
	if HasScheme(text) {
		return text
	}
	return "https://" + text
}

// Resolve turns address bar input into the URL to load. ok is false for
// blank input.
func Resolve(text string, engine SearchEngine) (target string, isSearch bool, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false, false
	}
	if IsURL(text) {
		return Normalize(text), false, true
	}
	return engine.QueryURL(text), true, true
}
