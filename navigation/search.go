package navigation

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnknownEngine is returned for a search engine name that is not registered.
var ErrUnknownEngine = errors.New("unknown search engine")

// QueryPlaceholder marks where the escaped query goes in a template.
const QueryPlaceholder = "{query}"

type SearchEngine struct {
	Name     string
	Template string
}

var (
	Google     = SearchEngine{Name: "Google", Template: "https://www.google.com/search?q={query}"}
	DuckDuckGo = SearchEngine{Name: "DuckDuckGo", Template: "https://duckduckgo.com/?q={query}"}
	Bing       = SearchEngine{Name: "Bing", Template: "https://www.bing.com/search?q={query}"}
)

// DefaultEngine is used until the user picks another one.
var DefaultEngine = Google

// Engines lists the selectable engines in menu order.
func Engines() []SearchEngine {
	return []SearchEngine{Google, DuckDuckGo, Bing}
}

// EngineByName looks an engine up by its display name, ignoring case.
func EngineByName(name string) (SearchEngine, error) {
	for _, engine := range Engines() {
		if strings.EqualFold(engine.Name, name) {
			return engine, nil
		}
	}
	return SearchEngine{}, ErrUnknownEngine
}

// QueryURL fills the template with the percent-encoded query.
func (e SearchEngine) QueryURL(query string) string {
	return strings.Replace(e.Template, QueryPlaceholder, EscapeQuery(query), 1)
}

// Prefix is the template up to the placeholder, for clients that append the
// escaped query themselves.
func (e SearchEngine) Prefix() string {
	prefix, _, _ := strings.Cut(e.Template, QueryPlaceholder)
	return prefix
}

// EscapeQuery percent-encodes q the way encodeURIComponent does for spaces.
func EscapeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}
