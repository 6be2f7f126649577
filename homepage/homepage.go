// Package homepage renders the shell's start page: a search box wired to the
// same URL rule as the address bar and a grid of the most recent favorites.
// The result is a self-contained document with every image inlined.
package homepage

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"neonshell/data"
	"neonshell/navigation"
)

const (
	MaxFavorites     = 8
	PlaceholderCards = 5
	MaxTitleLength   = 27
)

// Page is everything the home page shows.
type Page struct {
	// Favorites newest first, as returned by the store.
	Favorites  []data.FavoriteEntry
	Background *Image
	Logo       *Image
	Engines    []navigation.SearchEngine
	// Selected is the engine preselected in the search box.
	Selected string
}

//go:embed home.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("home").Parse(pageSource))

// URL and Favicon hold a template.URL for trusted schemes and a plain string
// otherwise, which the template filters.
type card struct {
	URL     any
	Title   string
	Favicon any
}

type engineOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	Cards        []card
	Placeholders []struct{}
	Background   template.CSS
	Logo         template.URL
	Engines      []engineOption
	Prefixes     map[string]string
	Schemes      []string
}

// Render produces the home page document.
func Render(page Page) (string, error) {
	engines := page.Engines
	if len(engines) == 0 {
		engines = navigation.Engines()
	}

	d := pageData{
		Prefixes: make(map[string]string, len(engines)),
		Schemes:  navigation.KnownSchemes,
	}
	for _, e := range engines {
		d.Engines = append(d.Engines, engineOption{Name: e.Name, Selected: strings.EqualFold(e.Name, page.Selected)})
		d.Prefixes[e.Name] = e.Prefix()
	}

	favorites := page.Favorites
	if len(favorites) > MaxFavorites {
		favorites = favorites[:MaxFavorites]
	}
	for _, f := range favorites {
		d.Cards = append(d.Cards, card{
			URL:     linkURL(f.Url),
			Title:   CardTitle(f),
			Favicon: linkURL(f.Favicon),
		})
	}
	if len(d.Cards) == 0 {
		d.Placeholders = make([]struct{}, PlaceholderCards)
	}

	if page.Logo != nil {
		d.Logo = template.URL(page.Logo.DataURI())
	}
	if page.Background != nil {
		d.Background = backgroundRule(page.Background)
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("rendering home page: %w", err)
	}
	return sb.String(), nil
}

// linkURL lets file:// and ftp:// favorites through html/template, which
// only trusts http, https and mailto on its own.
func linkURL(u string) any {
	if navigation.HasScheme(u) {
		return template.URL(u)
	}
	return u
}

// URL wraps a rendered document as the internal home page URL.
func URL(document string) string {
	return navigation.HomeURLPrefix + ";charset=utf-8," + url.PathEscape(document)
}

// Build renders page and returns its home page URL.
func Build(page Page) (string, error) {
	document, err := Render(page)
	if err != nil {
		return "", err
	}
	return URL(document), nil
}

// CardTitle is the label of a favorite card: the title, or the url when
// there is none, shortened to MaxTitleLength runes.
func CardTitle(f data.FavoriteEntry) string {
	title := []rune(f.DisplayTitle())
	if len(title) > MaxTitleLength {
		return string(title[:MaxTitleLength]) + "..."
	}
	return string(title)
}

func backgroundRule(img *Image) template.CSS {
	return template.CSS(`body::before {
  content: '';
  position: fixed;
  top: 0;
  left: 0;
  width: 100%;
  height: 100%;
  background-image: url(` + img.DataURI() + `);
  background-size: cover;
  background-position: center;
  background-repeat: no-repeat;
  opacity: 0.4;
  z-index: -1;
}`)
}
