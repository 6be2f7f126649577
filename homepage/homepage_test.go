package homepage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neonshell/data"
	"neonshell/navigation"
)

func favorites(n int) []data.FavoriteEntry {
	out := make([]data.FavoriteEntry, n)
	for i := range out {
		out[i] = data.FavoriteEntry{
			Id:    int64(i + 1),
			Url:   fmt.Sprintf("https://site%d.example", i),
			Title: fmt.Sprintf("Site %d", i),
		}
	}
	return out
}

func TestRenderPlaceholdersWithoutFavorites(t *testing.T) {
	doc, err := Render(Page{})
	require.NoError(t, err)

	assert.Equal(t, PlaceholderCards, strings.Count(doc, `class="card empty"`))
	assert.Zero(t, strings.Count(doc, `class="card filled"`))
	assert.Contains(t, doc, `<div class="mark"></div>`)
}

func TestRenderCapsFavorites(t *testing.T) {
	doc, err := Render(Page{Favorites: favorites(11)})
	require.NoError(t, err)

	assert.Equal(t, MaxFavorites, strings.Count(doc, `class="card filled"`))
	assert.Zero(t, strings.Count(doc, `class="card empty"`))
	assert.Contains(t, doc, "Site 7")
	assert.NotContains(t, doc, "Site 8")
}

func TestRenderEscapesTitles(t *testing.T) {
	doc, err := Render(Page{Favorites: []data.FavoriteEntry{
		{Url: "https://cartoon.example", Title: "<b>Tom & Jerry</b>"},
	}})
	require.NoError(t, err)

	assert.Contains(t, doc, "&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;")
	assert.NotContains(t, doc, "<b>Tom")
}

func TestRenderFavicon(t *testing.T) {
	doc, err := Render(Page{Favorites: []data.FavoriteEntry{
		{Url: "https://a.example", Title: "A", Favicon: "https://a.example/favicon.ico"},
		{Url: "https://b.example", Title: "B"},
	}})
	require.NoError(t, err)

	assert.Contains(t, doc, `<img src="https://a.example/favicon.ico"`)
	assert.Equal(t, 1, strings.Count(doc, "onerror="))
}

func TestRenderKeepsFileAndFTPLinks(t *testing.T) {
	doc, err := Render(Page{Favorites: []data.FavoriteEntry{
		{Url: "file:///tmp/notes.html", Title: "Notes"},
		{Url: "ftp://mirror.example.org/pub", Title: "Mirror"},
		{Url: "javascript:alert(1)", Title: "Script"},
	}})
	require.NoError(t, err)

	assert.Contains(t, doc, `href="file:///tmp/notes.html"`)
	assert.Contains(t, doc, `href="ftp://mirror.example.org/pub"`)
	assert.Equal(t, 1, strings.Count(doc, "ZgotmplZ"))
	assert.NotContains(t, doc, "javascript:alert")
}

func TestRenderSelectsEngine(t *testing.T) {
	doc, err := Render(Page{Engines: navigation.Engines(), Selected: "duckduckgo"})
	require.NoError(t, err)

	assert.Contains(t, doc, `<option value="DuckDuckGo" selected>DuckDuckGo</option>`)
	assert.Contains(t, doc, `<option value="Google">Google</option>`)
	assert.Contains(t, doc, "duckduckgo.com")
	assert.Contains(t, doc, "www.bing.com")
}

func TestCardTitle(t *testing.T) {
	assert.Equal(t, "https://untitled.example", CardTitle(data.FavoriteEntry{Url: "https://untitled.example"}))
	assert.Equal(t, "exactly twenty-seven runes!", CardTitle(data.FavoriteEntry{Title: "exactly twenty-seven runes!"}))
	assert.Equal(t, "The Quite Long Title Of A P...", CardTitle(data.FavoriteEntry{Title: "The Quite Long Title Of A Page"}))
	assert.Equal(t, strings.Repeat("é", 27)+"...", CardTitle(data.FavoriteEntry{Title: strings.Repeat("é", 40)}))
}

func TestURLRoundTrip(t *testing.T) {
	doc, err := Render(Page{Favorites: favorites(2)})
	require.NoError(t, err)

	u := URL(doc)
	assert.True(t, navigation.IsHomeURL(u))
	require.True(t, strings.HasPrefix(u, "data:text/html;charset=utf-8,"))
	assert.NotContains(t, u, " ")
	assert.NotContains(t, u, "#")

	decoded, err := url.PathUnescape(strings.TrimPrefix(u, "data:text/html;charset=utf-8,"))
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)

	built, err := Build(Page{Favorites: favorites(2)})
	require.NoError(t, err)
	assert.Equal(t, u, built)
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: 255, G: uint8(x * 60), B: 240, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, name string, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestLoadImageFormats(t *testing.T) {
	var pngBuf, jpegBuf, gifBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, testImage()))
	require.NoError(t, jpeg.Encode(&jpegBuf, testImage(), nil))
	require.NoError(t, gif.Encode(&gifBuf, testImage(), nil))

	cases := map[string]struct {
		raw  []byte
		mime string
	}{
		"bg.png": {pngBuf.Bytes(), "image/png"},
		"bg.jpg": {jpegBuf.Bytes(), "image/jpeg"},
		"bg.gif": {gifBuf.Bytes(), "image/gif"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			img, err := LoadImage(writeFile(t, name, c.raw))
			require.NoError(t, err)

			assert.Equal(t, c.mime, img.Source)
			assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds)
			_, err = png.Decode(bytes.NewReader(img.PNG))
			assert.NoError(t, err)
			assert.True(t, strings.HasPrefix(img.DataURI(), "data:image/png;base64,"))
		})
	}
}

func TestLoadImageRejectsText(t *testing.T) {
	_, err := LoadImage(writeFile(t, "notes.png", []byte("just some notes, not a picture\n")))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoadImageCorrupt(t *testing.T) {
	raw := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR broken")
	_, err := LoadImage(writeFile(t, "broken.png", raw))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotImage)
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderInlinesImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	img, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)

	doc, err := Render(Page{Background: img, Logo: img})
	require.NoError(t, err)

	assert.Contains(t, doc, "body::before")
	assert.Contains(t, doc, "url("+img.DataURI()+")")
	assert.Contains(t, doc, `<img src="data:image/png;base64,`)
	assert.NotContains(t, doc, `<div class="mark"></div>`)
	assert.NotContains(t, doc, "ZgotmplZ")
}
