package homepage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("not an image")

// Image is a picture re-encoded as PNG, ready to inline.
type Image struct {
	// Source is the mime type the file was detected as.
	Source string
	PNG    []byte
	Bounds image.Rectangle
}

// LoadImage reads the file at path, checks that it really is an image and
// re-encodes it as PNG.
func LoadImage(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return DecodeImage(raw)
}

// DecodeImage is LoadImage for bytes already in memory.
func DecodeImage(raw []byte) (*Image, error) {
	mt := mimetype.Detect(raw)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", mt.String(), err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding %s as png: %w", format, err)
	}
	return &Image{
		Source: mt.String(),
		PNG:    buf.Bytes(),
		Bounds: img.Bounds(),
	}, nil
}

func (i *Image) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(i.PNG)
}
