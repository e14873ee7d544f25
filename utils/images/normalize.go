// Package images prepares pictures for embedding into generated documents.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for data which is not a recognizable picture.
var ErrUnsupported = errors.New("unsupported image format")

// Normalized is a picture in one of formats every document writer could
// embed: PNG, JPEG or GIF.
type Normalized struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

// Normalize validates picture and converts it to embeddable format if
// necessary. Pictures larger than maxDim pixels in any dimension are scaled
// down, maxDim <= 0 disables scaling. SVG is rasterized.
func Normalize(data []byte, maxDim int) (*Normalized, error) {
	if len(data) == 0 {
		return nil, ErrUnsupported
	}

	if IsSVG(data) {
		img, err := RasterizeSVGToImage(data, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return encode(fit(img, maxDim), imaging.PNG)
	}

	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, ErrUnsupported
	}

	switch kind.MIME.Value {
	case "image/png", "image/jpeg", "image/gif", "image/bmp", "image/tiff", "image/webp":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind.MIME.Value)
	}

	// full decode makes sure truncated or corrupted data is rejected here
	// rather than by document reader later
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s image: %w", kind.MIME.Value, err)
	}
	b := img.Bounds()
	resize := maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim)

	switch format {
	case "png", "jpeg", "gif":
		if !resize {
			return &Normalized{Data: data, MimeType: kind.MIME.Value, Width: b.Dx(), Height: b.Dy()}, nil
		}
		if format == "gif" {
			// re-encoding would lose animation, keep first frame only as png
			return encode(fit(img, maxDim), imaging.PNG)
		}
		f, _ := imaging.FormatFromExtension(format)
		return encode(fit(img, maxDim), f)
	default:
		return encode(fit(img, maxDim), imaging.PNG)
	}
}

func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := clampDims(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

func encode(img image.Image, f imaging.Format) (*Normalized, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("unable to encode image: %w", err)
	}
	mime := "image/png"
	switch f {
	case imaging.JPEG:
		mime = "image/jpeg"
	case imaging.GIF:
		mime = "image/gif"
	}
	b := img.Bounds()
	return &Normalized{Data: buf.Bytes(), MimeType: mime, Width: b.Dx(), Height: b.Dy()}, nil
}
