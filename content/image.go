package content

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"docconv/dom"
	"docconv/model"
	"docconv/utils/images"
)

var errNotAllowed = errors.New("local images are disabled")

// loadImage interprets img element. It returns either picture, placeholder
// text or neither when src is not recognized.
func (b *Builder) loadImage(el dom.Node) (*model.Image, string) {
	src, _ := el.Attr("src")
	src = strings.TrimSpace(src)
	alt, _ := el.Attr("alt")

	placeholder := func(def string) string {
		if alt = strings.TrimSpace(alt); alt != "" {
			return "[" + alt + "]"
		}
		return "[" + def + "]"
	}

	lower := strings.ToLower(src)
	switch {
	case strings.HasPrefix(lower, "data:image"):
		data, err := decodeDataURI(src)
		if err == nil {
			var img *model.Image
			if img, err = b.normalize(data, "data URI"); err == nil {
				return img, ""
			}
		}
		b.log.Warn("Unable to decode embedded image, using placeholder", zap.Error(err))
		return nil, placeholder(imagePlaceholder)

	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		b.log.Debug("External image is not downloaded", zap.String("src", src))
		return nil, placeholder(externalImageLabel)

	case src == "":
		return nil, ""
	}

	path, ok := b.localPath(src)
	if !ok {
		b.log.Debug("Image source not recognized, ignoring", zap.String("src", src))
		return nil, ""
	}
	img, err := b.readLocal(path)
	if err != nil {
		b.log.Warn("Unable to load image, using placeholder", zap.String("path", path), zap.Error(err))
		return nil, placeholder(imagePlaceholder)
	}
	return img, ""
}

// localPath finds existing file src refers to.
func (b *Builder) localPath(src string) (string, bool) {
	candidates := []string{src}
	if unescaped, err := url.PathUnescape(src); err == nil && unescaped != src {
		candidates = append(candidates, unescaped)
	}
	for _, c := range candidates {
		if !filepath.IsAbs(c) && b.opts.BaseDir != "" {
			c = filepath.Join(b.opts.BaseDir, c)
		}
		if fi, err := os.Stat(c); err == nil && fi.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}

func (b *Builder) readLocal(path string) (*model.Image, error) {
	if !b.opts.AllowLocal {
		return nil, errNotAllowed
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}
	return b.normalize(data, path)
}

func (b *Builder) normalize(data []byte, source string) (*model.Image, error) {
	n, err := images.Normalize(data, b.opts.MaxPixels)
	if err != nil {
		return nil, err
	}
	return &model.Image{
		Data:        n.Data,
		MimeType:    n.MimeType,
		Source:      source,
		Width:       b.opts.ImageWidth,
		PixelWidth:  n.Width,
		PixelHeight: n.Height,
	}, nil
}

// decodeDataURI returns payload of "data:[<mediatype>][;base64],<data>".
func decodeDataURI(src string) ([]byte, error) {
	header, payload, found := strings.Cut(src, ",")
	if !found {
		return nil, errors.New("malformed data URI")
	}
	if !strings.HasSuffix(strings.ToLower(header), ";base64") {
		data, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("unable to unescape data URI: %w", err)
		}
		return []byte(data), nil
	}
	payload = strings.Map(func(r rune) rune {
		if isHTMLSpace(r) {
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some producers drop padding
		if raw, rerr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rerr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("unable to decode data URI: %w", err)
	}
	return data, nil
}

// image places picture or its placeholder into current flow.
func (b *Builder) image(el dom.Node, f *flow) {
	img, placeholder := b.loadImage(el)
	if img == nil && placeholder == "" {
		return
	}
	if f.p == nil && !f.inBlock {
		if img != nil {
			b.doc.Append(img)
			return
		}
		p := f.proto
		p.AddRun(f.format.Run(placeholder))
		b.doc.Append(&p)
		return
	}
	p := f.paragraph()
	if img != nil {
		p.AddRun(model.Run{Image: img})
		return
	}
	appendText(p, placeholder, f.format)
}
