package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud-shadows/internal/logging"
)

// ErrUnsupportedFormat reports a file the loaders cannot decode.
var ErrUnsupportedFormat = errors.New("texture: unsupported format")

// Load reads a cloud texture from disk. The extension picks the decoder:
// .tex for Wallpaper Engine containers, anything else through image.Decode.
func Load(path string) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()
	m, err := Decode(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logging.Debug("texture: loaded %s (%dx%d)", path, m.W, m.H)
	return m, nil
}

// Decode reads a texture from r. name supplies the extension and becomes the
// mask's preset reference.
func Decode(r io.Reader, name string) (*Mask, error) {
	var m *Mask
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tex":
		decoded, err := DecodeTex(r)
		if err != nil {
			return nil, err
		}
		m = decoded
	case ".png", ".jpg", ".jpeg":
		img, _, err := image.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		m = FromImage(img)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	m.name = name
	return m, nil
}
