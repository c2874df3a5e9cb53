// Package storage implements the content-addressed on-disk image store:
// decode -> centered square crop -> re-encode on write, raw bytes on read.
package storage

import (
	"bytes"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"imagecdn/internal/resource"
)

// Store is the content-addressed filesystem layout rooted at a single
// directory, laid out {root}/{class}/{id}/[a_]{hash}.{png|gif}.
type Store struct {
	root string
}

// New returns a Store rooted at root. The directory is created lazily on
// first write.
func New(root string) *Store {
	return &Store{root: root}
}

// Get returns the bytes stored for (class, id, filename), or false if the
// file does not exist or cannot be read — missing and unreadable collapse
// to the same outcome.
func (s *Store) Get(class resource.Resource, id, filename string) ([]byte, bool) {
	path := filepath.Join(s.root, class.String(), id, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put validates, normalizes and writes an upload, returning the filename it
// chose. For GIF sources this also writes a still-frame PNG preview
// alongside the animation; the returned filename is the animation's.
func (s *Store) Put(class resource.Resource, id string, data []byte, hash string) (string, error) {
	format, err := sniff(data)
	if err != nil {
		if looksLikeImage(data) {
			return "", ErrUnsupportedFormat
		}
		return "", ErrInvalidFormat
	}

	dir := filepath.Join(s.root, class.String(), id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &IOError{Op: "mkdir", Err: err}
	}

	if class.Singleton() {
		if err := purgeDir(dir); err != nil {
			return "", &IOError{Op: "purge", Err: err}
		}
	}

	if format == formatGIF {
		return s.putGIF(dir, data, hash)
	}
	return s.putStill(dir, data, hash)
}

func (s *Store) putStill(dir string, data []byte, hash string) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", &IOError{Op: "decode", Err: err}
	}

	cropped := imaging.Crop(img, cropRect(img.Bounds().Dx(), img.Bounds().Dy()))

	filename := hash + ".png"
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", &IOError{Op: "create", Err: err}
	}
	defer f.Close()

	if err := imaging.Encode(f, cropped, imaging.PNG); err != nil {
		return "", &IOError{Op: "encode", Err: err}
	}
	return filename, nil
}

func (s *Store) putGIF(dir string, data []byte, hash string) (string, error) {
	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return "", &IOError{Op: "decode", Err: err}
	}

	cropped := cropAnimatedGIF(decoded)

	gifFilename := "a_" + hash + ".gif"
	gifFile, err := os.Create(filepath.Join(dir, gifFilename))
	if err != nil {
		return "", &IOError{Op: "create", Err: err}
	}
	defer gifFile.Close()

	if err := gif.EncodeAll(gifFile, &gif.GIF{
		Image:     cropped.Image,
		Delay:     cropped.Delay,
		Disposal:  cropped.Disposal,
		LoopCount: 0,
	}); err != nil {
		return "", &IOError{Op: "encode", Err: err}
	}

	pngFilename := "a_" + hash + ".png"
	pngFile, err := os.Create(filepath.Join(dir, pngFilename))
	if err != nil {
		return "", &IOError{Op: "create", Err: err}
	}
	defer pngFile.Close()

	if err := imaging.Encode(pngFile, firstFrameRGBA(cropped), imaging.PNG); err != nil {
		return "", &IOError{Op: "encode", Err: err}
	}

	return gifFilename, nil
}

// purgeDir removes every regular file directly under dir. Directories are
// left alone; there are none in a singleton resource's directory.
func purgeDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// looksLikeImage reports whether data's header is recognized by the
// standard library's generic content sniffer as some image type, even one
// this store does not support (e.g. BMP, TIFF).
func looksLikeImage(data []byte) bool {
	ct := http.DetectContentType(data)
	return strings.HasPrefix(ct, "image/")
}
