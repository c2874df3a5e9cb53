package storage

import "bytes"

// sourceFormat is a sniffed, recognized upload format.
type sourceFormat int

const (
	formatGIF sourceFormat = iota
	formatJPEG
	formatPNG
	formatWebP
)

var (
	gifHeader6a  = []byte("GIF87a")
	gifHeader6b  = []byte("GIF89a")
	pngHeader    = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegHeader   = []byte{0xFF, 0xD8, 0xFF}
	riffMagic    = []byte("RIFF")
	webpMagic    = []byte("WEBP")
)

// sniff inspects the leading bytes of data and returns the recognized
// format, or ErrInvalidFormat if the header is not any known image magic.
func sniff(data []byte) (sourceFormat, error) {
	switch {
	case len(data) >= 6 && (bytes.Equal(data[:6], gifHeader6a) || bytes.Equal(data[:6], gifHeader6b)):
		return formatGIF, nil
	case len(data) >= 8 && bytes.Equal(data[:8], pngHeader):
		return formatPNG, nil
	case len(data) >= 3 && bytes.Equal(data[:3], jpegHeader):
		return formatJPEG, nil
	case len(data) >= 12 && bytes.Equal(data[:4], riffMagic) && bytes.Equal(data[8:12], webpMagic):
		return formatWebP, nil
	default:
		return 0, ErrInvalidFormat
	}
}
