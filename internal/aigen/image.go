package aigen

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/abhisek/wordwise/internal/llm"
)

// Image is an inline worksheet image.
type Image = llm.Image

// MaxImageBytes bounds the size of a worksheet photo.
const MaxImageBytes = 10 << 20

// ErrUnsupportedImage is returned for data that is not a JPEG, PNG, GIF or
// WebP image.
var ErrUnsupportedImage = errors.New("unsupported image type")

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// NewImage sniffs the media type of data and checks it is supported.
func NewImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty data", ErrUnsupportedImage)
	}
	if len(data) > MaxImageBytes {
		return Image{}, fmt.Errorf("image is %d bytes, limit is %d", len(data), MaxImageBytes)
	}
	mt := http.DetectContentType(data)
	if !supportedImageTypes[mt] {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mt)
	}
	return Image{Data: data, MediaType: mt}, nil
}

// ImageFromFile reads a worksheet photo from disk.
func ImageFromFile(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	return NewImage(data)
}

// DecodeDataURL accepts either a "data:image/...;base64," URL or bare
// base64 and returns the decoded image.
func DecodeDataURL(s string) (Image, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		_, payload, ok := strings.Cut(s, ",")
		if !ok {
			return Image{}, fmt.Errorf("malformed data URL")
		}
		s = payload
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Image{}, fmt.Errorf("decode base64 image: %w", err)
	}
	return NewImage(data)
}
