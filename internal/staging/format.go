package staging

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Registered so unsupported formats are recognized and named.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spacesedan/rekognition-bot/internal/failures"
)

var ErrUnrecognizedImage = errors.New("Attachment is not a recognizable image.")

// Rekognition only accepts JPEG and PNG bytes.
var supportedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
}

// DetectFormat returns the image format name from the header bytes.
func DetectFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrUnrecognizedImage
	}
	return format, nil
}

// CheckFormat rejects anything Rekognition cannot analyze before it is sent.
func CheckFormat(name string, data []byte) error {
	format, err := DetectFormat(data)
	if err != nil {
		return failures.Validation("staging.check_format", fmt.Errorf("%s: %w", name, err))
	}
	if !supportedFormats[format] {
		return failures.Validation("staging.check_format",
			fmt.Errorf("%s is a %s image; only JPEG and PNG photos can be analyzed.", name, format))
	}
	return nil
}
