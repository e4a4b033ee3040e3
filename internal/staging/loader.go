package staging

import (
	"errors"
	"fmt"
	"os"

	"github.com/spacesedan/rekognition-bot/internal/failures"
)

var ErrEmptyFile = errors.New("staged image is empty")

// FileLoader reads staged images from disk.
type FileLoader struct{}

// Load returns the file's bytes or a read failure. It never retries.
func (FileLoader) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, failures.Read("staging.load", fmt.Errorf("Error reading image: %w", err))
	}
	if len(data) == 0 {
		return nil, failures.Read("staging.load", ErrEmptyFile)
	}
	return data, nil
}
