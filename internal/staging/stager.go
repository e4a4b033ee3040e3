// Package staging downloads chat attachments into a working directory and
// reads them back for analysis.
package staging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spacesedan/rekognition-bot/internal/failures"
	"github.com/spacesedan/rekognition-bot/internal/models"
)

// MaxDownloadBytes bounds a single attachment download.
const MaxDownloadBytes = 25 << 20

type Stager struct {
	dir    string
	client *http.Client
}

func NewStager(dir string, client *http.Client) (*Stager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("[Stager] failed to create staging dir %s: %w", dir, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Stager{dir: dir, client: client}, nil
}

// Stage downloads the attachment to <dir>/<uuid>-<sanitized name>. Only the
// sanitized base name is used, so the file always lands inside dir.
func (s *Stager) Stage(ctx context.Context, att models.Attachment) (models.StagedImage, error) {
	name := SanitizeFilename(att.Filename)
	path := filepath.Join(s.dir, uuid.NewString()+"-"+name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, http.NoBody)
	if err != nil {
		return models.StagedImage{}, failures.Read("staging.stage", fmt.Errorf("failed to build download request: %w", err))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.StagedImage{}, failures.Read("staging.stage", fmt.Errorf("failed to download %s: %w", name, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.StagedImage{}, failures.Read("staging.stage", fmt.Errorf("failed to download %s: status code %d", name, resp.StatusCode))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return models.StagedImage{}, failures.Read("staging.stage", fmt.Errorf("failed to create %s: %w", path, err))
	}

	n, copyErr := io.Copy(f, io.LimitReader(resp.Body, MaxDownloadBytes+1))
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return models.StagedImage{}, failures.Read("staging.stage", fmt.Errorf("failed to save %s: %w", name, copyErr))
	case closeErr != nil:
		_ = os.Remove(path)
		return models.StagedImage{}, failures.Read("staging.stage", fmt.Errorf("failed to save %s: %w", name, closeErr))
	case n > MaxDownloadBytes:
		_ = os.Remove(path)
		return models.StagedImage{}, failures.Validation("staging.stage", fmt.Errorf("%s is larger than %d bytes", name, MaxDownloadBytes))
	}

	slog.Debug("[Stager] Attachment staged",
		slog.String("file", name),
		slog.String("path", path),
		slog.Int64("bytes", n))

	return models.StagedImage{
		Name:        name,
		Path:        path,
		ContentType: att.ContentType,
	}, nil
}

// Remove deletes a staged file. Missing files are ignored.
func (s *Stager) Remove(img models.StagedImage) {
	if img.Path == "" {
		return
	}
	if err := os.Remove(img.Path); err != nil && !os.IsNotExist(err) {
		slog.Warn("[Stager] Failed to remove staged file",
			slog.String("path", img.Path),
			slog.String("error", err.Error()))
	}
}

// SanitizeFilename reduces a user-supplied name to a safe base name.
func SanitizeFilename(filename string) string {
	result := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "\x00"}
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}

	// Remove leading/trailing spaces and dots
	result = strings.Trim(result, " .")

	if result == "" {
		return "image"
	}
	return result
}
