// Package normalize flattens Rekognition responses into the display field set
// and derives the face-match verdict.
package normalize

import (
	"fmt"
	"strings"

	"github.com/spacesedan/rekognition-bot/internal/models"
)

const (
	// SameFaceThreshold is the similarity (percent) a match must exceed to be
	// reported as the same person. The comparison is strict.
	SameFaceThreshold = 90.0

	// MaxTextLength caps the Detected Text field, matching the Discord embed
	// field value limit.
	MaxTextLength = 1024

	VerdictSamePerson      = "Likely the same person"
	VerdictDifferentPeople = "Likely different people"

	unknownValue  = "Unknown"
	listSeparator = ", "
)

// Single builds the field set for one analyzed image.
func Single(a *models.ImageAnalysis) models.FieldSet {
	var fs models.FieldSet
	if a == nil {
		return fs
	}

	// First face wins; no ranking by size or confidence.
	if len(a.Faces) > 0 {
		addFace(&fs, a.Faces[0])
	}

	fs.Set(models.FieldObjects, labelNames(a.Labels))
	fs.Set(models.FieldCelebrities, celebrityNames(a.Celebrities))
	fs.Set(models.FieldText, detectedText(a.Texts))

	return fs
}

// Compare builds the field set for a two-image face comparison.
func Compare(c *models.FaceComparison) models.FieldSet {
	similarity := Similarity(c)

	var fs models.FieldSet
	fs.Set(models.FieldMatchStatus, Verdict(similarity))
	fs.Set(models.FieldSimilarity, fmt.Sprintf("%.2f%%", similarity))
	return fs
}

// Similarity returns the first match's similarity, or 0 when there is none.
func Similarity(c *models.FaceComparison) float64 {
	if c == nil || len(c.Matches) == 0 {
		return 0
	}
	return floatOr(c.Matches[0].Similarity, 0)
}

func Verdict(similarity float64) string {
	if similarity > SameFaceThreshold {
		return VerdictSamePerson
	}
	return VerdictDifferentPeople
}

func labelNames(labels []models.Label) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Name != nil && *l.Name != "" {
			names = append(names, *l.Name)
		}
	}
	return strings.Join(names, listSeparator)
}

// celebrityNames drops entries without a name; they are not counted as detected.
func celebrityNames(celebrities []models.Celebrity) string {
	names := make([]string, 0, len(celebrities))
	for _, c := range celebrities {
		if c.Name != nil && *c.Name != "" {
			names = append(names, *c.Name)
		}
	}
	return strings.Join(names, listSeparator)
}

func detectedText(texts []models.TextDetection) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		if t.DetectedText != nil {
			parts = append(parts, *t.DetectedText)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return Truncate(strings.Join(parts, listSeparator), MaxTextLength)
}

// Truncate returns at most n characters (runes) of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
