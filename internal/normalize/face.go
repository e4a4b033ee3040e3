package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacesedan/rekognition-bot/internal/models"
)

// faceAttribute is one row of the fixed attribute checklist.
type faceAttribute struct {
	name string
	get  func(models.FaceDetail) *models.BoolAttribute
}

var faceAttributes = []faceAttribute{
	{"Sunglasses", func(f models.FaceDetail) *models.BoolAttribute { return f.Sunglasses }},
	{"Eyeglasses", func(f models.FaceDetail) *models.BoolAttribute { return f.Eyeglasses }},
	{"Beard", func(f models.FaceDetail) *models.BoolAttribute { return f.Beard }},
	{"Mustache", func(f models.FaceDetail) *models.BoolAttribute { return f.Mustache }},
	{"Smile", func(f models.FaceDetail) *models.BoolAttribute { return f.Smile }},
}

func addFace(fs *models.FieldSet, face models.FaceDetail) {
	fs.Set(models.FieldGender, gender(face.Gender))
	fs.Set(models.FieldAgeRange, ageRange(face.AgeRange))
	fs.Set(models.FieldEmotions, emotions(face.Emotions))
	fs.Set(models.FieldAttributes, attributes(face))
}

func gender(g *models.Gender) string {
	value, confidence := unknownValue, 0.0
	if g != nil {
		value = stringOr(g.Value, unknownValue)
		confidence = floatOr(g.Confidence, 0)
	}
	return fmt.Sprintf("%s (Confidence: %.2f%%)", value, confidence)
}

// ageRange renders a missing bound as the literal "Unknown", never a number.
func ageRange(r *models.AgeRange) string {
	low, high := unknownValue, unknownValue
	if r != nil {
		if r.Low != nil {
			low = strconv.Itoa(*r.Low)
		}
		if r.High != nil {
			high = strconv.Itoa(*r.High)
		}
	}
	return low + " - " + high
}

func emotions(list []models.Emotion) string {
	lines := make([]string, 0, len(list))
	for _, e := range list {
		lines = append(lines, fmt.Sprintf("%s (%.2f%%)", stringOr(e.Type, unknownValue), floatOr(e.Confidence, 0)))
	}
	return strings.Join(lines, "\n")
}

// attributes always renders every checklist row; a missing attribute reads No at 0%.
func attributes(face models.FaceDetail) string {
	lines := make([]string, 0, len(faceAttributes))
	for _, attr := range faceAttributes {
		present, confidence := false, 0.0
		if a := attr.get(face); a != nil {
			present = a.Value != nil && *a.Value
			confidence = floatOr(a.Confidence, 0)
		}
		lines = append(lines, fmt.Sprintf("%s: %s (Confidence: %.2f%%)", attr.name, yesNo(present), confidence))
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
