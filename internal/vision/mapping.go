package vision

import (
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/spacesedan/rekognition-bot/internal/models"
)

func mapLabels(in []types.Label) []models.Label {
	out := make([]models.Label, 0, len(in))
	for _, l := range in {
		out = append(out, models.Label{
			Name:       l.Name,
			Confidence: toFloat64(l.Confidence),
		})
	}
	return out
}

func mapCelebrities(in []types.Celebrity) []models.Celebrity {
	out := make([]models.Celebrity, 0, len(in))
	for _, c := range in {
		out = append(out, models.Celebrity{
			Name:            c.Name,
			MatchConfidence: toFloat64(c.MatchConfidence),
		})
	}
	return out
}

func mapFaceDetails(in []types.FaceDetail) []models.FaceDetail {
	out := make([]models.FaceDetail, 0, len(in))
	for _, f := range in {
		face := models.FaceDetail{
			Emotions: mapEmotions(f.Emotions),
		}
		if f.Gender != nil {
			face.Gender = &models.Gender{
				Value:      enumString(string(f.Gender.Value)),
				Confidence: toFloat64(f.Gender.Confidence),
			}
		}
		if f.AgeRange != nil {
			face.AgeRange = &models.AgeRange{
				Low:  toInt(f.AgeRange.Low),
				High: toInt(f.AgeRange.High),
			}
		}
		if f.Sunglasses != nil {
			face.Sunglasses = boolAttribute(f.Sunglasses.Value, f.Sunglasses.Confidence)
		}
		if f.Eyeglasses != nil {
			face.Eyeglasses = boolAttribute(f.Eyeglasses.Value, f.Eyeglasses.Confidence)
		}
		if f.Beard != nil {
			face.Beard = boolAttribute(f.Beard.Value, f.Beard.Confidence)
		}
		if f.Mustache != nil {
			face.Mustache = boolAttribute(f.Mustache.Value, f.Mustache.Confidence)
		}
		if f.Smile != nil {
			face.Smile = boolAttribute(f.Smile.Value, f.Smile.Confidence)
		}
		out = append(out, face)
	}
	return out
}

func mapEmotions(in []types.Emotion) []models.Emotion {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Emotion, 0, len(in))
	for _, e := range in {
		out = append(out, models.Emotion{
			Type:       enumString(string(e.Type)),
			Confidence: toFloat64(e.Confidence),
		})
	}
	return out
}

func mapTextDetections(in []types.TextDetection) []models.TextDetection {
	out := make([]models.TextDetection, 0, len(in))
	for _, t := range in {
		out = append(out, models.TextDetection{
			DetectedText: t.DetectedText,
			Type:         enumString(string(t.Type)),
			Confidence:   toFloat64(t.Confidence),
		})
	}
	return out
}

func mapFaceMatches(in []types.CompareFacesMatch) []models.FaceMatch {
	out := make([]models.FaceMatch, 0, len(in))
	for _, m := range in {
		out = append(out, models.FaceMatch{Similarity: toFloat64(m.Similarity)})
	}
	return out
}

func boolAttribute(value bool, confidence *float32) *models.BoolAttribute {
	return &models.BoolAttribute{Value: &value, Confidence: toFloat64(confidence)}
}

func toFloat64(v *float32) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func toInt(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

// enumString treats the zero enum value as absent.
func enumString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
