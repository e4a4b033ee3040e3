package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/rekognition-bot/internal/models"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }
func integer(i int) *int     { return &i }
func boolean(b bool) *bool   { return &b }

func fieldNames(fs models.FieldSet) []models.FieldName {
	names := []models.FieldName{}
	for _, f := range fs.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func fullFace() models.FaceDetail {
	return models.FaceDetail{
		Gender:   &models.Gender{Value: str("Female"), Confidence: num(99.876)},
		AgeRange: &models.AgeRange{Low: integer(25), High: integer(35)},
		Emotions: []models.Emotion{
			{Type: str("HAPPY"), Confidence: num(87.5)},
			{Type: str("CALM"), Confidence: num(10.123)},
		},
		Sunglasses: &models.BoolAttribute{Value: boolean(false), Confidence: num(99.1)},
		Eyeglasses: &models.BoolAttribute{Value: boolean(true), Confidence: num(95)},
		Beard:      &models.BoolAttribute{Value: boolean(false), Confidence: num(80.556)},
		Mustache:   &models.BoolAttribute{Value: boolean(false), Confidence: num(70)},
		Smile:      &models.BoolAttribute{Value: boolean(true), Confidence: num(60.004)},
	}
}

func TestSingleFullResponse(t *testing.T) {
	analysis := &models.ImageAnalysis{
		Labels:      []models.Label{{Name: str("Person")}, {Name: str("Glasses")}},
		Celebrities: []models.Celebrity{{Name: str("Jane Doe")}},
		Faces:       []models.FaceDetail{fullFace()},
		Texts:       []models.TextDetection{{DetectedText: str("HELLO")}, {DetectedText: str("WORLD")}},
	}

	fs := Single(analysis)

	assert.Equal(t, []models.FieldName{
		models.FieldGender,
		models.FieldAgeRange,
		models.FieldEmotions,
		models.FieldAttributes,
		models.FieldObjects,
		models.FieldCelebrities,
		models.FieldText,
	}, fieldNames(fs))

	gender, _ := fs.Get(models.FieldGender)
	assert.Equal(t, "Female (Confidence: 99.88%)", gender)

	age, _ := fs.Get(models.FieldAgeRange)
	assert.Equal(t, "25 - 35", age)

	emotions, _ := fs.Get(models.FieldEmotions)
	assert.Equal(t, "HAPPY (87.50%)\nCALM (10.12%)", emotions)

	attrs, _ := fs.Get(models.FieldAttributes)
	assert.Equal(t, strings.Join([]string{
		"Sunglasses: No (Confidence: 99.10%)",
		"Eyeglasses: Yes (Confidence: 95.00%)",
		"Beard: No (Confidence: 80.56%)",
		"Mustache: No (Confidence: 70.00%)",
		"Smile: Yes (Confidence: 60.00%)",
	}, "\n"), attrs)

	objects, _ := fs.Get(models.FieldObjects)
	assert.Equal(t, "Person, Glasses", objects)

	celebs, _ := fs.Get(models.FieldCelebrities)
	assert.Equal(t, "Jane Doe", celebs)

	text, _ := fs.Get(models.FieldText)
	assert.Equal(t, "HELLO, WORLD", text)
}

func TestSingleFirstFaceWins(t *testing.T) {
	second := fullFace()
	second.Gender = &models.Gender{Value: str("Male"), Confidence: num(50)}

	fs := Single(&models.ImageAnalysis{Faces: []models.FaceDetail{fullFace(), second}})

	gender, _ := fs.Get(models.FieldGender)
	assert.Equal(t, "Female (Confidence: 99.88%)", gender)
}

func TestSingleEmptyFaceUsesDefaults(t *testing.T) {
	fs := Single(&models.ImageAnalysis{Faces: []models.FaceDetail{{}}})

	gender, ok := fs.Get(models.FieldGender)
	require.True(t, ok)
	assert.Equal(t, "Unknown (Confidence: 0.00%)", gender)

	age, ok := fs.Get(models.FieldAgeRange)
	require.True(t, ok)
	assert.Equal(t, "Unknown - Unknown", age)

	_, ok = fs.Get(models.FieldEmotions)
	assert.False(t, ok, "empty emotion list must omit the field")

	attrs, ok := fs.Get(models.FieldAttributes)
	require.True(t, ok, "attributes are emitted whenever a face is present")
	assert.Equal(t, strings.Join([]string{
		"Sunglasses: No (Confidence: 0.00%)",
		"Eyeglasses: No (Confidence: 0.00%)",
		"Beard: No (Confidence: 0.00%)",
		"Mustache: No (Confidence: 0.00%)",
		"Smile: No (Confidence: 0.00%)",
	}, "\n"), attrs)
}

func TestMissingAttributeRendersNoAtZero(t *testing.T) {
	for i, attr := range faceAttributes {
		t.Run(attr.name, func(t *testing.T) {
			face := fullFace()
			switch i {
			case 0:
				face.Sunglasses = nil
			case 1:
				face.Eyeglasses = nil
			case 2:
				face.Beard = nil
			case 3:
				face.Mustache = nil
			case 4:
				face.Smile = nil
			}

			fs := Single(&models.ImageAnalysis{Faces: []models.FaceDetail{face}})
			attrs, _ := fs.Get(models.FieldAttributes)

			lines := strings.Split(attrs, "\n")
			require.Len(t, lines, len(faceAttributes))
			assert.Equal(t, attr.name+": No (Confidence: 0.00%)", lines[i])
		})
	}
}

func TestAttributeValueMissingButConfidencePresent(t *testing.T) {
	face := models.FaceDetail{Smile: &models.BoolAttribute{Confidence: num(42)}}
	fs := Single(&models.ImageAnalysis{Faces: []models.FaceDetail{face}})

	attrs, _ := fs.Get(models.FieldAttributes)
	assert.Contains(t, attrs, "Smile: No (Confidence: 42.00%)")
}

func TestAgeRangeMissingBound(t *testing.T) {
	tests := []struct {
		name string
		in   *models.AgeRange
		want string
	}{
		{"missing low", &models.AgeRange{High: integer(40)}, "Unknown - 40"},
		{"missing high", &models.AgeRange{Low: integer(18)}, "18 - Unknown"},
		{"zero low is a value", &models.AgeRange{Low: integer(0), High: integer(3)}, "0 - 3"},
		{"nil range", nil, "Unknown - Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageRange(tt.in))
		})
	}
}

func TestEmotionMissingFields(t *testing.T) {
	got := emotions([]models.Emotion{{Confidence: num(3)}, {Type: str("SAD")}})
	assert.Equal(t, "Unknown (3.00%)\nSAD (0.00%)", got)
}

func TestSingleWithoutFacesOmitsFaceFields(t *testing.T) {
	fs := Single(&models.ImageAnalysis{Labels: []models.Label{{Name: str("Tree")}}})

	assert.Equal(t, []models.FieldName{models.FieldObjects}, fieldNames(fs))
}

func TestSingleEmptyAnalysis(t *testing.T) {
	assert.Equal(t, 0, Single(&models.ImageAnalysis{}).Len())
	assert.Equal(t, 0, Single(nil).Len())
}

func TestCelebritiesWithoutNameAreDropped(t *testing.T) {
	fs := Single(&models.ImageAnalysis{Celebrities: []models.Celebrity{
		{MatchConfidence: num(99)},
		{Name: str("")},
		{Name: str("John Smith")},
	}})

	celebs, ok := fs.Get(models.FieldCelebrities)
	require.True(t, ok)
	assert.Equal(t, "John Smith", celebs)

	fs = Single(&models.ImageAnalysis{Celebrities: []models.Celebrity{{MatchConfidence: num(99)}}})
	_, ok = fs.Get(models.FieldCelebrities)
	assert.False(t, ok)
}

func TestDetectedTextTruncation(t *testing.T) {
	long := strings.Repeat("a", 600)
	fs := Single(&models.ImageAnalysis{Texts: []models.TextDetection{
		{DetectedText: str(long)},
		{DetectedText: str(long)},
	}})

	joined := long + ", " + long
	text, ok := fs.Get(models.FieldText)
	require.True(t, ok)
	assert.Len(t, text, MaxTextLength)
	assert.Equal(t, joined[:MaxTextLength], text)
}

func TestDetectedTextTruncationCountsCharacters(t *testing.T) {
	long := strings.Repeat("é", 1500)
	fs := Single(&models.ImageAnalysis{Texts: []models.TextDetection{{DetectedText: str(long)}}})

	text, _ := fs.Get(models.FieldText)
	assert.Equal(t, MaxTextLength, len([]rune(text)))
	assert.Equal(t, strings.Repeat("é", MaxTextLength), text)
}

func TestDetectedTextShortIsUntouched(t *testing.T) {
	fs := Single(&models.ImageAnalysis{Texts: []models.TextDetection{{DetectedText: str("STOP")}}})
	text, _ := fs.Get(models.FieldText)
	assert.Equal(t, "STOP", text)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "日本", Truncate("日本語", 2))
}

func TestVerdictThreshold(t *testing.T) {
	tests := []struct {
		similarity float64
		want       string
	}{
		{0, VerdictDifferentPeople},
		{89.99, VerdictDifferentPeople},
		{90.00, VerdictDifferentPeople},
		{90.01, VerdictSamePerson},
		{100, VerdictSamePerson},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Verdict(tt.similarity), "similarity %.2f", tt.similarity)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name           string
		in             *models.FaceComparison
		wantStatus     string
		wantSimilarity string
	}{
		{"no matches", &models.FaceComparison{}, VerdictDifferentPeople, "0.00%"},
		{"nil comparison", nil, VerdictDifferentPeople, "0.00%"},
		{"exactly at threshold", &models.FaceComparison{Matches: []models.FaceMatch{{Similarity: num(90)}}}, VerdictDifferentPeople, "90.00%"},
		{"just above threshold", &models.FaceComparison{Matches: []models.FaceMatch{{Similarity: num(90.01)}}}, VerdictSamePerson, "90.01%"},
		{"first match wins", &models.FaceComparison{Matches: []models.FaceMatch{{Similarity: num(12.346)}, {Similarity: num(99)}}}, VerdictDifferentPeople, "12.35%"},
		{"match without similarity", &models.FaceComparison{Matches: []models.FaceMatch{{}}}, VerdictDifferentPeople, "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := Compare(tt.in)

			assert.Equal(t, []models.FieldName{models.FieldMatchStatus, models.FieldSimilarity}, fieldNames(fs))

			status, _ := fs.Get(models.FieldMatchStatus)
			assert.Equal(t, tt.wantStatus, status)

			similarity, _ := fs.Get(models.FieldSimilarity)
			assert.Equal(t, tt.wantSimilarity, similarity)
		})
	}
}
