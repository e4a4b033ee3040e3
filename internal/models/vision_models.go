package models

// ImageAnalysis is the raw single-image response set: four independent
// Rekognition calls. Nested values are optional because the service omits
// them depending on image content.
type ImageAnalysis struct {
	Labels      []Label
	Celebrities []Celebrity
	Faces       []FaceDetail
	Texts       []TextDetection
}

type Label struct {
	Name       *string  `json:"name,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type Celebrity struct {
	Name            *string  `json:"name,omitempty"`
	MatchConfidence *float64 `json:"match_confidence,omitempty"`
}

type FaceDetail struct {
	Gender     *Gender        `json:"gender,omitempty"`
	AgeRange   *AgeRange      `json:"age_range,omitempty"`
	Emotions   []Emotion      `json:"emotions,omitempty"`
	Sunglasses *BoolAttribute `json:"sunglasses,omitempty"`
	Eyeglasses *BoolAttribute `json:"eyeglasses,omitempty"`
	Beard      *BoolAttribute `json:"beard,omitempty"`
	Mustache   *BoolAttribute `json:"mustache,omitempty"`
	Smile      *BoolAttribute `json:"smile,omitempty"`
}

type Gender struct {
	Value      *string  `json:"value,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type AgeRange struct {
	Low  *int `json:"low,omitempty"`
	High *int `json:"high,omitempty"`
}

type Emotion struct {
	Type       *string  `json:"type,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type BoolAttribute struct {
	Value      *bool    `json:"value,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type TextDetection struct {
	DetectedText *string  `json:"detected_text,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// FaceComparison holds the candidate matches between a source and a target
// image. Matches is empty when no face matched.
type FaceComparison struct {
	Matches []FaceMatch
}

type FaceMatch struct {
	Similarity *float64 `json:"similarity,omitempty"`
}
