package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisRequest(t *testing.T) {
	img := []byte{0xFF, 0xD8}

	_, err := NewAnalysisRequest()
	assert.True(t, errors.Is(err, ErrNoImages))

	req, err := NewAnalysisRequest(img)
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, req.Mode())
	assert.IsType(t, SingleRequest{}, req)

	req, err = NewAnalysisRequest(img, []byte{0x89})
	require.NoError(t, err)
	assert.Equal(t, ModeCompare, req.Mode())
	cmp, ok := req.(CompareRequest)
	require.True(t, ok)
	assert.Equal(t, img, cmp.Source)
	assert.Equal(t, []byte{0x89}, cmp.Target)

	_, err = NewAnalysisRequest(img, nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = NewAnalysisRequest(img, img, img)
	assert.ErrorIs(t, err, ErrTooManyImages)
}

func TestFieldSetOrderIndependentOfInsertion(t *testing.T) {
	var fs FieldSet
	fs.Set(FieldText, "hello")
	fs.Set(FieldSimilarity, "12.00%")
	fs.Set(FieldGender, "Female (Confidence: 99.00%)")
	fs.Set(FieldObjects, "Person")

	fields := fs.Fields()
	names := make([]FieldName, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []FieldName{FieldGender, FieldObjects, FieldSimilarity, FieldText}, names)
}

func TestFieldSetSkipsEmptyAndUnknown(t *testing.T) {
	var fs FieldSet
	fs.Set(FieldEmotions, "")
	fs.Set(FieldName("Mood"), "happy")

	assert.Equal(t, 0, fs.Len())
	assert.Empty(t, fs.Fields())

	_, ok := fs.Get(FieldEmotions)
	assert.False(t, ok)
}
