package models

import (
	"errors"
	"fmt"
)

type Mode string

const (
	ModeSingle  Mode = "single"
	ModeCompare Mode = "compare"
)

// AnalysisRequest is either a SingleRequest or a CompareRequest.
type AnalysisRequest interface {
	Mode() Mode
}

type SingleRequest struct {
	Image []byte
}

func (SingleRequest) Mode() Mode { return ModeSingle }

type CompareRequest struct {
	Source []byte
	Target []byte
}

func (CompareRequest) Mode() Mode { return ModeCompare }

var (
	ErrNoImages      = errors.New("You must attach at least one photo.")
	ErrTooManyImages = errors.New("At most two photos can be compared.")
	ErrEmptyImage    = errors.New("Failed to read image bytes.")
)

// NewAnalysisRequest picks the mode from the number of images.
func NewAnalysisRequest(images ...[]byte) (AnalysisRequest, error) {
	for i, img := range images {
		if len(img) == 0 {
			return nil, fmt.Errorf("image %d: %w", i+1, ErrEmptyImage)
		}
	}

	switch len(images) {
	case 0:
		return nil, ErrNoImages
	case 1:
		return SingleRequest{Image: images[0]}, nil
	case 2:
		return CompareRequest{Source: images[0], Target: images[1]}, nil
	default:
		return nil, ErrTooManyImages
	}
}
