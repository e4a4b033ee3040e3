// Package vision wraps the Rekognition operations the bot needs and maps
// their responses onto internal models.
package vision

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/errgroup"

	"github.com/spacesedan/rekognition-bot/internal/failures"
	"github.com/spacesedan/rekognition-bot/internal/metrics"
	"github.com/spacesedan/rekognition-bot/internal/models"
)

const (
	OpDetectLabels         = "detect_labels"
	OpRecognizeCelebrities = "recognize_celebrities"
	OpDetectFaces          = "detect_faces"
	OpDetectText           = "detect_text"
	OpCompareFaces         = "compare_faces"
)

// RekognitionAPI is the subset of *rekognition.Client used by the adapter.
type RekognitionAPI interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
	RecognizeCelebrities(ctx context.Context, params *rekognition.RecognizeCelebritiesInput, optFns ...func(*rekognition.Options)) (*rekognition.RecognizeCelebritiesOutput, error)
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
	CompareFaces(ctx context.Context, params *rekognition.CompareFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.CompareFacesOutput, error)
}

// Adapter calls Rekognition without retrying. Every service error is
// returned as a failures.KindService failure carrying the SDK message.
type Adapter struct {
	api     RekognitionAPI
	metrics *metrics.Metrics
}

func NewAdapter(api RekognitionAPI, m *metrics.Metrics) *Adapter {
	return &Adapter{api: api, metrics: m}
}

func (a *Adapter) DetectLabels(ctx context.Context, image []byte) ([]models.Label, error) {
	var out *rekognition.DetectLabelsOutput
	err := a.call(ctx, OpDetectLabels, func(ctx context.Context) (err error) {
		out, err = a.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
			Image: &types.Image{Bytes: image},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return mapLabels(out.Labels), nil
}

func (a *Adapter) DetectCelebrities(ctx context.Context, image []byte) ([]models.Celebrity, error) {
	var out *rekognition.RecognizeCelebritiesOutput
	err := a.call(ctx, OpRecognizeCelebrities, func(ctx context.Context) (err error) {
		out, err = a.api.RecognizeCelebrities(ctx, &rekognition.RecognizeCelebritiesInput{
			Image: &types.Image{Bytes: image},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return mapCelebrities(out.CelebrityFaces), nil
}

// DetectFaces requests the full attribute set: demographics, emotions,
// accessories, facial hair and expression.
func (a *Adapter) DetectFaces(ctx context.Context, image []byte) ([]models.FaceDetail, error) {
	var out *rekognition.DetectFacesOutput
	err := a.call(ctx, OpDetectFaces, func(ctx context.Context) (err error) {
		out, err = a.api.DetectFaces(ctx, &rekognition.DetectFacesInput{
			Image:      &types.Image{Bytes: image},
			Attributes: []types.Attribute{types.AttributeAll},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return mapFaceDetails(out.FaceDetails), nil
}

func (a *Adapter) DetectText(ctx context.Context, image []byte) ([]models.TextDetection, error) {
	var out *rekognition.DetectTextOutput
	err := a.call(ctx, OpDetectText, func(ctx context.Context) (err error) {
		out, err = a.api.DetectText(ctx, &rekognition.DetectTextInput{
			Image: &types.Image{Bytes: image},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return mapTextDetections(out.TextDetections), nil
}

func (a *Adapter) CompareFaces(ctx context.Context, source, target []byte) (*models.FaceComparison, error) {
	var out *rekognition.CompareFacesOutput
	err := a.call(ctx, OpCompareFaces, func(ctx context.Context) (err error) {
		out, err = a.api.CompareFaces(ctx, &rekognition.CompareFacesInput{
			SourceImage: &types.Image{Bytes: source},
			TargetImage: &types.Image{Bytes: target},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &models.FaceComparison{Matches: mapFaceMatches(out.FaceMatches)}, nil
}

// AnalyzeImage runs the four single-image operations concurrently. The first
// failure cancels the calls that have not been issued yet.
func (a *Adapter) AnalyzeImage(ctx context.Context, image []byte) (*models.ImageAnalysis, error) {
	var analysis models.ImageAnalysis
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		analysis.Labels, err = a.DetectLabels(gctx, image)
		return err
	})
	g.Go(func() (err error) {
		analysis.Celebrities, err = a.DetectCelebrities(gctx, image)
		return err
	})
	g.Go(func() (err error) {
		analysis.Faces, err = a.DetectFaces(gctx, image)
		return err
	})
	g.Go(func() (err error) {
		analysis.Texts, err = a.DetectText(gctx, image)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("[VisionAdapter] Image analyzed",
		slog.Int("labels", len(analysis.Labels)),
		slog.Int("celebrities", len(analysis.Celebrities)),
		slog.Int("faces", len(analysis.Faces)),
		slog.Int("texts", len(analysis.Texts)))
	return &analysis, nil
}

func (a *Adapter) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	a.metrics.ObserveVisionCall(op, err, elapsed)

	if err != nil {
		attrs := []any{
			slog.String("operation", op),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs, slog.String("code", apiErr.ErrorCode()))
		}
		slog.Error("[VisionAdapter] Rekognition call failed", attrs...)
		return failures.Service("rekognition."+op, err)
	}

	slog.Debug("[VisionAdapter] Rekognition call succeeded",
		slog.String("operation", op),
		slog.Duration("elapsed", elapsed))
	return nil
}
