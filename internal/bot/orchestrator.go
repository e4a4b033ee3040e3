package bot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/spacesedan/rekognition-bot/internal/failures"
	"github.com/spacesedan/rekognition-bot/internal/metrics"
	"github.com/spacesedan/rekognition-bot/internal/models"
	"github.com/spacesedan/rekognition-bot/internal/normalize"
	"github.com/spacesedan/rekognition-bot/internal/presentation"
	"github.com/spacesedan/rekognition-bot/internal/staging"
)

type Stager interface {
	Stage(ctx context.Context, att models.Attachment) (models.StagedImage, error)
	Remove(img models.StagedImage)
}

type Loader interface {
	Load(path string) ([]byte, error)
}

type Analyzer interface {
	AnalyzeImage(ctx context.Context, image []byte) (*models.ImageAnalysis, error)
	CompareFaces(ctx context.Context, source, target []byte) (*models.FaceComparison, error)
}

// Responder is the delivery surface of one invocation.
type Responder interface {
	SendFiles(ctx context.Context, images []models.StagedImage) error
	SendCard(ctx context.Context, card *discordgo.MessageEmbed) error
}

// Outcome is the terminal result of an invocation.
type Outcome struct {
	ID    string
	Mode  models.Mode
	State State
	Err   error
}

// Orchestrator drives a /photos invocation from attachments to delivered
// cards. It holds no per-invocation state and is safe for concurrent use.
type Orchestrator struct {
	stager   Stager
	loader   Loader
	analyzer Analyzer
	metrics  *metrics.Metrics
}

func NewOrchestrator(stager Stager, loader Loader, analyzer Analyzer, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		stager:   stager,
		loader:   loader,
		analyzer: analyzer,
		metrics:  m,
	}
}

// invocation is the per-request state carried through Run.
type invocation struct {
	id     string
	state  State
	mode   models.Mode
	logger *slog.Logger
}

func (inv *invocation) transition(to State) {
	inv.logger.Debug("[Orchestrator] State transition",
		slog.String("from", inv.state.String()),
		slog.String("to", to.String()))
	inv.state = to
}

// Run processes one invocation. Failures are reported through the responder
// as an error card; only the returned Outcome carries them back to the caller.
func (o *Orchestrator) Run(ctx context.Context, attachments []models.Attachment, responder Responder) Outcome {
	start := time.Now()
	inv := &invocation{id: uuid.NewString(), state: StateReceived}
	inv.logger = slog.With(slog.String("invocation_id", inv.id))
	inv.logger.Info("[Orchestrator] Invocation received",
		slog.Int("attachments", len(attachments)))

	err := o.run(ctx, inv, attachments, responder)
	if err != nil {
		inv.transition(StateFailed)
		o.reportFailure(ctx, inv, err, responder)
	}

	outcome := metrics.OutcomeDelivered
	if inv.state == StateFailed {
		outcome = metrics.OutcomeFailed
	}
	o.metrics.ObserveInvocation(string(inv.mode), outcome, time.Since(start))

	inv.logger.Info("[Orchestrator] Invocation finished",
		slog.String("mode", string(inv.mode)),
		slog.String("state", inv.state.String()),
		slog.Duration("elapsed", time.Since(start)))

	return Outcome{ID: inv.id, Mode: inv.mode, State: inv.state, Err: err}
}

func (o *Orchestrator) run(ctx context.Context, inv *invocation, attachments []models.Attachment, responder Responder) error {
	switch {
	case len(attachments) == 0:
		return failures.Validation("orchestrator.validate", models.ErrNoImages)
	case len(attachments) > 2:
		return failures.Validation("orchestrator.validate", models.ErrTooManyImages)
	}

	images, err := o.stage(ctx, inv, attachments)
	defer func() {
		for _, img := range images {
			o.stager.Remove(img)
		}
	}()
	if err != nil {
		return err
	}

	payloads := make([][]byte, 0, len(images))
	for _, img := range images {
		payloads = append(payloads, img.Data)
	}
	req, err := models.NewAnalysisRequest(payloads...)
	if err != nil {
		return failures.Validation("orchestrator.request", err)
	}
	inv.mode = req.Mode()
	inv.transition(StateStaged)

	fields, err := o.analyze(ctx, req)
	if err != nil {
		return err
	}
	inv.transition(StateAnalyzed)

	card := presentation.BuildCard(fields)
	inv.transition(StateRendered)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := responder.SendFiles(ctx, images); err != nil {
		return err
	}
	if err := responder.SendCard(ctx, card); err != nil {
		return err
	}
	inv.transition(StateDelivered)
	return nil
}

// stage downloads and reads every attachment. Images staged before a
// failure are still returned so the caller can remove them.
func (o *Orchestrator) stage(ctx context.Context, inv *invocation, attachments []models.Attachment) ([]models.StagedImage, error) {
	images := make([]models.StagedImage, 0, len(attachments))
	for _, att := range attachments {
		if err := ctx.Err(); err != nil {
			return images, err
		}

		img, err := o.stager.Stage(ctx, att)
		if err != nil {
			return images, err
		}
		images = append(images, img)

		data, err := o.loader.Load(img.Path)
		if err != nil {
			return images, err
		}
		if err := staging.CheckFormat(img.Name, data); err != nil {
			return images, err
		}
		images[len(images)-1].Data = data

		inv.logger.Debug("[Orchestrator] Attachment staged",
			slog.String("file", img.Name),
			slog.Int("bytes", len(data)))
	}
	return images, nil
}

// analyze runs exactly one path: the single-image analysis or the comparison.
func (o *Orchestrator) analyze(ctx context.Context, req models.AnalysisRequest) (models.FieldSet, error) {
	if err := ctx.Err(); err != nil {
		return models.FieldSet{}, err
	}

	switch r := req.(type) {
	case models.SingleRequest:
		analysis, err := o.analyzer.AnalyzeImage(ctx, r.Image)
		if err != nil {
			return models.FieldSet{}, err
		}
		return normalize.Single(analysis), nil
	case models.CompareRequest:
		comparison, err := o.analyzer.CompareFaces(ctx, r.Source, r.Target)
		if err != nil {
			return models.FieldSet{}, err
		}
		return normalize.Compare(comparison), nil
	default:
		return models.FieldSet{}, failures.Validation("orchestrator.analyze", errors.New("unsupported analysis request"))
	}
}

// reportFailure sends the error card unless the caller has gone away.
func (o *Orchestrator) reportFailure(ctx context.Context, inv *invocation, err error, responder Responder) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		inv.logger.Warn("[Orchestrator] Invocation abandoned",
			slog.String("error", err.Error()))
		return
	}

	inv.logger.Error("[Orchestrator] Invocation failed",
		slog.String("kind", failures.Label(err)),
		slog.String("error", err.Error()))

	if sendErr := responder.SendCard(ctx, presentation.BuildErrorCard(err)); sendErr != nil {
		inv.logger.Error("[Orchestrator] Failed to deliver error card",
			slog.String("error", sendErr.Error()))
	}
}
