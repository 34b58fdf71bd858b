package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

const DefaultPollInterval = 10 * time.Second

type VideoDomainService struct {
	videoAIService repositories.VideoAIService
	model          string
	pollInterval   time.Duration
	// 0 means wait until the operation is done or ctx is canceled
	timeout time.Duration

	wait func(ctx context.Context, d time.Duration) error
}

func NewVideoDomainService(
	videoAIService repositories.VideoAIService,
	model string,
	pollInterval time.Duration,
	timeout time.Duration,
) *VideoDomainService {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &VideoDomainService{
		videoAIService: videoAIService,
		model:          model,
		pollInterval:   pollInterval,
		timeout:        timeout,
		wait:           sleepContext,
	}
}

// ProcessVideo turns the script into a prompt, submits the job and polls it
// once per interval until the provider reports completion.
func (s *VideoDomainService) ProcessVideo(
	ctx context.Context,
	image *valueobjects.ImageData,
	script *entities.AdScript,
) (*valueobjects.VideoLocation, error) {
	if image == nil {
		return nil, apperrors.Newf(apperrors.InvalidInput, "video.generate", "a product image is required")
	}
	if script == nil {
		return nil, apperrors.Newf(apperrors.InvalidInput, "video.generate", "a script is required")
	}

	frame, err := prepareFrame(image)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidInput, "video.generate", err)
	}

	request := entities.NewVideoRequest(frame, s.model, BuildVideoPrompt(script))

	slog.Info("Execute Video Generation", "model", request.Model(), "promptLength", len(request.Prompt()))

	operation, err := s.videoAIService.StartVideo(ctx, request)
	if err != nil {
		return nil, classify("video.start", apperrors.QuotaExceeded, err)
	}

	operation, err = s.waitForCompletion(ctx, operation)
	if err != nil {
		return nil, err
	}

	return s.interpret(operation)
}

func (s *VideoDomainService) waitForCompletion(
	ctx context.Context,
	operation *entities.VideoOperation,
) (*entities.VideoOperation, error) {
	var waited time.Duration
	polls := 0

	for !operation.Done() {
		if s.timeout > 0 && waited >= s.timeout {
			return nil, apperrors.Newf(apperrors.TimedOut, "video.poll",
				"operation %s not done after %v (%d polls)", operation.Name(), s.timeout, polls)
		}

		slog.Debug("Waiting for video generation to complete...", "operation", operation.Name(), "polls", polls)
		if err := s.wait(ctx, s.pollInterval); err != nil {
			return nil, apperrors.New(apperrors.Canceled, "video.poll", err)
		}
		waited += s.pollInterval
		polls++

		next, err := s.videoAIService.CheckVideo(ctx, operation)
		if err != nil {
			return nil, classify("video.poll", apperrors.QuotaExceeded, fmt.Errorf("poll %d: %w", polls, err))
		}
		operation = next
	}

	slog.Info("Video operation finished", "operation", operation.Name(), "polls", polls)
	return operation, nil
}

func (s *VideoDomainService) interpret(operation *entities.VideoOperation) (*valueobjects.VideoLocation, error) {
	if failure := operation.Failure(); failure != nil {
		cause := fmt.Errorf("operation %s failed: code=%d status=%s: %s",
			operation.Name(), failure.Code, failure.Status, failure.Message)
		if failure.Code == 429 || strings.EqualFold(failure.Status, "RESOURCE_EXHAUSTED") {
			return nil, apperrors.New(apperrors.QuotaExceeded, "video.result", cause)
		}
		return nil, apperrors.New(apperrors.GenerationFailed, "video.result", cause)
	}

	if operation.Location() == nil {
		return nil, apperrors.Newf(apperrors.MissingResult, "video.result",
			"operation %s completed without a video uri", operation.Name())
	}

	return operation.Location(), nil
}

// Veo only takes JPEG or PNG as the first frame.
func prepareFrame(image *valueobjects.ImageData) (*valueobjects.ImageData, error) {
	if image.IsVideoFrameCompatible() {
		return image, nil
	}
	return image.ToJPEG()
}

// BuildVideoPrompt condenses the script into a single prompt for the video model.
func BuildVideoPrompt(script *entities.AdScript) string {
	var sb strings.Builder

	sb.WriteString("Create a short, cinematic video advertisement for the product shown in the image. ")
	fmt.Fprintf(&sb, "The commercial is titled %q with the tagline %q. ", script.Title(), script.Tagline())
	sb.WriteString("Follow this storyboard:\n")

	for _, scene := range script.Scenes() {
		fmt.Fprintf(&sb, "Scene %d: %s. %s.", scene.SceneNumber(),
			strings.TrimRight(scene.Setting(), "."), strings.TrimRight(scene.Action(), "."))
		if scene.HasDialogue() {
			fmt.Fprintf(&sb, " Voiceover: %q.", scene.Dialogue())
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Keep the product clearly visible, with professional lighting and smooth camera movement.")

	return sb.String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
