package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

type videoModels interface {
	GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

type videoOperations interface {
	GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

type VeoAIService struct {
	models     videoModels
	operations videoOperations
	// Vertex AI writes results to Cloud Storage; empty for the Gemini API
	outputGCSURI string
}

func NewVeoAIService(genAIClient *genai.Client, outputGCSURI string) repositories.VideoAIService {
	return &VeoAIService{
		models:       genAIClient.Models,
		operations:   genAIClient.Operations,
		outputGCSURI: outputGCSURI,
	}
}

func (s *VeoAIService) StartVideo(
	ctx context.Context,
	request *entities.VideoRequest,
) (*entities.VideoOperation, error) {
	image := &genai.Image{
		ImageBytes: request.Image().Data(),
		MIMEType:   request.Image().MimeType(),
	}

	config := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
	}
	if s.outputGCSURI != "" {
		config.OutputGCSURI = s.outputGCSURI
	}

	operation, err := s.models.GenerateVideos(ctx, request.Model(), request.Prompt(), image, config)
	if err != nil {
		return nil, classifyAPIError("veo.generate_videos", apperrors.QuotaExceeded, fmt.Errorf("failed to start video generation: %w", err))
	}

	slog.Info("Video operation started", "operation", operation.Name, "model", request.Model())

	return toVideoOperation(operation), nil
}

func (s *VeoAIService) CheckVideo(
	ctx context.Context,
	operation *entities.VideoOperation,
) (*entities.VideoOperation, error) {
	handle, ok := operation.Handle().(*genai.GenerateVideosOperation)
	if !ok || handle == nil {
		return nil, apperrors.Newf(apperrors.GenerationFailed, "veo.get_operation", "operation %s has no provider handle", operation.Name())
	}

	latest, err := s.operations.GetVideosOperation(ctx, handle, nil)
	if err != nil {
		return nil, classifyAPIError("veo.get_operation", apperrors.QuotaExceeded, fmt.Errorf("failed to poll operation: %w", err))
	}

	return toVideoOperation(latest), nil
}

func (s *VeoAIService) Close() error {
	s.models = nil
	s.operations = nil
	return nil
}

func toVideoOperation(op *genai.GenerateVideosOperation) *entities.VideoOperation {
	result := entities.NewVideoOperation(op.Name, op.Done, op)
	if !op.Done {
		return result
	}

	if len(op.Error) > 0 {
		result.SetFailure(parseOperationFailure(op.Error))
		return result
	}

	if op.Response == nil {
		return result
	}

	if len(op.Response.GeneratedVideos) > 0 {
		video := op.Response.GeneratedVideos[0]
		if video != nil && video.Video != nil && video.Video.URI != "" {
			location, err := valueobjects.NewVideoLocation(video.Video.URI)
			if err == nil {
				result.SetLocation(location)
				return result
			}
			slog.Warn("Ignoring unusable video uri", "operation", op.Name, "error", err)
		}
	}

	// 安全フィルタでブロックされた場合
	if op.Response.RAIMediaFilteredCount > 0 {
		reasons := "unknown"
		if len(op.Response.RAIMediaFilteredReasons) > 0 {
			reasons = strings.Join(op.Response.RAIMediaFilteredReasons, ", ")
		}
		result.SetFailure(&entities.OperationFailure{
			Status:  "FILTERED",
			Message: fmt.Sprintf("video blocked by safety filters: %s", reasons),
		})
	}

	return result
}

func parseOperationFailure(payload map[string]any) *entities.OperationFailure {
	failure := &entities.OperationFailure{}

	switch code := payload["code"].(type) {
	case float64:
		failure.Code = int(code)
	case int:
		failure.Code = code
	case int32:
		failure.Code = int(code)
	case int64:
		failure.Code = int(code)
	case json.Number:
		if n, err := code.Int64(); err == nil {
			failure.Code = int(n)
		}
	}

	if status, ok := payload["status"].(string); ok {
		failure.Status = status
	}
	if message, ok := payload["message"].(string); ok {
		failure.Message = message
	}
	if failure.Message == "" {
		raw, _ := json.Marshal(payload)
		failure.Message = string(raw)
	}

	return failure
}
