package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

// adScriptPayload is the fixed output schema sent to Gemini. Every field is required.
type adScriptPayload struct {
	Title   string         `json:"title" jsonschema_description:"A catchy title for the commercial"`
	Tagline string         `json:"tagline" jsonschema_description:"A short, memorable tagline for the product"`
	Scenes  []scenePayload `json:"scenes" jsonschema_description:"The scenes of the commercial in order"`
}

type scenePayload struct {
	SceneNumber int    `json:"sceneNumber" jsonschema_description:"Sequential scene number starting at 1"`
	Setting     string `json:"setting" jsonschema_description:"Where the scene takes place"`
	Action      string `json:"action" jsonschema_description:"What happens on screen"`
	Dialogue    string `json:"dialogue" jsonschema_description:"Spoken lines or voiceover, or None"`
	Sound       string `json:"sound" jsonschema_description:"Music and sound effects"`
}

// GenerateSchema reflects a JSON schema usable as ResponseJsonSchema.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	var v T
	schema := reflector.Reflect(v)
	schema.Version = ""
	return schema
}

var adScriptResponseSchema = GenerateSchema[adScriptPayload]()

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiAIService struct {
	models contentGenerator
}

func NewGeminiAIService(genAIClient *genai.Client) repositories.ScriptAIService {
	return &GeminiAIService{
		models: genAIClient.Models,
	}
}

func (s *GeminiAIService) GenerateScript(ctx context.Context, request *entities.ScriptRequest) (*entities.AdScript, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(request.Image().Data(), request.Image().MimeType()),
		genai.NewPartFromText(request.Prompt()),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: adScriptResponseSchema,
	}

	resp, err := s.models.GenerateContent(ctx, request.Model(), contents, config)
	if err != nil {
		return nil, classifyAPIError("gemini.generate_content", apperrors.RateLimited, fmt.Errorf("failed to generate content: %w", err))
	}

	respText := resp.Text()
	slog.Debug("Gemini API response", "candidatesCount", len(resp.Candidates), "textLength", len(respText))

	script, err := parseAdScript(respText)
	if err != nil {
		return nil, apperrors.New(apperrors.GenerationFailed, "gemini.parse_script", err)
	}

	return script, nil
}

func parseAdScript(text string) (*entities.AdScript, error) {
	text = stripCodeFence(text)
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var payload adScriptPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse script JSON: %w", err)
	}

	scenes := make([]*entities.Scene, 0, len(payload.Scenes))
	for _, scene := range payload.Scenes {
		scenes = append(scenes, entities.NewScene(
			scene.SceneNumber,
			scene.Setting,
			scene.Action,
			scene.Dialogue,
			scene.Sound,
		))
	}

	return entities.NewAdScript(strings.TrimSpace(payload.Title), strings.TrimSpace(payload.Tagline), scenes)
}

// JSON mode normally returns bare JSON, but some models still wrap it in a fence.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
