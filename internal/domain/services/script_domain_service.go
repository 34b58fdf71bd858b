package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

type ScriptDomainService struct {
	scriptAIService repositories.ScriptAIService
}

func NewScriptDomainService(scriptAIService repositories.ScriptAIService) *ScriptDomainService {
	return &ScriptDomainService{
		scriptAIService: scriptAIService,
	}
}

// ProcessScript asks the model for an AdScript. Throttling surfaces as
// RateLimited, everything else as GenerationFailed. No retries.
func (s *ScriptDomainService) ProcessScript(
	ctx context.Context,
	request *entities.ScriptRequest,
) (*entities.AdScript, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, apperrors.New(apperrors.InvalidInput, "script.generate", err)
	}

	request.SetPrompt(buildScriptPrompt(request.Description()))

	slog.Info("ProcessScript", "model", request.Model(), "imageBytes", request.Image().Size(), "hasDescription", request.Description() != "")

	script, err := s.scriptAIService.GenerateScript(ctx, request)
	if err != nil {
		return nil, classify("script.generate", apperrors.RateLimited, err)
	}
	if script == nil {
		return nil, apperrors.Newf(apperrors.GenerationFailed, "script.generate", "no script generated")
	}

	return script, nil
}

func (s *ScriptDomainService) validateRequest(request *entities.ScriptRequest) error {
	if request == nil || request.Image() == nil {
		return fmt.Errorf("please select a product image first")
	}

	return nil
}

func buildScriptPrompt(description string) string {
	var sb strings.Builder

	sb.WriteString("You are a creative director at an award-winning advertising agency. ")
	sb.WriteString("Look at the product in the attached image and write a short, compelling video commercial script for it.\n")

	if description != "" {
		sb.WriteString("Additional product details from the client: ")
		sb.WriteString(description)
		sb.WriteString("\n")
	}

	sb.WriteString("Requirements:\n")
	sb.WriteString("1. Give the commercial a catchy title and a memorable tagline.\n")
	sb.WriteString("2. Write 3 to 5 scenes, numbered sequentially starting at 1.\n")
	sb.WriteString("3. For each scene describe the setting, the on-screen action, the dialogue or voiceover, and the sound or music.\n")
	sb.WriteString("4. If a scene has no spoken lines, set dialogue to the exact string \"")
	sb.WriteString(entities.DialogueNone)
	sb.WriteString("\".\n")
	sb.WriteString("5. Keep the product the hero of every scene.\n")
	sb.WriteString("Respond only with JSON matching the provided schema.")

	return sb.String()
}
