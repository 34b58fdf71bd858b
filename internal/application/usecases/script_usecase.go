package usecases

import (
	"context"
	"log/slog"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/services"
)

type ScriptUseCase struct {
	scriptDomainService *services.ScriptDomainService
	model               string
}

func NewScriptUseCase(scriptDomainService *services.ScriptDomainService, model string) *ScriptUseCase {
	return &ScriptUseCase{
		scriptDomainService: scriptDomainService,
		model:               model,
	}
}

type ScriptInput struct {
	// 新しい画像が添付された場合のみ設定
	Image *ImageInput

	// nil means keep the description already on the session
	Description *string
}

// Execute generates an AdScript for the session's image. The outcome, success
// or failure, is stored on the session; the returned snapshot reflects it.
func (uc *ScriptUseCase) Execute(ctx context.Context, session *entities.Session, input ScriptInput) (entities.SessionSnapshot, error) {
	if input.Image != nil {
		image, err := toImageData(*input.Image)
		if err != nil {
			return session.Snapshot(), err
		}
		if err := session.SelectImage(image, input.Image.Description); err != nil {
			return session.Snapshot(), err
		}
	} else if input.Description != nil {
		session.SetDescription(*input.Description)
	}

	generation, image, description, err := session.BeginScript()
	if err != nil {
		return session.Snapshot(), err
	}

	slog.Info("Execute Script Generation", "session", session.ID(), "model", uc.model)

	request := entities.NewScriptRequest(image, description, uc.model)
	script, err := uc.scriptDomainService.ProcessScript(ctx, request)
	if err != nil {
		slog.Error("Script generation failed", "session", session.ID(), "error", err)
		if !session.FailScript(generation, err) {
			slog.Info("Discarding stale script failure", "session", session.ID())
		}
		return session.Snapshot(), err
	}

	if !session.CompleteScript(generation, script) {
		slog.Info("Discarding stale script result", "session", session.ID())
		return session.Snapshot(), nil
	}

	slog.Info("Successfully generated script", "session", session.ID(), "title", script.Title(), "scenes", script.SceneCount())
	return session.Snapshot(), nil
}
