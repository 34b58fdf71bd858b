package entities

import (
	"strings"

	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
)

type ScriptRequest struct {
	image *valueobjects.ImageData

	// 任意の商品説明
	description string

	model string

	// モデルへの指示文（ドメインサービスが組み立てる）
	prompt string
}

func NewScriptRequest(image *valueobjects.ImageData, description string, model string) *ScriptRequest {
	return &ScriptRequest{
		image:       image,
		description: strings.TrimSpace(description),
		model:       model,
	}
}

func (r *ScriptRequest) Image() *valueobjects.ImageData {
	return r.image
}

func (r *ScriptRequest) Description() string {
	return r.description
}

func (r *ScriptRequest) Model() string {
	return r.model
}

func (r *ScriptRequest) Prompt() string {
	return r.prompt
}

func (r *ScriptRequest) SetPrompt(prompt string) {
	r.prompt = prompt
}
