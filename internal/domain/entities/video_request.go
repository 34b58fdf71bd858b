package entities

import "github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"

type VideoRequest struct {
	// 動画の初期フレームとなる商品画像
	image *valueobjects.ImageData

	model string

	// 動画生成のプロンプト
	prompt string
}

func NewVideoRequest(
	image *valueobjects.ImageData,
	model string,
	prompt string,
) *VideoRequest {
	return &VideoRequest{
		image:  image,
		model:  model,
		prompt: prompt,
	}
}

func (r *VideoRequest) Image() *valueobjects.ImageData {
	return r.image
}

func (r *VideoRequest) SetImage(image *valueobjects.ImageData) {
	r.image = image
}

func (r *VideoRequest) Prompt() string {
	return r.prompt
}

func (r *VideoRequest) Model() string {
	return r.model
}
