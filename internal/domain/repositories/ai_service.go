package repositories

import (
	"context"
	"io"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
)

// Gemini（広告台本生成）サービス
type ScriptAIService interface {
	GenerateScript(ctx context.Context, request *entities.ScriptRequest) (*entities.AdScript, error)
}

// Veo（動画生成）サービス
type VideoAIService interface {
	// StartVideo submits the job and returns the operation handle.
	StartVideo(ctx context.Context, request *entities.VideoRequest) (*entities.VideoOperation, error)

	// CheckVideo fetches the current state of a previously started operation.
	CheckVideo(ctx context.Context, operation *entities.VideoOperation) (*entities.VideoOperation, error)

	Close() error
}

// 生成済み動画の取得
type VideoFetcher interface {
	// Fetch opens the video, attaching whatever credential the provider needs.
	Fetch(ctx context.Context, location *valueobjects.VideoLocation) (io.ReadCloser, string, error)
}
