package repositories

import (
	"context"

	"google.golang.org/genai"
)

// AIクライアント共通設定
type AIClientConfig struct {
	APIKey    string
	UseVertex bool
	ProjectID string
	Location  string
}

// GenAI Client Pool
// Gemini/Veo機能で使用する標準GenAIクライアント
type GenAIClientPool interface {
	// 標準GenAI用クライアントを取得
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	// 設定情報を取得
	Config() *AIClientConfig

	// リソースのクリーンアップ
	Close() error
}
