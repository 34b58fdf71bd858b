package services

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
)

// GenAI Client Pool実装
type genAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai.Client
	mutex  sync.RWMutex

	newClient func(ctx context.Context, cc *genai.ClientConfig) (*genai.Client, error)
}

// 新しいGenAIクライアントプールを作成
func NewGenAIClientPool(config *repositories.AIClientConfig) repositories.GenAIClientPool {
	return &genAIClientPool{
		config:    config,
		newClient: genai.NewClient,
	}
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// ダブルチェックロッキング
	if p.client != nil {
		return p.client, nil
	}

	client, err := p.newClient(ctx, clientConfig(p.config))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *genAIClientPool) Config() *repositories.AIClientConfig {
	return p.config
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		// GenAI Clientはリソースクリーンアップ不要
		p.client = nil
	}
	return nil
}

func clientConfig(config *repositories.AIClientConfig) *genai.ClientConfig {
	if config.UseVertex {
		return &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  config.ProjectID,
			Location: config.Location,
		}
	}
	return &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  config.APIKey,
	}
}
