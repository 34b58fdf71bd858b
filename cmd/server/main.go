package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"

	appservices "github.com/GitNimay/ai-add-generator/internal/application/services"
	"github.com/GitNimay/ai-add-generator/internal/application/usecases"
	"github.com/GitNimay/ai-add-generator/internal/config"
	domainrepos "github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	domainservices "github.com/GitNimay/ai-add-generator/internal/domain/services"
	"github.com/GitNimay/ai-add-generator/internal/infrastructure/api"
	"github.com/GitNimay/ai-add-generator/internal/infrastructure/external"
	"github.com/GitNimay/ai-add-generator/internal/infrastructure/repositories"
	infraservices "github.com/GitNimay/ai-add-generator/internal/infrastructure/services"
	"github.com/GitNimay/ai-add-generator/internal/logging"
)

func main() {
	// 環境変数から設定を取得
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[boot] %v", err)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	slog.Info("[boot] Configuration loaded",
		"backend", cfg.Backend(),
		"scriptModel", cfg.ScriptModel,
		"videoModel", cfg.VideoModel,
		"pollInterval", cfg.VideoPollInterval,
		"videoTimeout", cfg.VideoTimeout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// インフラ層を初期化
	clientPool := infraservices.NewGenAIClientPool(&domainrepos.AIClientConfig{
		APIKey:    cfg.APIKey,
		UseVertex: cfg.UseVertexAI,
		ProjectID: cfg.ProjectID,
		Location:  cfg.Location,
	})
	defer clientPool.Close()

	genAIClient, err := clientPool.GetGenAIClient(ctx)
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}

	var tokenSource oauth2.TokenSource
	if cfg.UseVertexAI {
		tokenSource, err = external.NewVertexTokenSource(ctx)
		if err != nil {
			log.Fatalf("Failed to load Vertex AI credentials: %v", err)
		}
	}

	scriptAIService := external.NewGeminiAIService(genAIClient)
	videoAIService := external.NewVeoAIService(genAIClient, cfg.OutputGCSURI)
	defer videoAIService.Close()

	apiKey := cfg.APIKey
	if cfg.UseVertexAI {
		apiKey = ""
	}
	videoFetcher := external.NewHTTPVideoFetcher(&http.Client{Timeout: 5 * time.Minute}, apiKey, tokenSource)

	sessionRepository := repositories.NewMemorySessionRepository()

	// ドメイン層を初期化
	scriptDomainService := domainservices.NewScriptDomainService(scriptAIService)
	videoDomainService := domainservices.NewVideoDomainService(videoAIService, cfg.VideoModel, cfg.VideoPollInterval, cfg.VideoTimeout)

	// アプリケーション層を初期化
	sessionUseCase := usecases.NewSessionUseCase(sessionRepository)
	scriptUseCase := usecases.NewScriptUseCase(scriptDomainService, cfg.ScriptModel)
	videoUseCase := usecases.NewVideoUseCase(videoDomainService, videoFetcher)
	parameterService := appservices.NewParameterService()

	// API層を初期化
	handler := api.NewAdHandler(sessionUseCase, scriptUseCase, videoUseCase, parameterService, cfg.ScriptModel, cfg.VideoModel)
	stream := api.NewStatusStream(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(handler, stream, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitor, err := infraservices.NewSessionJanitor(sessionUseCase, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to create session janitor: %v", err)
	}
	janitor.Start()
	defer janitor.Stop()

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	// 実行中の動画生成を止める
	videoUseCase.Shutdown()
}
