package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/GitNimay/ai-add-generator/internal/config"
	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	domainrepos "github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	domainservices "github.com/GitNimay/ai-add-generator/internal/domain/services"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	"github.com/GitNimay/ai-add-generator/internal/infrastructure/external"
	infraservices "github.com/GitNimay/ai-add-generator/internal/infrastructure/services"
	"github.com/GitNimay/ai-add-generator/internal/logging"
)

// adscript generates an ad script for every product image in a directory and
// writes one JSON file per image.
func main() {
	inputDir := flag.String("images", "images", "directory with product images")
	outputDir := flag.String("out", "scripts", "directory for generated scripts")
	description := flag.String("description", "", "description applied to every image")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	ctx := context.Background()
	clientPool := infraservices.NewGenAIClientPool(&domainrepos.AIClientConfig{
		APIKey:    cfg.APIKey,
		UseVertex: cfg.UseVertexAI,
		ProjectID: cfg.ProjectID,
		Location:  cfg.Location,
	})
	defer clientPool.Close()

	genAIClient, err := clientPool.GetGenAIClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	service := domainservices.NewScriptDomainService(external.NewGeminiAIService(genAIClient))

	files, err := os.ReadDir(*inputDir)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatal(err)
	}

	validExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	failed := 0
	for _, file := range files {
		if file.IsDir() || !slices.Contains(validExtensions, strings.ToLower(filepath.Ext(file.Name()))) {
			continue
		}

		name := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		if err := generate(ctx, service, cfg.ScriptModel, filepath.Join(*inputDir, file.Name()), *description, filepath.Join(*outputDir, name+".json")); err != nil {
			slog.Error("Failed to generate script", "file", file.Name(), "error", err)
			failed++
			continue
		}
		slog.Info("Script written", "file", file.Name())
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func generate(ctx context.Context, service *domainservices.ScriptDomainService, model, path, description, outPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	image, err := valueobjects.NewImageData(data, "")
	if err != nil {
		return err
	}

	script, err := service.ProcessScript(ctx, entities.NewScriptRequest(image, description, model))
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(toOutput(script), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode script: %w", err)
	}
	return os.WriteFile(outPath, encoded, 0644)
}

type sceneOutput struct {
	SceneNumber int    `json:"sceneNumber"`
	Setting     string `json:"setting"`
	Action      string `json:"action"`
	Dialogue    string `json:"dialogue"`
	Sound       string `json:"sound"`
}

type scriptOutput struct {
	Title   string        `json:"title"`
	Tagline string        `json:"tagline"`
	Scenes  []sceneOutput `json:"scenes"`
}

func toOutput(script *entities.AdScript) scriptOutput {
	output := scriptOutput{Title: script.Title(), Tagline: script.Tagline()}
	for _, scene := range script.Scenes() {
		output.Scenes = append(output.Scenes, sceneOutput{
			SceneNumber: scene.SceneNumber(),
			Setting:     scene.Setting(),
			Action:      scene.Action(),
			Dialogue:    scene.Dialogue(),
			Sound:       scene.Sound(),
		})
	}
	return output
}
