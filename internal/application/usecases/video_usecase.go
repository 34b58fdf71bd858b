package usecases

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	"github.com/GitNimay/ai-add-generator/internal/domain/services"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

// VideoUseCase runs video generation in the background, one job per session.
// Jobs outlive the HTTP request that started them but not Shutdown.
type VideoUseCase struct {
	videoDomainService *services.VideoDomainService
	videoFetcher       repositories.VideoFetcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewVideoUseCase(
	videoDomainService *services.VideoDomainService,
	videoFetcher repositories.VideoFetcher,
) *VideoUseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &VideoUseCase{
		videoDomainService: videoDomainService,
		videoFetcher:       videoFetcher,
		ctx:                ctx,
		cancel:             cancel,
	}
}

// Start moves the session to VideoLoading and returns immediately.
func (uc *VideoUseCase) Start(session *entities.Session) (entities.SessionSnapshot, error) {
	ctx, cancel := context.WithCancel(uc.ctx)

	generation, image, script, err := session.BeginVideo(cancel)
	if err != nil {
		cancel()
		return session.Snapshot(), err
	}

	slog.Info("Execute Video Generation", "session", session.ID(), "title", script.Title())

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		defer cancel()

		location, err := uc.videoDomainService.ProcessVideo(ctx, image, script)
		if err != nil {
			if apperrors.IsKind(err, apperrors.Canceled) {
				slog.Info("Video generation canceled", "session", session.ID())
			} else {
				slog.Error("Video generation failed", "session", session.ID(), "error", err)
			}
			if !session.FailVideo(generation, err) {
				slog.Info("Discarding stale video failure", "session", session.ID())
			}
			return
		}

		if !session.CompleteVideo(generation, location) {
			slog.Info("Discarding stale video result", "session", session.ID())
			return
		}
		slog.Info("Successfully generated video", "session", session.ID())
	}()

	return session.Snapshot(), nil
}

// OpenVideo streams the session's finished video with the credential attached.
func (uc *VideoUseCase) OpenVideo(ctx context.Context, session *entities.Session) (io.ReadCloser, string, error) {
	snapshot := session.Snapshot()
	if snapshot.VideoState != entities.VideoReady || snapshot.Video == nil {
		return nil, "", apperrors.Newf(apperrors.Conflict, "video.open", "no video is ready yet")
	}
	return uc.videoFetcher.Fetch(ctx, snapshot.Video)
}

// Wait blocks until all background jobs have returned.
func (uc *VideoUseCase) Wait() {
	uc.wg.Wait()
}

// Shutdown cancels every running job and waits for them.
func (uc *VideoUseCase) Shutdown() {
	uc.cancel()
	uc.wg.Wait()
}
