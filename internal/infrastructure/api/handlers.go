package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/GitNimay/ai-add-generator/internal/application/services"
	"github.com/GitNimay/ai-add-generator/internal/application/usecases"
	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

const sessionCookieName = "ad_session"

type AdHandler struct {
	sessionUseCase   *usecases.SessionUseCase
	scriptUseCase    *usecases.ScriptUseCase
	videoUseCase     *usecases.VideoUseCase
	parameterService *services.ParameterService
	statusMessages   *valueobjects.RotatingMessages

	// 画面表示用
	scriptModel string
	videoModel  string
}

func NewAdHandler(
	sessionUseCase *usecases.SessionUseCase,
	scriptUseCase *usecases.ScriptUseCase,
	videoUseCase *usecases.VideoUseCase,
	parameterService *services.ParameterService,
	scriptModel string,
	videoModel string,
) *AdHandler {
	return &AdHandler{
		sessionUseCase:   sessionUseCase,
		scriptUseCase:    scriptUseCase,
		videoUseCase:     videoUseCase,
		parameterService: parameterService,
		statusMessages:   valueobjects.DefaultVideoStatusMessages(),
		scriptModel:      scriptModel,
		videoModel:       videoModel,
	}
}

func (h *AdHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// HandleSelectImage stores the uploaded product image on the session.
func (h *AdHandler) HandleSelectImage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	image, description, err := h.parameterService.ParseUpload(w, r)
	if err != nil {
		h.sendError(w, err, nil)
		return
	}
	if image == nil {
		h.sendError(w, apperrors.Newf(apperrors.InvalidInput, "upload.parse", "please select a product image"), nil)
		return
	}
	if description == nil {
		image.Description = session.Snapshot().Description
	}

	snapshot, err := h.sessionUseCase.SelectImage(session, *image)
	if err != nil {
		h.sendError(w, err, &snapshot)
		return
	}

	h.sendSnapshot(w, http.StatusOK, snapshot)
}

// HandleGenerateScript runs script generation synchronously. An image may be
// sent along to select it in the same request.
func (h *AdHandler) HandleGenerateScript(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	image, description, err := h.parameterService.ParseUpload(w, r)
	if err != nil {
		h.sendError(w, err, nil)
		return
	}
	if image != nil && description == nil {
		image.Description = session.Snapshot().Description
	}

	snapshot, err := h.scriptUseCase.Execute(r.Context(), session, usecases.ScriptInput{
		Image:       image,
		Description: description,
	})
	if err != nil {
		slog.Error("Script generation failed", "session", session.ID(), "kind", apperrors.KindOf(err), "error", err)
		h.sendError(w, err, &snapshot)
		return
	}

	h.sendSnapshot(w, http.StatusOK, snapshot)
}

// HandleGenerateVideo starts video generation and returns right away; the
// client follows progress through /api/state or /ws/status.
func (h *AdHandler) HandleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	snapshot, err := h.videoUseCase.Start(session)
	if err != nil {
		h.sendError(w, err, &snapshot)
		return
	}

	h.sendSnapshot(w, http.StatusAccepted, snapshot)
}

func (h *AdHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.sendSnapshot(w, http.StatusOK, session.Snapshot())
}

// HandleVideoFile proxies the finished video. The provider credential is
// attached here so it never reaches the browser.
func (h *AdHandler) HandleVideoFile(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	body, contentType, err := h.videoUseCase.OpenVideo(r.Context(), session)
	if err != nil {
		slog.Error("Failed to open video", "session", session.ID(), "error", err)
		h.sendError(w, err, nil)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("Content-Disposition", `inline; filename="ad.mp4"`)
	if _, err := io.Copy(w, body); err != nil {
		slog.Warn("Video stream interrupted", "session", session.ID(), "error", err)
	}
}

// HandleReset clears the session; ?hard=true also forgets the image.
func (h *AdHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	snapshot := h.sessionUseCase.Reset(session, h.parameterService.IsHardReset(r))
	h.sendSnapshot(w, http.StatusOK, snapshot)
}

// session resolves the caller's session from the cookie, issuing a new one
// when needed.
func (h *AdHandler) session(w http.ResponseWriter, r *http.Request) (*entities.Session, bool) {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		id = cookie.Value
	}

	session, created, err := h.sessionUseCase.Resolve(r.Context(), id)
	if err != nil {
		slog.Error("Failed to resolve session", "error", err)
		h.sendError(w, err, nil)
		return nil, false
	}

	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    string(session.ID()),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   r.TLS != nil,
		})
	}
	return session, true
}

func (h *AdHandler) sendSnapshot(w http.ResponseWriter, statusCode int, snapshot entities.SessionSnapshot) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(newSnapshotResponse(snapshot, h.statusMessages)); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *AdHandler) sendError(w http.ResponseWriter, err error, snapshot *entities.SessionSnapshot) {
	response := newErrorResponse(err)
	if snapshot != nil {
		view := newSnapshotResponse(*snapshot, h.statusMessages)
		response.Snapshot = &view
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.HTTPStatus(err))
	json.NewEncoder(w).Encode(response)
}
