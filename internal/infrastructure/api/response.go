package api

import (
	"fmt"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

type errorResponse struct {
	Error     string            `json:"error"`
	Kind      string            `json:"kind"`
	Retryable bool              `json:"retryable"`
	Snapshot  *snapshotResponse `json:"snapshot,omitempty"`
}

func newErrorResponse(err error) errorResponse {
	return errorResponse{
		Error:     apperrors.UserMessage(err),
		Kind:      apperrors.KindOf(err).String(),
		Retryable: apperrors.IsRetryable(err),
	}
}

type sceneResponse struct {
	SceneNumber int    `json:"sceneNumber"`
	Setting     string `json:"setting"`
	Action      string `json:"action"`
	Dialogue    string `json:"dialogue"`
	Sound       string `json:"sound"`
}

type scriptResponse struct {
	Title   string          `json:"title"`
	Tagline string          `json:"tagline"`
	Scenes  []sceneResponse `json:"scenes"`
}

// snapshotResponse is the JSON view of a session.
type snapshotResponse struct {
	HasImage    bool   `json:"hasImage"`
	ImageType   string `json:"imageType,omitempty"`
	Description string `json:"description"`

	ScriptState string          `json:"scriptState"`
	Script      *scriptResponse `json:"script,omitempty"`
	ScriptError *errorResponse  `json:"scriptError,omitempty"`

	VideoState  string         `json:"videoState"`
	VideoStatus string         `json:"videoStatus,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	VideoError  *errorResponse `json:"videoError,omitempty"`
}

func newSnapshotResponse(snapshot entities.SessionSnapshot, messages *valueobjects.RotatingMessages) snapshotResponse {
	response := snapshotResponse{
		HasImage:    snapshot.Image != nil,
		Description: snapshot.Description,
		ScriptState: string(snapshot.ScriptState),
		VideoState:  string(snapshot.VideoState),
	}

	if snapshot.Image != nil {
		response.ImageType = snapshot.Image.MimeType()
	}

	if snapshot.Script != nil {
		script := &scriptResponse{
			Title:   snapshot.Script.Title(),
			Tagline: snapshot.Script.Tagline(),
		}
		// 返された順序のまま表示する
		for _, scene := range snapshot.Script.Scenes() {
			script.Scenes = append(script.Scenes, sceneResponse{
				SceneNumber: scene.SceneNumber(),
				Setting:     scene.Setting(),
				Action:      scene.Action(),
				Dialogue:    scene.Dialogue(),
				Sound:       scene.Sound(),
			})
		}
		response.Script = script
	}

	if snapshot.ScriptErr != nil {
		e := newErrorResponse(snapshot.ScriptErr)
		response.ScriptError = &e
	}
	if snapshot.VideoErr != nil {
		e := newErrorResponse(snapshot.VideoErr)
		response.VideoError = &e
	}

	switch snapshot.VideoState {
	case entities.VideoLoading:
		response.VideoStatus = messages.At(snapshot.TakenAt.Sub(snapshot.VideoStartedAt))
	case entities.VideoReady:
		response.VideoURL = fmt.Sprintf("/api/video/file?t=%d", snapshot.VideoStartedAt.Unix())
	}

	return response
}
