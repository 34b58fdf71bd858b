package entities

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
)

type SessionID string

type ScriptState string

const (
	ScriptIdle    ScriptState = "idle"
	ScriptLoading ScriptState = "loading"
	ScriptReady   ScriptState = "ready"
	ScriptError   ScriptState = "error"
)

// VideoState is only meaningful while the script is ready.
type VideoState string

const (
	VideoIdle    VideoState = "idle"
	VideoLoading VideoState = "loading"
	VideoReady   VideoState = "ready"
	VideoError   VideoState = "error"
)

// Session is one browser's UI state. Every transition bumps generation so
// results of calls started before a reset can be recognised and dropped.
type Session struct {
	mu sync.Mutex

	id          SessionID
	image       *valueobjects.ImageData
	description string

	scriptState ScriptState
	script      *AdScript
	scriptErr   error

	videoState     VideoState
	video          *valueobjects.VideoLocation
	videoErr       error
	videoStartedAt time.Time
	cancelVideo    context.CancelFunc

	generation uint64
	lastSeen   time.Time
	now        func() time.Time
}

func NewSession(id SessionID) *Session {
	return newSessionWithClock(id, time.Now)
}

func newSessionWithClock(id SessionID, now func() time.Time) *Session {
	return &Session{
		id:          id,
		scriptState: ScriptIdle,
		videoState:  VideoIdle,
		lastSeen:    now(),
		now:         now,
	}
}

// SessionSnapshot is a consistent copy of the session for rendering.
type SessionSnapshot struct {
	ID             SessionID
	Image          *valueobjects.ImageData
	Description    string
	ScriptState    ScriptState
	Script         *AdScript
	ScriptErr      error
	VideoState     VideoState
	Video          *valueobjects.VideoLocation
	VideoErr       error
	VideoStartedAt time.Time
	TakenAt        time.Time
}

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionSnapshot{
		ID:             s.id,
		Image:          s.image,
		Description:    s.description,
		ScriptState:    s.scriptState,
		Script:         s.script,
		ScriptErr:      s.scriptErr,
		VideoState:     s.videoState,
		Video:          s.video,
		VideoErr:       s.videoErr,
		VideoStartedAt: s.videoStartedAt,
		TakenAt:        s.now(),
	}
}

// SelectImage replaces the product image and drops any previous result.
func (s *Session) SelectImage(image *valueobjects.ImageData, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if image == nil {
		return apperrors.Newf(apperrors.InvalidInput, "session.select_image", "an image is required")
	}
	if s.scriptState == ScriptLoading {
		return apperrors.Newf(apperrors.Conflict, "session.select_image", "a script is already being generated")
	}

	s.image = image
	s.description = description
	s.clearResultsLocked()
	return nil
}

// SetDescription updates the free-text description without touching results.
func (s *Session) SetDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.description = description
}

// BeginScript moves to ScriptLoading and returns the inputs for the call.
func (s *Session) BeginScript() (uint64, *valueobjects.ImageData, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.image == nil {
		return 0, nil, "", apperrors.Newf(apperrors.InvalidInput, "session.begin_script", "please select a product image first")
	}
	if s.scriptState == ScriptLoading {
		return 0, nil, "", apperrors.Newf(apperrors.Conflict, "session.begin_script", "a script is already being generated")
	}

	s.clearResultsLocked()
	s.scriptState = ScriptLoading
	return s.generation, s.image, s.description, nil
}

// CompleteScript reports false when the result belongs to an older generation.
func (s *Session) CompleteScript(generation uint64, script *AdScript) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.scriptState != ScriptLoading {
		return false
	}
	s.scriptState = ScriptReady
	s.script = script
	s.scriptErr = nil
	return true
}

func (s *Session) FailScript(generation uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.scriptState != ScriptLoading {
		return false
	}
	s.scriptState = ScriptError
	s.script = nil
	s.scriptErr = err
	return true
}

// BeginVideo moves the video sub-state to VideoLoading. cancel is invoked if
// the session is reset while the video is still being generated.
func (s *Session) BeginVideo(cancel context.CancelFunc) (uint64, *valueobjects.ImageData, *AdScript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scriptState != ScriptReady || s.script == nil {
		return 0, nil, nil, apperrors.Newf(apperrors.Conflict, "session.begin_video", "generate a script before requesting a video")
	}
	if s.videoState == VideoLoading {
		return 0, nil, nil, apperrors.Newf(apperrors.Conflict, "session.begin_video", "a video is already being generated")
	}

	s.generation++
	s.videoState = VideoLoading
	s.video = nil
	s.videoErr = nil
	s.videoStartedAt = s.now()
	s.cancelVideo = cancel
	return s.generation, s.image, s.script, nil
}

func (s *Session) CompleteVideo(generation uint64, location *valueobjects.VideoLocation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.videoState != VideoLoading {
		return false
	}
	s.videoState = VideoReady
	s.video = location
	s.videoErr = nil
	s.cancelVideo = nil
	return true
}

func (s *Session) FailVideo(generation uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.videoState != VideoLoading {
		return false
	}
	s.videoState = VideoError
	s.video = nil
	s.videoErr = err
	s.cancelVideo = nil
	return true
}

// Reset clears script and video state. A hard reset also forgets the image.
func (s *Session) Reset(hard bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearResultsLocked()
	if hard {
		s.image = nil
		s.description = ""
	}
}

func (s *Session) clearResultsLocked() {
	if s.cancelVideo != nil {
		s.cancelVideo()
		s.cancelVideo = nil
	}
	s.generation++
	s.scriptState = ScriptIdle
	s.script = nil
	s.scriptErr = nil
	s.videoState = VideoIdle
	s.video = nil
	s.videoErr = nil
	s.videoStartedAt = time.Time{}
}
