package valueobjects

import "time"

// StatusMessageInterval is how long each loading message stays on screen.
const StatusMessageInterval = 5 * time.Second

var videoStatusMessages = []string{
	"Warming up the digital director...",
	"Storyboarding your commercial...",
	"Setting up the virtual cameras...",
	"Lighting the product shot...",
	"Rendering the first frames...",
	"Adding cinematic polish...",
	"Syncing motion and mood...",
	"Almost there, finalizing your ad...",
}

// RotatingMessages cycles through a fixed ordered list while a video is loading.
type RotatingMessages struct {
	messages []string
	interval time.Duration
}

func NewRotatingMessages(messages []string, interval time.Duration) *RotatingMessages {
	if len(messages) == 0 {
		messages = videoStatusMessages
	}
	if interval <= 0 {
		interval = StatusMessageInterval
	}
	return &RotatingMessages{messages: messages, interval: interval}
}

func DefaultVideoStatusMessages() *RotatingMessages {
	return NewRotatingMessages(videoStatusMessages, StatusMessageInterval)
}

// At returns the message shown after the given time in the loading state.
func (m *RotatingMessages) At(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	idx := int(elapsed/m.interval) % len(m.messages)
	return m.messages[idx]
}

func (m *RotatingMessages) Interval() time.Duration {
	return m.interval
}

func (m *RotatingMessages) Len() int {
	return len(m.messages)
}
