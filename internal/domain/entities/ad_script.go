package entities

import (
	"fmt"
	"strings"
)

// DialogueNone is what the model writes for a scene without spoken lines.
const DialogueNone = "None"

type Scene struct {
	sceneNumber int
	setting     string
	action      string
	dialogue    string
	sound       string
}

func NewScene(sceneNumber int, setting, action, dialogue, sound string) *Scene {
	return &Scene{
		sceneNumber: sceneNumber,
		setting:     setting,
		action:      action,
		dialogue:    dialogue,
		sound:       sound,
	}
}

func (s *Scene) SceneNumber() int {
	return s.sceneNumber
}

func (s *Scene) Setting() string {
	return s.setting
}

func (s *Scene) Action() string {
	return s.action
}

func (s *Scene) Dialogue() string {
	return s.dialogue
}

func (s *Scene) Sound() string {
	return s.sound
}

func (s *Scene) HasDialogue() bool {
	d := strings.TrimSpace(s.dialogue)
	return d != "" && !strings.EqualFold(d, DialogueNone)
}

// AdScript is the generated commercial. Scene order is the order returned by the model.
type AdScript struct {
	title   string
	tagline string
	scenes  []*Scene
}

func NewAdScript(title, tagline string, scenes []*Scene) (*AdScript, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("ad script title is required")
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("ad script must contain at least one scene")
	}
	for i, scene := range scenes {
		if scene == nil {
			return nil, fmt.Errorf("scene %d is nil", i)
		}
	}

	return &AdScript{
		title:   title,
		tagline: tagline,
		scenes:  scenes,
	}, nil
}

func (a *AdScript) Title() string {
	return a.title
}

func (a *AdScript) Tagline() string {
	return a.tagline
}

// Scenes returns a copy so callers cannot reorder the script.
func (a *AdScript) Scenes() []*Scene {
	scenes := make([]*Scene, len(a.scenes))
	copy(scenes, a.scenes)
	return scenes
}

func (a *AdScript) SceneCount() int {
	return len(a.scenes)
}
