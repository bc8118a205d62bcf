package glade

import (
	"encoding/json"
	"fmt"
)

// scenarioStep is one action in a scripted scenario.
type scenarioStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Snow     float64 `json:"snow,omitempty"`
	Puddle   float64 `json:"puddle,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

type scenarioScript struct {
	Steps []scenarioStep `json:"steps"`
}

// Scenario sequences weather changes, camera moves, injected pointer input
// and screenshots across frames. Attach with Garden.SetScenario.
type Scenario struct {
	steps     []scenarioStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScenario parses a JSON scenario script of the form
//
//	{"steps": [{"action": "weather", "label": "storm"}, {"action": "wait", "frames": 60}, ...]}
//
// Recognized actions: weather, env, camera, scroll, pointer, click, wait,
// screenshot.
func LoadScenario(jsonData []byte) (*Scenario, error) {
	var script scenarioScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("glade: parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("glade: parse scenario: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "weather", "env", "camera", "scroll", "pointer", "click", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("glade: parse scenario: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Scenario{steps: script.Steps}, nil
}

// SetScenario attaches a scenario. Its steps run at the start of each
// Update, before injected input is consumed. Nil detaches.
func (g *Garden) SetScenario(s *Scenario) {
	g.scenario = s
}

// Done reports whether every step has executed.
func (s *Scenario) Done() bool {
	return s.done
}

func (s *Scenario) step(g *Garden) {
	if s.done {
		return
	}
	// Let queued pointer events drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "weather":
		g.SetWeather(st.Label)
	case "env":
		g.SetEnvironment(st.Snow, st.Puddle)
	case "camera":
		g.camera.SetX(st.X)
	case "scroll":
		g.camera.ScrollTo(st.X, st.Duration, nil)
	case "pointer":
		g.InjectMove(st.X, st.Y)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		g.Screenshot(st.Label)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(g.injectQueue) == 0 {
		s.done = true
	}
}
