package glade

import (
	"strings"
	"testing"
)

func TestLoadScenarioErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"bad json", `{"steps": [`, "parse scenario"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "dance"}]}`, `unknown action "dance"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScenarioRun(t *testing.T) {
	sc, err := LoadScenario([]byte(`{"steps": [
		{"action": "weather", "label": "storm"},
		{"action": "click", "x": 500, "y": 300},
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "end"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGarden(t)
	log := &eventLog{}
	g.SetEventSink(log)
	g.SetScenario(sc)

	frame := func(i int) { g.Update(Frame{Now: float64(1000 + i*16), Delta: 0.016}) }

	frame(1)
	if got := g.Climate().Profile().Label; got != "storm" {
		t.Errorf("after frame 1 weather = %q, want storm", got)
	}
	// Click takes two frames to drain: a move, then the click itself.
	frame(2)
	frame(3)
	creates := log.ofType(EventCreatePlant)
	if len(creates) != 1 || creates[0].X != 500 || creates[0].Y != 300 {
		t.Errorf("create intents = %+v", creates)
	}
	for i := 4; i <= 6; i++ {
		frame(i)
		if sc.Done() {
			t.Fatalf("done during wait at frame %d", i)
		}
	}
	frame(7)
	if !sc.Done() {
		t.Error("scenario not done after screenshot step")
	}
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "end" {
		t.Errorf("screenshot queue = %v", g.screenshotQueue)
	}
}

func TestScenarioCameraAndEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldWidth = 3000
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario([]byte(`{"steps": [
		{"action": "camera", "x": 900},
		{"action": "env", "snow": 0.8, "puddle": 0.2},
		{"action": "pointer", "x": 10, "y": 20}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	g.SetScenario(sc)
	for i := range 5 {
		g.Update(Frame{Now: float64(i) * 16, Delta: 0.016})
	}
	if g.Camera().X != 900 {
		t.Errorf("camera X = %v, want 900", g.Camera().X)
	}
	if !sc.Done() {
		t.Error("scenario not done")
	}
	if g.pointerX != 10 || g.pointerY != 20 || !g.pointerOK {
		t.Errorf("pointer = %v,%v ok=%v", g.pointerX, g.pointerY, g.pointerOK)
	}
}
