package glade

import "testing"

func TestInjectQueueOneEventPerUpdate(t *testing.T) {
	g := newTestGarden(t)
	log := &eventLog{}
	g.SetEventSink(log)

	g.InjectMove(10, 20)
	g.InjectClick(30, 40)
	if len(g.injectQueue) != 3 {
		t.Fatalf("queue = %d, want 3", len(g.injectQueue))
	}

	g.Update(Frame{Now: 16})
	if g.pointerX != 10 || g.pointerY != 20 || len(log.events) != 0 {
		t.Errorf("frame 1 pointer = %v,%v events %v", g.pointerX, g.pointerY, log.events)
	}
	g.Update(Frame{Now: 32})
	if g.pointerX != 30 || len(log.events) != 0 {
		t.Errorf("frame 2 pointer X = %v events %v", g.pointerX, log.events)
	}
	g.Update(Frame{Now: 48})
	if len(log.events) != 1 || log.events[0].Type != EventCreatePlant {
		t.Errorf("frame 3 events = %+v", log.events)
	}
	if g.processInjected() {
		t.Error("processInjected on empty queue = true")
	}
}
