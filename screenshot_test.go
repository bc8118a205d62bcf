package glade

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestScreenshotName(t *testing.T) {
	tests := []struct {
		label string
		n     int
		want  string
	}{
		{"storm", 0, "000042_0630_storm.png"},
		{"  dust storm ", 0, "000042_0630_dust_storm.png"},
		{"a/b\\c", 0, "000042_0630_a_b_c.png"},
		{"v1.2-final", 0, "000042_0630_v1.2-final.png"},
		{"", 0, "000042_0630_unlabeled.png"},
		{"   ", 2, "000042_0630_unlabeled_2.png"},
		{"snø", 1, "000042_0630_sn__1.png"},
	}
	for _, tt := range tests {
		if got := screenshotName(42, "06:30", tt.label, tt.n); got != tt.want {
			t.Errorf("screenshotName(%q, %d) = %q, want %q", tt.label, tt.n, got, tt.want)
		}
	}
}

func TestScreenshotQueues(t *testing.T) {
	g, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g.Screenshot("one")
	g.Screenshot("two")
	if len(g.screenshotQueue) != 2 || g.screenshotQueue[1] != "two" {
		t.Errorf("queue = %v", g.screenshotQueue)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, solidImage(3, 2)); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}
