package glade

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next composited frame. The PNG
// is written to ScreenshotDir, named by frame, in-world clock and label.
func (g *Garden) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// flushScreenshots captures the frame for every queued label. Called at the
// end of Garden.Draw, before any HUD is layered on.
func (g *Garden) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[glade] screenshot: mkdir %s: %v\n", g.ScreenshotDir, err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	clock := g.climate.Time.ClockText()
	for i, label := range g.screenshotQueue {
		path := filepath.Join(g.ScreenshotDir, screenshotName(g.frameCount, clock, label, i))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[glade] screenshot: %v\n", err)
		}
	}
}

// screenshotName builds "<frame>_<HHMM>_<label>[_n].png". Label runes outside
// [A-Za-z0-9.-] become underscores; an empty label becomes "unlabeled".
func screenshotName(frame uint64, clock, label string, n int) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "unlabeled"
	}
	label = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, label)
	name := fmt.Sprintf("%06d_%s_%s", frame, strings.ReplaceAll(clock, ":", ""), label)
	if n > 0 {
		name += fmt.Sprintf("_%d", n)
	}
	return name + ".png"
}

// unpremultiply converts ReadPixels output (premultiplied RGBA) to NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		c := color.NRGBAModel.Convert(color.RGBA{pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]}).(color.NRGBA)
		copy(img.Pix[i:i+4], []byte{c.R, c.G, c.B, c.A})
	}
	return img
}

var screenshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := screenshotEncoder.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
