// garden runs a standalone weather garden. Plants come from a JSON updates
// file, a polled server endpoint, or a procedural seed bed when neither is
// given. Keys: left/right cycle the weather, S queues a screenshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/phanxgames/glade"
)

const (
	screenW      = 1280
	screenH      = 720
	pollInterval = 2 * time.Second
)

func main() {
	cfg := glade.DefaultConfig()
	cfg.WorldWidth = 2560
	fs := flag.NewFlagSet("garden", flag.ExitOnError)
	cfg.Bind(fs)
	weather := fs.String("weather", "sunny", "initial weather label")
	table := fs.String("weather-table", "", "JSON weather profile table")
	updates := fs.String("updates", "", "JSON updates payload file")
	server := fs.String("server", "", "updates endpoint to poll")
	script := fs.String("script", "", "JSON scenario script")
	sounds := fs.Bool("sounds", false, "log ambience and effects")
	_ = fs.Parse(os.Args[1:])

	g, err := glade.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	g.SetLoader(glade.MultiLoader{
		Files:  seedLoader{files: glade.FileLoader{Dir: "."}},
		Remote: glade.HTTPLoader{BaseURL: *server},
	})
	g.SetEventSink(intentLog{})
	if *sounds {
		g.SetSoundSink(glade.LogSound{})
	}

	if *table != "" {
		f, err := os.Open(*table)
		if err != nil {
			log.Fatal(err)
		}
		t, err := glade.LoadWeatherTable(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		g.SetWeatherTable(t)
	}
	g.SetWeather(*weather)

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatal(err)
		}
		sc, err := glade.LoadScenario(data)
		if err != nil {
			log.Fatal(err)
		}
		g.SetScenario(sc)
	}

	feed := make(chan glade.Update, 1)
	switch {
	case *updates != "":
		f, err := os.Open(*updates)
		if err != nil {
			log.Fatal(err)
		}
		u, err := glade.DecodeUpdate(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		g.ApplyUpdate(u)
	case *server != "":
		go poll(context.Background(), *server, feed)
	default:
		g.SetPlants(seedBed(cfg, float64(time.Now().UnixMilli())))
	}

	labels := g.WeatherTable().Labels()
	d := &demo{garden: g, feed: feed, labels: labels}

	if err := glade.Run(g, glade.RunConfig{
		Title:     "Glade",
		Width:     screenW,
		Height:    screenH,
		ShowFPS:   true,
		ShowHUD:   true,
		Resizable: true,
		OnUpdate:  d.update,
	}); err != nil {
		log.Fatal(err)
	}
}

type demo struct {
	garden *glade.Garden
	feed   <-chan glade.Update
	labels []string
	cursor int
}

func (d *demo) update(g *glade.Garden) error {
	select {
	case u := <-d.feed:
		g.ApplyUpdate(u)
	default:
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		d.cycle(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		d.cycle(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Screenshot(g.Climate().Profile().Label)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}

	cam := g.Camera()
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		cam.PanBy(-12)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		cam.PanBy(12)
	}
	return nil
}

func (d *demo) cycle(step int) {
	if len(d.labels) == 0 {
		return
	}
	d.cursor = (d.cursor + step + len(d.labels)) % len(d.labels)
	d.garden.SetWeather(d.labels[d.cursor])
}

// poll fetches the updates endpoint until ctx ends. Only the newest
// snapshot is kept when the game falls behind.
func poll(ctx context.Context, url string, out chan glade.Update) {
	client := &http.Client{Timeout: 10 * time.Second}
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		if u, err := fetch(ctx, client, url); err != nil {
			log.Printf("garden: poll: %v", err)
		} else {
			select {
			case <-out:
			default:
			}
			out <- u
		}
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}

func fetch(ctx context.Context, client *http.Client, url string) (glade.Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return glade.Update{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return glade.Update{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return glade.Update{}, fmt.Errorf("status %d", resp.StatusCode)
	}
	return glade.DecodeUpdate(resp.Body)
}

type intentLog struct{}

func (intentLog) EmitEvent(e glade.GardenEvent) {
	switch e.Type {
	case glade.EventCreatePlant:
		log.Printf("garden: create plant at (%.0f, %.0f)", e.X, e.Y)
	case glade.EventProtectPlant:
		log.Printf("garden: protect plant %s", e.PlantID)
	case glade.EventWeatherChanged:
		log.Printf("garden: weather %s", e.Label)
	}
}

// seedBed scatters a few procedural plants across the world at various
// ages and health.
func seedBed(cfg glade.Config, now float64) []glade.Plant {
	rng := rand.New(rand.NewPCG(cfg.Seed, 7))
	plants := make([]glade.Plant, 24)
	for i := range plants {
		hue := strconv.Itoa(rng.IntN(360))
		hp := 20 + rng.Float64()*80
		plants[i] = glade.Plant{
			ID:          strconv.Itoa(i + 1),
			X:           80 + rng.Float64()*(cfg.WorldWidth-160),
			Y:           screenH*0.55 + rng.Float64()*screenH*0.4,
			Author:      fmt.Sprintf("seed-%02d", i+1),
			StemImage:   "seed:stem:" + hue,
			LeafImage:   "seed:leaf:" + hue,
			FlowerImage: "seed:flower:" + hue,
			CreatedAt:   now - rng.Float64()*cfg.GrowthDuration*2,
			Stats:       &glade.PlantStats{HP: hp, MaxHP: 100},
		}
	}
	return plants
}

// seedLoader paints "seed:<layer>:<hue>" textures and defers everything
// else to files.
type seedLoader struct {
	files glade.Loader
}

func (l seedLoader) Load(ctx context.Context, id string) (image.Image, error) {
	rest, ok := strings.CutPrefix(id, "seed:")
	if !ok {
		return l.files.Load(ctx, id)
	}
	layer, hueStr, _ := strings.Cut(rest, ":")
	hue, _ := strconv.Atoi(hueStr)
	return paintLayer(layer, float64(hue)), nil
}

const texW, texH = 100, 200

func paintLayer(layer string, hue float64) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, texW, texH))
	put := func(x, y int, c color.NRGBA) {
		if x >= 0 && x < texW && y >= 0 && y < texH {
			img.SetNRGBA(x, y, c)
		}
	}
	switch layer {
	case "stem":
		c := color.NRGBA{60, 140, 60, 255}
		for y := 40; y < texH; y++ {
			cx := texW/2 + int(4*math.Sin(float64(y)*0.05))
			for x := cx - 2; x <= cx+2; x++ {
				put(x, y, c)
			}
		}
	case "leaf":
		c := color.NRGBA{80, 170, 70, 255}
		for i := 0; i < 2; i++ {
			y0 := 110 + i*40
			dir := 1 - 2*i
			for t := 0; t < 28; t++ {
				half := int(6 * math.Sin(float64(t)/28*math.Pi))
				x := texW/2 + dir*t
				for dy := -half; dy <= half; dy++ {
					put(x, y0-t/3+dy, c)
				}
			}
		}
	default:
		c := hueColor(hue)
		center := color.NRGBA{250, 220, 80, 255}
		for y := 10; y < 70; y++ {
			for x := 20; x < 80; x++ {
				dx, dy := float64(x-50), float64(y-40)
				r := math.Hypot(dx, dy)
				petal := 22 + 6*math.Cos(5*math.Atan2(dy, dx))
				switch {
				case r < 8:
					put(x, y, center)
				case r < petal:
					put(x, y, c)
				}
			}
		}
	}
	return img
}

func hueColor(h float64) color.NRGBA {
	r, g, b := colorful.Hsv(h, 0.7, 1).Clamped().RGB255()
	return color.NRGBA{r, g, b, 255}
}
