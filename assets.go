package glade

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ResourceState is the lifecycle of one cached resource.
type ResourceState uint8

const (
	ResourceMissing ResourceState = iota // never requested
	ResourcePending                      // load in flight
	ResourceReady                        // decoded and converted
	ResourceFailed                       // load failed; not retried
)

func (s ResourceState) String() string {
	switch s {
	case ResourcePending:
		return "pending"
	case ResourceReady:
		return "ready"
	case ResourceFailed:
		return "failed"
	default:
		return "missing"
	}
}

// Loader fetches and decodes one image. Load runs on its own goroutine and
// may block.
type Loader interface {
	Load(ctx context.Context, id string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, id string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, id string) (image.Image, error) {
	return f(ctx, id)
}

type resourceEntry[T any] struct {
	state ResourceState
	value T
	err   error
}

type loadResult struct {
	id  string
	img image.Image
	err error
}

// ResourceCache deduplicates asynchronous image loads keyed by identifier.
// Requests, TryGet and Poll must all be called from the game goroutine;
// only Loader.Load runs elsewhere.
type ResourceCache[T any] struct {
	loader  Loader
	convert func(image.Image) T
	entries map[string]*resourceEntry[T]
	results chan loadResult
	ctx     context.Context
	debug   bool
}

// NewResourceCache creates a cache that loads through loader and converts
// decoded images with convert on the game goroutine.
func NewResourceCache[T any](loader Loader, convert func(image.Image) T) *ResourceCache[T] {
	return &ResourceCache[T]{
		loader:  loader,
		convert: convert,
		entries: make(map[string]*resourceEntry[T]),
		results: make(chan loadResult, 64),
		ctx:     context.Background(),
	}
}

// SetDebug enables logging of failed loads.
func (c *ResourceCache[T]) SetDebug(on bool) { c.debug = on }

// Request starts loading id unless it is already known. Empty ids are ignored.
func (c *ResourceCache[T]) Request(id string) {
	if id == "" {
		return
	}
	if _, ok := c.entries[id]; ok {
		return
	}
	c.entries[id] = &resourceEntry[T]{state: ResourcePending}
	loader := c.loader
	go func() {
		img, err := loader.Load(c.ctx, id)
		if err == nil && img == nil {
			err = errors.New("loader returned no image")
		}
		c.results <- loadResult{id: id, img: img, err: err}
	}()
}

// TryGet returns the resource if it is ready. Unknown ids are requested.
func (c *ResourceCache[T]) TryGet(id string) (T, bool) {
	e, ok := c.entries[id]
	if !ok {
		c.Request(id)
		var zero T
		return zero, false
	}
	if e.state != ResourceReady {
		var zero T
		return zero, false
	}
	return e.value, true
}

// State reports the lifecycle state of id.
func (c *ResourceCache[T]) State(id string) ResourceState {
	if e, ok := c.entries[id]; ok {
		return e.state
	}
	return ResourceMissing
}

// Err returns the load error for a failed id.
func (c *ResourceCache[T]) Err(id string) error {
	if e, ok := c.entries[id]; ok {
		return e.err
	}
	return nil
}

// Len returns the number of known ids in any state.
func (c *ResourceCache[T]) Len() int { return len(c.entries) }

// Poll applies every finished load without blocking and returns how many
// were applied.
func (c *ResourceCache[T]) Poll() int {
	n := 0
	for {
		select {
		case r := <-c.results:
			c.apply(r)
			n++
		default:
			return n
		}
	}
}

func (c *ResourceCache[T]) apply(r loadResult) {
	e, ok := c.entries[r.id]
	if !ok {
		return
	}
	if r.err != nil {
		e.state = ResourceFailed
		e.err = r.err
		if c.debug {
			log.Printf("glade: load %s: %v", shortID(r.id), r.err)
		}
		return
	}
	e.value = c.convert(r.img)
	e.state = ResourceReady
}

// shortID trims inline data URLs for log output.
func shortID(id string) string {
	if len(id) > 48 {
		return id[:48] + "..."
	}
	return id
}

// DataURLLoader decodes "data:image/...;base64," identifiers in place.
type DataURLLoader struct{}

// Load decodes the base64 payload of a data URL.
func (DataURLLoader) Load(_ context.Context, id string) (image.Image, error) {
	header, payload, ok := strings.Cut(id, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return nil, fmt.Errorf("glade: not a data url")
	}
	var raw []byte
	if strings.HasSuffix(header, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("glade: data url payload: %w", err)
		}
		raw = b
	} else {
		raw = []byte(payload)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("glade: decode data url: %w", err)
	}
	return img, nil
}

// FileLoader reads images relative to Dir.
type FileLoader struct {
	Dir string
}

// Load opens and decodes Dir/id.
func (l FileLoader) Load(_ context.Context, id string) (image.Image, error) {
	path := filepath.Join(l.Dir, filepath.FromSlash(id))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glade: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("glade: decode %s: %w", path, err)
	}
	return img, nil
}

// HTTPLoader fetches images over HTTP. Relative ids are resolved against BaseURL.
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client
}

// Load performs a GET and decodes the body.
func (l HTTPLoader) Load(ctx context.Context, id string) (image.Image, error) {
	url := id
	if !strings.HasPrefix(id, "http://") && !strings.HasPrefix(id, "https://") {
		url = strings.TrimRight(l.BaseURL, "/") + "/" + strings.TrimLeft(id, "/")
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("glade: request %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("glade: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("glade: fetch %s: status %d", url, resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("glade: decode %s: %w", url, err)
	}
	return img, nil
}

// MultiLoader routes data URLs, http(s) URLs and plain paths to the
// matching loader. A nil Files or Remote rejects that scheme.
type MultiLoader struct {
	Files  Loader
	Remote Loader
}

// Load dispatches on the id scheme.
func (m MultiLoader) Load(ctx context.Context, id string) (image.Image, error) {
	switch {
	case strings.HasPrefix(id, "data:"):
		return DataURLLoader{}.Load(ctx, id)
	case strings.HasPrefix(id, "http://"), strings.HasPrefix(id, "https://"):
		if m.Remote == nil {
			return nil, fmt.Errorf("glade: no remote loader for %s", id)
		}
		return m.Remote.Load(ctx, id)
	default:
		if m.Files == nil {
			return nil, fmt.Errorf("glade: no file loader for %s", id)
		}
		return m.Files.Load(ctx, id)
	}
}
