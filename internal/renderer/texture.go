package renderer

import (
	"image"
	"sync"

	"go.uber.org/atomic"
)

type TextureState int32

const (
	TexturePending TextureState = iota
	TextureReady
	TextureFailed
)

func (s TextureState) String() string {
	switch s {
	case TexturePending:
		return "pending"
	case TextureReady:
		return "ready"
	case TextureFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Texture is a handle that is usable before its pixels exist. Loaders
// resolve it from any goroutine; the renderer uploads the pixels on the GL
// thread and samples the placeholder until then.
type Texture struct {
	Path string
	// OpenGL texture name, 0 until uploaded. Only touched on the GL thread.
	ID uint32

	state atomic.Int32

	mu      sync.Mutex
	pending image.Image
	err     error
}

func NewTexture(path string) *Texture {
	return &Texture{Path: path}
}

func (t *Texture) State() TextureState {
	return TextureState(t.state.Load())
}

// Resolve stores decoded pixels for the next upload.
func (t *Texture) Resolve(img image.Image) {
	t.mu.Lock()
	t.pending = img
	t.err = nil
	t.mu.Unlock()
	t.state.Store(int32(TextureReady))
}

func (t *Texture) Fail(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	t.state.Store(int32(TextureFailed))
}

func (t *Texture) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// takePending hands the decoded image over exactly once.
func (t *Texture) takePending() image.Image {
	t.mu.Lock()
	defer t.mu.Unlock()
	img := t.pending
	t.pending = nil
	return img
}

// Uploaded reports whether the texture can be sampled.
func (t *Texture) Uploaded() bool {
	return t != nil && t.ID != 0
}
