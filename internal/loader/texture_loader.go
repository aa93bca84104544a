package loader

import (
	"PBRShowcase/internal/logger"
	"PBRShowcase/internal/renderer"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrLoaderClosed = errors.New("texture loader closed")

type Options struct {
	// Decode goroutines. Defaults to 4.
	Workers int
	// Decoded images kept in memory. Defaults to 32.
	CacheSize int
	// Longest allowed side in pixels, 0 disables downscaling.
	MaxTextureSize int
}

// TextureLoader decodes image files in the background and hands them to
// texture handles that are usable right away.
type TextureLoader struct {
	fsys    fs.FS
	manager *LoadingManager
	pool    pond.Pool
	cache   *lru.Cache[string, image.Image]
	maxSize int
	closed  atomic.Bool

	mu       sync.Mutex
	inflight map[string][]*renderer.Texture
}

func NewTextureLoader(fsys fs.FS, manager *LoadingManager, opts Options) (*TextureLoader, error) {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 32
	}
	if manager == nil {
		manager = NewLoadingManager()
	}

	cache, err := lru.NewWithEvict[string, image.Image](opts.CacheSize, func(path string, _ image.Image) {
		logger.Log.Debug("Decoded image evicted", zap.String("path", path))
	})
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}

	return &TextureLoader{
		fsys:     fsys,
		manager:  manager,
		pool:     pond.NewPool(opts.Workers),
		cache:    cache,
		maxSize:  opts.MaxTextureSize,
		inflight: make(map[string][]*renderer.Texture),
	}, nil
}

func (l *TextureLoader) Manager() *LoadingManager {
	return l.manager
}

// Load returns a pending texture for path and starts decoding it. A leading
// slash is ignored, paths are relative to the loader's file system.
func (l *TextureLoader) Load(path string) *renderer.Texture {
	key := strings.TrimPrefix(path, "/")
	tex := renderer.NewTexture(key)
	l.manager.itemStart(key)

	if l.closed.Load() {
		l.finish(key, []*renderer.Texture{tex}, nil, ErrLoaderClosed)
		return tex
	}

	if img, ok := l.cache.Get(key); ok {
		logger.Log.Debug("Decoded image cache hit", zap.String("path", key))
		l.finish(key, []*renderer.Texture{tex}, img, nil)
		return tex
	}

	l.mu.Lock()
	waiters, pending := l.inflight[key]
	l.inflight[key] = append(waiters, tex)
	l.mu.Unlock()

	if !pending {
		l.pool.Submit(func() {
			l.decodeTask(key)
		})
	}
	return tex
}

func (l *TextureLoader) decodeTask(key string) {
	img, err := l.decode(key)
	if err == nil {
		l.cache.Add(key, img)
	}

	l.mu.Lock()
	waiters := l.inflight[key]
	delete(l.inflight, key)
	l.mu.Unlock()

	l.finish(key, waiters, img, err)
}

func (l *TextureLoader) finish(key string, textures []*renderer.Texture, img image.Image, err error) {
	for _, tex := range textures {
		if err != nil {
			tex.Fail(err)
			l.manager.itemError(key, err)
		} else {
			tex.Resolve(img)
		}
		l.manager.itemEnd(key)
	}
}

func (l *TextureLoader) decode(path string) (image.Image, error) {
	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	logger.Log.Debug("Texture decoded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))

	return downscale(img, l.maxSize), nil
}

// downscale shrinks img so its longest side is at most maxSize.
func downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Close waits for running decodes. Later loads fail with ErrLoaderClosed.
func (l *TextureLoader) Close() {
	if l.closed.Swap(true) {
		return
	}
	l.pool.StopAndWait()
}
