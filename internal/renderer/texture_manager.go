package renderer

import (
	"PBRShowcase/internal/logger"
	"image"
	"image/draw"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager uploads decoded textures and shares GPU textures between
// handles with the same path. Upload and Release must run on the GL thread.
type TextureManager struct {
	textureCache    map[string]uint32 // path -> OpenGL texture ID
	textureRefCount map[uint32]int    // texture ID -> reference count
	texturePaths    map[uint32]string // texture ID -> path (for debugging)
	mu              sync.RWMutex
	stats           TextureStats

	upload  func(rgba *image.RGBA) uint32
	destroy func(id uint32)
}

// NewTextureManager creates a new texture manager instance
func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
		upload:          uploadRGBA,
		destroy: func(id uint32) {
			gl.DeleteTextures(1, &id)
		},
	}
}

// Upload moves a resolved texture's pixels to the GPU. It is a no-op for
// textures that are pending, failed or already uploaded, so it is safe to
// call every frame. It reports whether the texture became usable.
func (tm *TextureManager) Upload(t *Texture) bool {
	if t == nil || t.ID != 0 || t.State() != TextureReady {
		return false
	}

	img := t.takePending()
	if img == nil {
		return false
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, exists := tm.textureCache[t.Path]; exists {
		tm.textureRefCount[textureID]++
		tm.stats.CacheHits++
		t.ID = textureID

		logger.Log.Debug("Texture cache hit",
			zap.String("path", t.Path),
			zap.Uint32("textureID", textureID),
			zap.Int("refCount", tm.textureRefCount[textureID]))
		return true
	}

	tm.stats.CacheMisses++
	rgba := toRGBAFlipped(img)
	textureID := tm.upload(rgba)

	tm.textureCache[t.Path] = textureID
	tm.textureRefCount[textureID] = 1
	tm.texturePaths[textureID] = t.Path
	tm.stats.TotalTextures++
	t.ID = textureID

	logger.Log.Info("Texture uploaded",
		zap.String("path", t.Path),
		zap.Uint32("textureID", textureID),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()))
	return true
}

// CreateTextureFromImage uploads an in-memory image under a name, e.g. the
// placeholder.
func (tm *TextureManager) CreateTextureFromImage(img image.Image, name string) uint32 {
	t := NewTexture(name)
	t.Resolve(img)
	tm.Upload(t)
	return t.ID
}

// ReleaseTexture decrements reference count and frees texture if count reaches 0
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tm.textureRefCount[textureID] = refCount

	if refCount <= 0 {
		tm.destroy(textureID)

		path := tm.texturePaths[textureID]
		delete(tm.textureCache, path)
		delete(tm.textureRefCount, textureID)
		delete(tm.texturePaths, textureID)

		logger.Log.Debug("Texture freed",
			zap.Uint32("textureID", textureID),
			zap.String("path", path))
	}
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	hitRate := 0.0
	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		hitRate = float64(stats.CacheHits) / float64(lookups)
	}
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Float64("hitRate", hitRate))
}

// Clear releases all textures
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.textureRefCount {
		tm.destroy(textureID)
	}

	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.texturePaths = make(map[uint32]string)
}

// toRGBAFlipped converts img to RGBA with the first row at the bottom, which
// is where OpenGL expects it.
func toRGBAFlipped(img image.Image) *image.RGBA {
	b := img.Bounds()
	src, ok := img.(*image.RGBA)
	if !ok || src.Rect.Min != (image.Point{}) {
		src = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	}

	h := src.Rect.Dy()
	rowLen := src.Rect.Dx() * 4
	out := image.NewRGBA(src.Rect)
	for y := 0; y < h; y++ {
		copy(out.Pix[(h-1-y)*out.Stride:(h-1-y)*out.Stride+rowLen], src.Pix[y*src.Stride:y*src.Stride+rowLen])
	}
	return out
}

func uploadRGBA(rgba *image.RGBA) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return textureID
}
