package renderer

import (
	"image"
	"image/color"
	"testing"
)

// newTestTextureManager returns a manager that hands out sequential ids
// instead of talking to OpenGL.
func newTestTextureManager() (*TextureManager, *[]uint32) {
	tm := NewTextureManager()
	var next uint32
	deleted := &[]uint32{}
	tm.upload = func(*image.RGBA) uint32 {
		next++
		return next
	}
	tm.destroy = func(id uint32) {
		*deleted = append(*deleted, id)
	}
	return tm, deleted
}

func resolved(path string) *Texture {
	tex := NewTexture(path)
	tex.Resolve(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	return tex
}

func TestTextureManagerUpload(t *testing.T) {
	tm, _ := newTestTextureManager()
	tex := resolved("a.png")

	if !tm.Upload(tex) {
		t.Fatal("Expected upload to succeed")
	}
	if !tex.Uploaded() {
		t.Error("Texture should have an id after upload")
	}
	if tm.Upload(tex) {
		t.Error("A texture should only be uploaded once")
	}
}

func TestTextureManagerSkipsUnready(t *testing.T) {
	tm, _ := newTestTextureManager()

	pending := NewTexture("pending.png")
	failed := NewTexture("failed.png")
	failed.Fail(image.ErrFormat)

	if tm.Upload(pending) || tm.Upload(failed) || tm.Upload(nil) {
		t.Error("Only ready textures should be uploaded")
	}
	if stats := tm.GetStats(); stats.TotalTextures != 0 {
		t.Errorf("Expected no textures, got %d", stats.TotalTextures)
	}
}

func TestTextureManagerSharesPaths(t *testing.T) {
	tm, _ := newTestTextureManager()
	a := resolved("shared.png")
	b := resolved("shared.png")

	tm.Upload(a)
	tm.Upload(b)

	if a.ID != b.ID {
		t.Errorf("Expected shared id, got %d and %d", a.ID, b.ID)
	}
	stats := tm.GetStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %d and %d", stats.CacheHits, stats.CacheMisses)
	}
	if stats.ActiveTextures != 1 {
		t.Errorf("Expected 1 active texture, got %d", stats.ActiveTextures)
	}
}

func TestTextureManagerRelease(t *testing.T) {
	tm, deleted := newTestTextureManager()
	a := resolved("shared.png")
	b := resolved("shared.png")
	tm.Upload(a)
	tm.Upload(b)

	tm.ReleaseTexture(a.ID)
	if len(*deleted) != 0 {
		t.Error("Texture should stay alive while referenced")
	}

	tm.ReleaseTexture(b.ID)
	if len(*deleted) != 1 || (*deleted)[0] != a.ID {
		t.Errorf("Expected texture %d to be deleted, got %v", a.ID, *deleted)
	}
	if tm.GetStats().ActiveTextures != 0 {
		t.Error("Expected no active textures")
	}

	// unknown and zero ids are ignored
	tm.ReleaseTexture(0)
	tm.ReleaseTexture(99)
	if len(*deleted) != 1 {
		t.Error("Releasing unknown textures should not delete anything")
	}
}

func TestTextureManagerClear(t *testing.T) {
	tm, deleted := newTestTextureManager()
	tm.Upload(resolved("a.png"))
	tm.Upload(resolved("b.png"))

	tm.Clear()

	if len(*deleted) != 2 {
		t.Errorf("Expected 2 deletions, got %d", len(*deleted))
	}
	if tm.GetStats().ActiveTextures != 0 {
		t.Error("Expected no active textures after Clear")
	}
}

func TestCreateTextureFromImage(t *testing.T) {
	tm, _ := newTestTextureManager()
	id := tm.CreateTextureFromImage(image.NewGray(image.Rect(0, 0, 1, 1)), "placeholder")
	if id == 0 {
		t.Error("Expected a texture id")
	}
}

func TestToRGBAFlipped(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})

	out := toRGBAFlipped(img)

	if got := out.RGBAAt(0, 0); got.B != 255 || got.R != 0 {
		t.Errorf("Expected the bottom row first, got %v", got)
	}
	if got := out.RGBAAt(0, 1); got.R != 255 || got.B != 0 {
		t.Errorf("Expected the top row last, got %v", got)
	}
}

func TestToRGBAFlippedSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{G: 255, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	out := toRGBAFlipped(sub)

	if out.Rect != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Expected a 2x2 image at the origin, got %v", out.Rect)
	}
	if out.RGBAAt(0, 1).G != 255 {
		t.Error("Expected the sub image origin at the last row")
	}
}
