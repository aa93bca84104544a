package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheLooksUpOnce(t *testing.T) {
	cache := NewUniformCache(7)
	calls := 0
	cache.lookup = func(program uint32, name string) int32 {
		calls++
		if program != 7 {
			t.Errorf("Expected program 7, got %d", program)
		}
		if name == "missing" {
			return -1
		}
		return 3
	}

	for i := 0; i < 3; i++ {
		if loc := cache.GetLocation("metalness"); loc != 3 {
			t.Errorf("Expected location 3, got %d", loc)
		}
	}
	if calls != 1 {
		t.Errorf("Expected a single lookup, got %d", calls)
	}

	cache.GetLocation("missing")
	cache.GetLocation("missing")
	if calls != 2 {
		t.Errorf("Missing uniforms should be cached too, got %d lookups", calls)
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["test"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}
