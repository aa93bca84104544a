package loader

import (
	"PBRShowcase/internal/logger"
	"context"
	"sync"

	"go.uber.org/zap"
)

// LoadingManager keeps track of pending loads. Callbacks run on the goroutine
// that finished the item, which is usually a decode worker.
type LoadingManager struct {
	OnStart    func(path string, loaded, total int)
	OnProgress func(path string, loaded, total int)
	OnLoad     func()
	OnError    func(path string, err error)

	mu      sync.Mutex
	loading bool
	loaded  int
	total   int
	done    chan struct{}
}

func NewLoadingManager() *LoadingManager {
	return &LoadingManager{
		OnError: func(path string, err error) {
			logger.Log.Error("loading error", zap.String("path", path), zap.Error(err))
		},
	}
}

func (m *LoadingManager) itemStart(path string) {
	m.mu.Lock()
	m.total++
	first := !m.loading
	if first {
		m.loading = true
		m.done = make(chan struct{})
	}
	loaded, total := m.loaded, m.total
	onStart := m.OnStart
	m.mu.Unlock()

	if first && onStart != nil {
		onStart(path, loaded, total)
	}
}

func (m *LoadingManager) itemEnd(path string) {
	m.mu.Lock()
	m.loaded++
	loaded, total := m.loaded, m.total
	finished := loaded == total
	var done chan struct{}
	if finished {
		m.loading = false
		done = m.done
	}
	onProgress, onLoad := m.OnProgress, m.OnLoad
	m.mu.Unlock()

	if onProgress != nil {
		onProgress(path, loaded, total)
	}
	if finished {
		if onLoad != nil {
			onLoad()
		}
		close(done)
	}
}

func (m *LoadingManager) itemError(path string, err error) {
	m.mu.Lock()
	onError := m.OnError
	m.mu.Unlock()

	if onError != nil {
		onError(path, err)
	}
}

// Progress returns how many of the items started so far have finished.
func (m *LoadingManager) Progress() (loaded, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded, m.total
}

// Wait blocks until every started item has finished or ctx is done.
func (m *LoadingManager) Wait(ctx context.Context) error {
	m.mu.Lock()
	if !m.loading {
		m.mu.Unlock()
		return nil
	}
	done := m.done
	m.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
