package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileProvider resolves a secret from the trimmed contents of a single
// backing file. When watching is enabled, a change to that file is pushed
// onto Rotations rather than merely cached, so a ProviderInstance's key can
// be hot-swapped without a restart.
type FileProvider struct {
	Path string

	mu      sync.RWMutex
	value   string
	watcher *fsnotify.Watcher
	stopCh  chan struct{}

	// Rotations delivers the new secret value each time Path changes on
	// disk. It is nil unless Watch() has been called. Buffered by one so a
	// write that races a slow consumer is not dropped silently.
	Rotations chan string
}

// NewFileProvider reads path once and returns a FileProvider over it.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{Path: path}
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Get implements Provider. The name argument is ignored; a FileProvider is
// scoped to exactly one backing file.
func (p *FileProvider) Get(ctx context.Context, name string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value, nil
}

func (p *FileProvider) reload() error {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("failed to read secret file %s: %w", p.Path, err)
	}
	value := strings.TrimSpace(string(data))

	p.mu.Lock()
	p.value = value
	p.mu.Unlock()
	return nil
}

// Watch starts an fsnotify watcher on Path and begins pushing new values
// onto Rotations as the file changes. Close stops it.
func (p *FileProvider) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(p.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch secret file: %w", err)
	}

	p.watcher = watcher
	p.stopCh = make(chan struct{})
	p.Rotations = make(chan string, 1)

	go p.watchLoop()

	slog.Info("secrets file provider watching for rotation", "path", p.Path)
	return nil
}

func (p *FileProvider) watchLoop() {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := p.reload(); err != nil {
				slog.Error("failed to reload rotated secret", "path", p.Path, "error", err)
				continue
			}
			p.mu.RLock()
			newValue := p.value
			p.mu.RUnlock()

			select {
			case p.Rotations <- newValue:
			default:
				// drop the stale pending rotation in favor of the latest
				<-p.Rotations
				p.Rotations <- newValue
			}

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("secret file watcher error", "error", err)

		case <-p.stopCh:
			return
		}
	}
}

// Close stops the watcher, if one was started.
func (p *FileProvider) Close() error {
	if p.watcher == nil {
		return nil
	}
	close(p.stopCh)
	return p.watcher.Close()
}
