package app

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gankudadiz/BubbleTrans/internal/page"
)

// FolderWatcher polls the open folder so pages dropped in while reading
// show up without reopening it. Download managers commonly write comic
// pages one file at a time.
type FolderWatcher struct {
	state    *State
	interval time.Duration
	log      *slog.Logger
	stopCh   chan struct{}
}

// NewFolderWatcher creates a watcher over the state's open folder.
func NewFolderWatcher(state *State, interval time.Duration, log *slog.Logger) *FolderWatcher {
	return &FolderWatcher{
		state:    state,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start begins polling in a background goroutine.
func (w *FolderWatcher) Start() {
	// Fresh stop channel in case the watcher is restarted.
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop ends the polling goroutine.
func (w *FolderWatcher) Stop() {
	close(w.stopCh)
}

func (w *FolderWatcher) watchLoop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			changed, err := w.state.ReloadFolder()
			if err != nil {
				w.log.Warn("folder rescan failed", "error", err)
				continue
			}
			if changed {
				w.log.Debug("folder contents changed", "folder", w.state.FolderPath())
			}
		}
	}
}

// ReloadFolder re-scans the open folder. When the page list changed it is
// re-emitted with EventFolderOpened and the current page's index is kept
// pointing at the same file. Returns whether anything changed.
func (s *State) ReloadFolder() (bool, error) {
	s.mu.RLock()
	path := s.folderPath
	s.mu.RUnlock()
	if path == "" {
		return false, nil
	}

	pages, err := page.ListImages(path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if slices.Equal(pages, s.pages) {
		s.mu.Unlock()
		return false, nil
	}
	s.pages = pages
	if s.current != nil {
		s.pageIndex = slices.Index(pages, s.current.Path)
	}
	s.mu.Unlock()

	s.Emit(EventFolderOpened, pages)
	return true, nil
}
