// Package app provides application lifecycle management, shared state, and events.
package app

import (
	"fmt"
	"sync"

	"github.com/gankudadiz/BubbleTrans/internal/config"
	"github.com/gankudadiz/BubbleTrans/internal/page"
)

// State holds the shared application state: the open folder, the loaded
// page, and user settings. UI components observe it through events.
type State struct {
	mu sync.RWMutex

	cfg *config.Config

	folderPath string
	pages      []string
	pageIndex  int
	current    *page.Page

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventFolderOpened EventType = iota
	EventPageLoaded
	EventSelectionExported
	EventTranslationStarted
	EventTranslationStatus
	EventTranslationComplete
	EventTranslationError
	EventConfigChanged
)

// EventListener is called when an event occurs. Listeners run on the
// emitter's goroutine; UI listeners must hop to the main thread themselves.
type EventListener func(data interface{})

// NewState creates application state around loaded settings.
func NewState(cfg *config.Config) *State {
	return &State{
		cfg:       cfg,
		pageIndex: -1,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// OpenFolder scans a directory for comic pages and makes it current.
// The page list is emitted with EventFolderOpened; no page is loaded yet.
func (s *State) OpenFolder(path string) error {
	pages, err := page.ListImages(path)
	if err != nil {
		return fmt.Errorf("open folder: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no supported images in %s", path)
	}

	s.mu.Lock()
	s.folderPath = path
	s.pages = pages
	s.pageIndex = -1
	s.current = nil
	s.mu.Unlock()

	s.Emit(EventFolderOpened, pages)
	return nil
}

// LoadPage decodes the page at the given index in the current folder.
func (s *State) LoadPage(index int) error {
	s.mu.RLock()
	pages := s.pages
	s.mu.RUnlock()

	if index < 0 || index >= len(pages) {
		return fmt.Errorf("page index %d out of range", index)
	}

	p, err := page.Load(pages[index])
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pageIndex = index
	s.current = p
	s.mu.Unlock()

	s.Emit(EventPageLoaded, p)
	return nil
}

// NextPage loads the page after the current one, if any.
func (s *State) NextPage() error {
	s.mu.RLock()
	index, n := s.pageIndex, len(s.pages)
	s.mu.RUnlock()
	if index+1 >= n {
		return fmt.Errorf("already at the last page")
	}
	return s.LoadPage(index + 1)
}

// PrevPage loads the page before the current one, if any.
func (s *State) PrevPage() error {
	s.mu.RLock()
	index := s.pageIndex
	s.mu.RUnlock()
	if index <= 0 {
		return fmt.Errorf("already at the first page")
	}
	return s.LoadPage(index - 1)
}

// CurrentPage returns the loaded page, or nil.
func (s *State) CurrentPage() *page.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// PageIndex returns the index of the loaded page, or -1.
func (s *State) PageIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageIndex
}

// Pages returns the paths of the pages in the open folder.
func (s *State) Pages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.pages...)
}

// FolderPath returns the open folder, or "".
func (s *State) FolderPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folderPath
}

// Config returns a snapshot copy of the current settings.
func (s *State) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// UpdateConfig applies fn to the settings, persists them, and announces
// the change. Persistence failures are returned but the in-memory update
// still takes effect.
func (s *State) UpdateConfig(fn func(*config.Config)) error {
	s.mu.Lock()
	fn(s.cfg)
	s.cfg.Validate()
	snapshot := *s.cfg
	s.mu.Unlock()

	err := snapshot.Save()
	s.Emit(EventConfigChanged, snapshot)
	return err
}
