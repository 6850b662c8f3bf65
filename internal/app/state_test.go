package app

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gankudadiz/BubbleTrans/internal/config"
)

func writeTestPage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func newTestState(t *testing.T) *State {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return NewState(cfg)
}

func TestOpenFolderEmitsPages(t *testing.T) {
	dir := t.TempDir()
	writeTestPage(t, dir, "page2.png")
	writeTestPage(t, dir, "page1.png")

	s := newTestState(t)

	var got []string
	s.On(EventFolderOpened, func(data interface{}) {
		got = data.([]string)
	})

	if err := s.OpenFolder(dir); err != nil {
		t.Fatalf("OpenFolder: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("event carried %d pages, want 2", len(got))
	}
	if filepath.Base(got[0]) != "page1.png" {
		t.Errorf("pages not sorted: %v", got)
	}
	if s.PageIndex() != -1 {
		t.Errorf("PageIndex = %d after open, want -1", s.PageIndex())
	}
}

func TestOpenFolderEmpty(t *testing.T) {
	s := newTestState(t)
	if err := s.OpenFolder(t.TempDir()); err == nil {
		t.Error("expected error for folder without images")
	}
}

func TestLoadPageAndNavigation(t *testing.T) {
	dir := t.TempDir()
	writeTestPage(t, dir, "a.png")
	writeTestPage(t, dir, "b.png")

	s := newTestState(t)
	if err := s.OpenFolder(dir); err != nil {
		t.Fatalf("OpenFolder: %v", err)
	}

	loads := 0
	s.On(EventPageLoaded, func(interface{}) { loads++ })

	if err := s.LoadPage(0); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}
	if s.CurrentPage() == nil || filepath.Base(s.CurrentPage().Path) != "a.png" {
		t.Fatalf("wrong current page: %+v", s.CurrentPage())
	}

	if err := s.NextPage(); err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if s.PageIndex() != 1 {
		t.Errorf("PageIndex = %d, want 1", s.PageIndex())
	}
	if err := s.NextPage(); err == nil {
		t.Error("NextPage past the end should fail")
	}

	if err := s.PrevPage(); err != nil {
		t.Fatalf("PrevPage: %v", err)
	}
	if err := s.PrevPage(); err == nil {
		t.Error("PrevPage before the start should fail")
	}

	if loads != 3 {
		t.Errorf("EventPageLoaded fired %d times, want 3", loads)
	}

	if err := s.LoadPage(99); err == nil {
		t.Error("LoadPage out of range should fail")
	}
}

func TestReloadFolderDetectsNewPages(t *testing.T) {
	dir := t.TempDir()
	writeTestPage(t, dir, "a.png")

	s := newTestState(t)
	if err := s.OpenFolder(dir); err != nil {
		t.Fatalf("OpenFolder: %v", err)
	}
	if err := s.LoadPage(0); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	changed, err := s.ReloadFolder()
	if err != nil || changed {
		t.Fatalf("ReloadFolder on unchanged folder = (%v, %v)", changed, err)
	}

	// New file sorts before the current page; the index must follow it.
	writeTestPage(t, dir, "0cover.png")
	changed, err = s.ReloadFolder()
	if err != nil {
		t.Fatalf("ReloadFolder: %v", err)
	}
	if !changed {
		t.Fatal("ReloadFolder did not notice the new page")
	}
	if s.PageIndex() != 1 {
		t.Errorf("PageIndex = %d after rescan, want 1", s.PageIndex())
	}
}

func TestUpdateConfigEmitsAndValidates(t *testing.T) {
	s := newTestState(t)

	var got config.Config
	s.On(EventConfigChanged, func(data interface{}) {
		got = data.(config.Config)
	})

	err := s.UpdateConfig(func(c *config.Config) {
		c.APIKey = "sk-test"
		c.BaseURL = "https://example.com/v1/"
	})
	if err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}
	if got.APIKey != "sk-test" {
		t.Errorf("event config APIKey = %q", got.APIKey)
	}
	if got.BaseURL != "https://example.com/v1" {
		t.Errorf("BaseURL not normalized: %q", got.BaseURL)
	}
}
