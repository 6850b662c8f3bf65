// Package panels provides the side panels flanking the page canvas.
package panels

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// FilesPanel lists the comic pages in the open folder.
type FilesPanel struct {
	widget.BaseWidget

	list  *widget.List
	paths []string

	onOpen func(index int)
}

// NewFilesPanel creates an empty files panel. onOpen is invoked when the
// user picks a page.
func NewFilesPanel(onOpen func(index int)) *FilesPanel {
	fp := &FilesPanel{onOpen: onOpen}

	fp.list = widget.NewList(
		func() int { return len(fp.paths) },
		func() fyne.CanvasObject { return widget.NewLabel("page") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(filepath.Base(fp.paths[id]))
		},
	)
	fp.list.OnSelected = func(id widget.ListItemID) {
		if fp.onOpen != nil {
			fp.onOpen(id)
		}
	}

	fp.ExtendBaseWidget(fp)
	return fp
}

// SetPages replaces the listed pages.
func (fp *FilesPanel) SetPages(paths []string) {
	fp.paths = paths
	fp.list.UnselectAll()
	fp.list.Refresh()
}

// Select highlights a page without triggering the open callback twice;
// the list widget suppresses re-selection of the same item.
func (fp *FilesPanel) Select(index int) {
	if index >= 0 && index < len(fp.paths) {
		fp.list.Select(index)
	}
}

// CreateRenderer implements fyne.Widget.
func (fp *FilesPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(fp.list)
}
