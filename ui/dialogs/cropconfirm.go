package dialogs

import (
	"fmt"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/disintegration/imaging"

	"github.com/gankudadiz/BubbleTrans/internal/viewport"
)

// previewMaxSize bounds the thumbnail shown in the confirm dialog.
const previewMaxSize = 360

// ShowCropConfirm previews an exported balloon crop and asks whether to
// run OCR/translation on it. onConfirm runs only on acceptance.
func ShowCropConfirm(crop viewport.Crop, window fyne.Window, onConfirm func()) {
	thumb := imaging.Fit(crop.Image, previewMaxSize, previewMaxSize, imaging.Lanczos)

	preview := fynecanvas.NewImageFromImage(thumb)
	preview.FillMode = fynecanvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(float32(thumb.Bounds().Dx()), float32(thumb.Bounds().Dy())))

	info := widget.NewLabel(fmt.Sprintf("Region: %d x %d px at (%d, %d)",
		crop.Region.Width, crop.Region.Height, crop.Region.X, crop.Region.Y))

	content := container.NewVBox(
		widget.NewLabel("Run OCR/translation on this selection?"),
		preview,
		info,
	)

	dialog.ShowCustomConfirm("Confirm Selection", "Translate", "Cancel", content,
		func(ok bool) {
			if ok {
				onConfirm()
			}
		}, window)
}
