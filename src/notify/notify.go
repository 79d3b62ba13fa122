// Package notify shows user-facing notices as small modal-style windows.
package notify

import (
	"github.com/kataras/golog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Dialog presents each notice in its own small window with a single OK
// button. Safe from any goroutine; window work marshals onto the UI turn.
type Dialog struct {
	app fyne.App
}

func NewDialog(app fyne.App) *Dialog {
	return &Dialog{app: app}
}

// Notify shows the message and returns immediately. Notices are
// informational; there is no structured retry.
func (d *Dialog) Notify(title, message string) {
	golog.Warnf("notice: %s", message)
	fyne.Do(func() {
		win := d.app.NewWindow(title)
		label := widget.NewLabel(message)
		label.Wrapping = fyne.TextWrapWord
		win.SetContent(container.NewVBox(
			label,
			container.NewCenter(widget.NewButton("OK", win.Close)),
		))
		win.Resize(fyne.NewSize(380, 120))
		win.CenterOnScreen()
		win.Show()
	})
}
