// Package tray hosts the application in the system tray: one action to
// begin a region selection, plus quit.
package tray

import (
	"github.com/getlantern/systray"
	"github.com/kataras/golog"
)

// DefaultTooltip is the tray tooltip when no session is running.
const DefaultTooltip = "RegionMirror: mirror a screen region pixel-exactly"

// Actions carries the callbacks wired to the tray menu.
type Actions struct {
	// OnMirror begins a new region selection.
	OnMirror func()
	// OnQuit runs after the tray loop exits.
	OnQuit func()
}

// Run enters the systray loop and blocks until Quit. Call it from a
// dedicated goroutine; systray owns its thread.
func Run(a Actions) {
	systray.Run(func() { onReady(a) }, func() {
		if a.OnQuit != nil {
			a.OnQuit()
		}
	})
}

// Quit exits the tray loop, triggering OnQuit.
func Quit() { systray.Quit() }

// UpdateTooltip replaces the tray tooltip text.
func UpdateTooltip(text string) { systray.SetTooltip(text) }

func onReady(a Actions) {
	if icon := Icon(); len(icon) > 0 {
		systray.SetIcon(icon)
	}
	systray.SetTitle("RegionMirror")
	systray.SetTooltip(DefaultTooltip)

	mMirror := systray.AddMenuItem("Mirror a Region", "Drag-select a screen region to mirror")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit RegionMirror")

	go func() {
		for {
			select {
			case <-mMirror.ClickedCh:
				golog.Debugf("tray: mirror a region requested")
				if a.OnMirror != nil {
					a.OnMirror()
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}
