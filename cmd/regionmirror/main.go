// RegionMirror mirrors a drag-selected screen region pixel-exactly in a
// resizable window. It lives in the system tray; a global hotkey or the tray
// menu begins a new region selection.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/kataras/golog"

	"github.com/jmac006/RegionMirror/src/capture"
	"github.com/jmac006/RegionMirror/src/config"
	"github.com/jmac006/RegionMirror/src/hotkey"
	"github.com/jmac006/RegionMirror/src/logutil"
	"github.com/jmac006/RegionMirror/src/mirror"
	"github.com/jmac006/RegionMirror/src/notify"
	"github.com/jmac006/RegionMirror/src/render"
	"github.com/jmac006/RegionMirror/src/selector"
	"github.com/jmac006/RegionMirror/src/tray"
)

const appID = "com.github.jmac006.regionmirror"

func main() {
	cfg, err := config.Load()
	if err != nil {
		golog.Fatalf("loading configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	a := app.NewWithID(appID)

	// The orchestrator is wired after the surface because the window's close
	// handler ends the session through it.
	var orch *mirror.Orchestrator
	surface := render.NewWindowSurface(a, "RegionMirror", func() { orch.EndMirroring() })
	renderer := render.New(surface)
	provider := capture.NewGrabber()
	manager := capture.NewManager(provider, renderer, cfg.FrameRateCap)

	var border mirror.BorderIndicator = mirror.NopBorder{}
	if cfg.ShowBorder {
		border = &mirror.LogBorder{}
	}

	orch = mirror.New(mirror.Config{
		Provider: provider,
		Selector: selector.NewOverlaySelector(a),
		Session:  manager,
		Border:   border,
		Notifier: notify.NewDialog(a),
		Pointer: func() (float64, float64, bool) {
			hx, hy, ok := hotkey.PointerPosition()
			if !ok {
				return 0, 0, false
			}
			return provider.FromVirtual(hx, hy)
		},
		Exclude: []string{appID},
	})
	orch.Observe(func(mirroring bool) {
		if mirroring {
			surface.Show()
			tray.UpdateTooltip("RegionMirror: mirroring a region")
		} else {
			renderer.Clear() // a stale frame must not size the next session
			surface.Hide()
			tray.UpdateTooltip(tray.DefaultTooltip)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go renderer.Run(ctx)
	go func() {
		if err := orch.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			golog.Errorf("orchestrator stopped: %v", err)
		}
	}()
	go tray.Run(tray.Actions{
		OnMirror: orch.BeginSelection,
		OnQuit: func() {
			cancel()
			fyne.Do(a.Quit)
		},
	})
	hotkey.Listen(cfg.Hotkey, orch.BeginSelection)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
		fyne.Do(a.Quit)
	}()

	golog.Infof("RegionMirror ready: press %s or use the tray menu to select a region", cfg.Hotkey)
	a.Run()

	cancel()
	tray.Quit()
}
