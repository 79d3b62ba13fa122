package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FRAME_RATE_CAP", "")
	t.Setenv("HOTKEY", "")
	t.Setenv("ENABLE_FILE_LOGGING", "")
	t.Setenv("SHOW_BORDER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.FrameRateCap != 30 {
		t.Errorf("FrameRateCap = %d, want 30", cfg.FrameRateCap)
	}
	if cfg.Hotkey != DefaultHotkey {
		t.Errorf("Hotkey = %q, want %q", cfg.Hotkey, DefaultHotkey)
	}
	if cfg.EnableFileLogging {
		t.Error("EnableFileLogging defaults to false")
	}
	if !cfg.ShowBorder {
		t.Error("ShowBorder defaults to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FRAME_RATE_CAP", "60")
	t.Setenv("HOTKEY", "Ctrl+Shift+R")
	t.Setenv("ENABLE_FILE_LOGGING", "true")
	t.Setenv("SHOW_BORDER", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.FrameRateCap != 60 {
		t.Errorf("FrameRateCap = %d, want 60", cfg.FrameRateCap)
	}
	if cfg.Hotkey != "Ctrl+Shift+R" {
		t.Errorf("Hotkey = %q, want Ctrl+Shift+R", cfg.Hotkey)
	}
	if !cfg.EnableFileLogging {
		t.Error("EnableFileLogging not picked up")
	}
	if cfg.ShowBorder {
		t.Error("SHOW_BORDER=false must disable the border")
	}
}

func TestInvalidFrameRateCapFallsBack(t *testing.T) {
	for _, v := range []string{"0", "-5", "abc"} {
		t.Setenv("FRAME_RATE_CAP", v)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.FrameRateCap != 30 {
			t.Errorf("FRAME_RATE_CAP=%q: cap = %d, want default 30", v, cfg.FrameRateCap)
		}
	}
}
