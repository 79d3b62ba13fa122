// Package hotkey registers a global key combination via a low-level input
// hook and fires a callback when every key in the combination is held at
// once. The same hook stream carries mouse events, so the package also
// tracks the last observed pointer position.
package hotkey

import (
	"strings"
	"sync"

	"github.com/kataras/golog"
	gohook "github.com/robotn/gohook"
)

type keyState struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

var pointer struct {
	mu   sync.Mutex
	x, y int
	seen bool
}

func recordPointer(x, y int) {
	pointer.mu.Lock()
	pointer.x, pointer.y, pointer.seen = x, y, true
	pointer.mu.Unlock()
}

// PointerPosition reports the last pointer position seen by the input hook,
// in virtual-screen device pixels with a top-left origin. ok is false until
// the hook has observed at least one mouse event (or when Listen was never
// started).
func PointerPosition() (x, y int, ok bool) {
	pointer.mu.Lock()
	defer pointer.mu.Unlock()
	return pointer.x, pointer.y, pointer.seen
}

// Listen parses a combination like "Ctrl+Alt+M" and invokes callback on the
// hook goroutine each time the full combination is pressed. Invalid keys are
// logged and the listener is not started.
func Listen(combo string, callback func()) {
	var states []keyState
	for _, name := range parseCombo(combo) {
		rawcodes := keyNameToRawcodes(name)
		if len(rawcodes) == 0 {
			golog.Errorf("hotkey: cannot map key %q in %q", name, combo)
			return
		}
		states = append(states, keyState{name: name, rawcodes: rawcodes})
	}
	if len(states) == 0 {
		golog.Errorf("hotkey: empty combination %q", combo)
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				golog.Errorf("hotkey: hook goroutine panic: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			golog.Errorf("hotkey: keyboard hook failed to start")
			return
		}
		golog.Infof("hotkey listener active: %s", combo)

		var mu sync.Mutex
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				mu.Lock()
				mark(states, ev.Rawcode, true)
				all := allPressed(states)
				if all {
					for i := range states {
						states[i].pressed = false
					}
				}
				mu.Unlock()
				if all {
					golog.Debugf("hotkey %s activated", combo)
					if callback != nil {
						callback()
					}
				}
			case gohook.KeyUp:
				mu.Lock()
				mark(states, ev.Rawcode, false)
				mu.Unlock()
			case gohook.MouseMove, gohook.MouseDrag, gohook.MouseDown, gohook.MouseUp:
				recordPointer(int(ev.X), int(ev.Y))
			}
		}
	}()
}

func mark(states []keyState, rawcode uint16, pressed bool) {
	for i := range states {
		for _, rc := range states[i].rawcodes {
			if rc == rawcode {
				states[i].pressed = pressed
				return
			}
		}
	}
}

func allPressed(states []keyState) bool {
	for i := range states {
		if !states[i].pressed {
			return false
		}
	}
	return true
}

// parseCombo normalizes "Ctrl+Alt+m" into lower-case key names.
func parseCombo(combo string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(combo), "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch part {
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

var specialRawcodes = map[string][]uint16{
	"ctrl":      {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":       {164, 165}, // VK_LMENU, VK_RMENU
	"shift":     {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":       {91, 92},   // VK_LWIN, VK_RWIN
	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"del":       {46},
	"insert":    {45},
	"ins":       {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pgup":      {33},
	"pagedown":  {34},
	"pgdn":      {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

// keyNameToRawcodes maps a key name to its virtual key code rawcodes,
// including both left/right variants for modifiers.
func keyNameToRawcodes(name string) []uint16 {
	name = strings.ToLower(strings.TrimSpace(name))
	if rc, ok := specialRawcodes[name]; ok {
		return rc
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c - 'a' + 65)} // VK_A..VK_Z
		case c >= '0' && c <= '9':
			return []uint16{uint16(c - '0' + 48)} // VK_0..VK_9
		}
	}
	// Function keys F1..F24 map to VK codes 112..135.
	if strings.HasPrefix(name, "f") && len(name) > 1 {
		n := 0
		for _, d := range name[1:] {
			if d < '0' || d > '9' {
				return nil
			}
			n = n*10 + int(d-'0')
		}
		if n >= 1 && n <= 24 {
			return []uint16{uint16(111 + n)}
		}
	}
	return nil
}
