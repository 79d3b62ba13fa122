package hotkey

import (
	"reflect"
	"testing"
)

func TestKeyNameToRawcodes(t *testing.T) {
	tests := []struct {
		keyName  string
		expected []uint16
	}{
		// Modifiers map to both left and right variants.
		{"ctrl", []uint16{162, 163}},
		{"alt", []uint16{164, 165}},
		{"shift", []uint16{160, 161}},
		{"cmd", []uint16{91, 92}},

		{"m", []uint16{77}},
		{"q", []uint16{81}},
		{"0", []uint16{48}},
		{"9", []uint16{57}},

		{"f1", []uint16{112}},
		{"f12", []uint16{123}},
		{"f24", []uint16{135}},

		{"space", []uint16{32}},
		{"enter", []uint16{13}},
		{"esc", []uint16{27}},
		{"escape", []uint16{27}},

		{"f0", nil},
		{"f25", []uint16(nil)},
		{"unknown", nil},
	}

	for _, tt := range tests {
		got := keyNameToRawcodes(tt.keyName)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("keyNameToRawcodes(%q) = %v, want %v", tt.keyName, got, tt.expected)
		}
	}
}

func TestPointerPosition(t *testing.T) {
	if _, _, ok := PointerPosition(); ok {
		t.Fatal("pointer must be unknown before any mouse event")
	}

	recordPointer(1820, 400)
	x, y, ok := PointerPosition()
	if !ok || x != 1820 || y != 400 {
		t.Fatalf("PointerPosition = (%d, %d, %v), want (1820, 400, true)", x, y, ok)
	}

	recordPointer(-5, 12)
	if x, y, _ := PointerPosition(); x != -5 || y != 12 {
		t.Fatalf("pointer not updated: (%d, %d)", x, y)
	}
}

func TestParseCombo(t *testing.T) {
	tests := []struct {
		combo    string
		expected []string
	}{
		{"Ctrl+Alt+M", []string{"ctrl", "alt", "m"}},
		{"ctrl + shift + F5", []string{"ctrl", "shift", "f5"}},
		{"Win+Q", []string{"cmd", "q"}},
		{"Super+Space", []string{"cmd", "space"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := parseCombo(tt.combo)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("parseCombo(%q) = %v, want %v", tt.combo, got, tt.expected)
		}
	}
}
