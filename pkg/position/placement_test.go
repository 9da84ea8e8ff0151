package position_test

import (
	"testing"

	"github.com/vango-go/popup/pkg/position"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		placement string
		direction string
		alignment string
	}{
		{"top left", "top", "left"},
		{"bottom center", "bottom", "center"},
		{"right center", "right", "center"},
		{"top", "top", "top"},
		{"", "", ""},
		{"  bottom   right  ", "bottom", "right"},
	}

	for _, tt := range tests {
		dir, align := position.Split(tt.placement)
		if dir != tt.direction || align != tt.alignment {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)",
				tt.placement, dir, align, tt.direction, tt.alignment)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := position.Join("top", "left"); got != "top left" {
		t.Errorf("Join = %q, want %q", got, "top left")
	}
	if got := position.Join("top", ""); got != "top" {
		t.Errorf("Join = %q, want %q", got, "top")
	}
}

func TestValid(t *testing.T) {
	valid := []string{
		"top left", "top center", "top right",
		"bottom left", "bottom center", "bottom right",
		"left top", "left center", "left bottom",
		"right top", "right center", "right bottom",
	}
	for _, p := range valid {
		if !position.Valid(p) {
			t.Errorf("Valid(%q) = false, want true", p)
		}
	}

	invalid := []string{
		"", "middle", "top top", "left left", "up down", "top  bogus",
	}
	for _, p := range invalid {
		if position.Valid(p) {
			t.Errorf("Valid(%q) = true, want false", p)
		}
	}
}
