package ui

import (
	"strings"
	"testing"
)

func TestMaxLineWidth(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty", []string{}, 0},
		{"single", []string{"hello"}, 5},
		{"multiple", []string{"hi", "hello", "hey"}, 5},
		{"with ansi", []string{"\x1b[31mred\x1b[0m"}, 3}, // visual width is 3
		{"empty lines", []string{"", "", ""}, 0},
		{"mixed", []string{"short", "longer line", "mid"}, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxLineWidth(tt.lines)
			if got != tt.want {
				t.Errorf("maxLineWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompositeRow(t *testing.T) {
	tests := []struct {
		name        string
		bgLine      string
		modalLine   string
		modalStartX int
		modalWidth  int
		totalWidth  int
		wantModal   bool // should contain modal content
	}{
		{
			name:        "basic centered",
			bgLine:      "background text here",
			modalLine:   "[MODAL]",
			modalStartX: 5,
			modalWidth:  7,
			totalWidth:  20,
			wantModal:   true,
		},
		{
			name:        "modal at left edge",
			bgLine:      "background",
			modalLine:   "[M]",
			modalStartX: 0,
			modalWidth:  3,
			totalWidth:  10,
			wantModal:   true,
		},
		{
			name:        "background shorter than modal position",
			bgLine:      "hi",
			modalLine:   "[MODAL]",
			modalStartX: 10,
			modalWidth:  7,
			totalWidth:  20,
			wantModal:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compositeRow(tt.bgLine, tt.modalLine, tt.modalStartX, tt.modalWidth, tt.totalWidth)

			if tt.wantModal && !strings.Contains(got, tt.modalLine) {
				t.Errorf("compositeRow() missing modal content %q", tt.modalLine)
			}
		})
	}
}

func TestOverlayModal(t *testing.T) {
	tests := []struct {
		name       string
		background string
		modal      string
		width      int
		height     int
		checkFn    func(t *testing.T, result string)
	}{
		{
			name:       "basic overlay",
			background: "line1\nline2\nline3\nline4\nline5",
			modal:      "[M]",
			width:      10,
			height:     5,
			checkFn: func(t *testing.T, result string) {
				lines := strings.Split(result, "\n")
				if len(lines) != 5 {
					t.Errorf("expected 5 lines, got %d", len(lines))
				}
				// Modal should be in middle line (line 2, 0-indexed)
				if !strings.Contains(lines[2], "[M]") {
					t.Errorf("modal not found in expected line")
				}
			},
		},
		{
			name:       "strips ansi from background",
			background: "\x1b[31mred\x1b[0m\n\x1b[32mgreen\x1b[0m",
			modal:      "X",
			width:      10,
			height:     3,
			checkFn: func(t *testing.T, result string) {
				// Original ANSI codes should be stripped
				if strings.Contains(result, "\x1b[31m") {
					t.Errorf("original red ANSI code should be stripped")
				}
				// Modal should still be present
				if !strings.Contains(result, "X") {
					t.Errorf("modal should be present")
				}
			},
		},
		{
			name:       "modal larger than background",
			background: "a\nb",
			modal:      "MODAL",
			width:      10,
			height:     5,
			checkFn: func(t *testing.T, result string) {
				lines := strings.Split(result, "\n")
				if len(lines) != 5 {
					t.Errorf("expected 5 lines, got %d", len(lines))
				}
				// Modal should still be centered
				found := false
				for _, line := range lines {
					if strings.Contains(line, "MODAL") {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("modal not found in result")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := OverlayModal(tt.background, tt.modal, tt.width, tt.height)
			tt.checkFn(t, result)
		})
	}
}

func TestDimLine(t *testing.T) {
	// dimLine should strip ANSI codes
	input := "\x1b[31mred text\x1b[0m"
	result := dimLine(input)

	// Should not contain original red ANSI code
	if strings.Contains(result, "\x1b[31m") {
		t.Errorf("dimLine should strip original ANSI codes")
	}

	// Should contain the plain text
	if !strings.Contains(result, "red text") {
		t.Errorf("dimLine should preserve text content")
	}
}

func TestOverlayAt(t *testing.T) {
	tests := []struct {
		name       string
		background string
		overlay    string
		x, y       int
		width      int
		height     int
		checkFn    func(t *testing.T, result string)
	}{
		{
			name:       "anchored at position",
			background: "line1\nline2\nline3\nline4\nline5",
			overlay:    "[MENU]",
			x:          2,
			y:          1,
			width:      20,
			height:     5,
			checkFn: func(t *testing.T, result string) {
				lines := strings.Split(result, "\n")
				if len(lines) != 5 {
					t.Fatalf("expected 5 lines, got %d", len(lines))
				}
				if !strings.Contains(lines[1], "[MENU]") {
					t.Errorf("overlay not at anchored row: %q", lines[1])
				}
				// Rows outside the overlay stay untouched
				if lines[0] != "line1" {
					t.Errorf("row above overlay changed: %q", lines[0])
				}
				if lines[2] != "line3" {
					t.Errorf("row below overlay changed: %q", lines[2])
				}
			},
		},
		{
			name:       "clamps to right and bottom edges",
			background: "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc",
			overlay:    "[12345]",
			x:          8,
			y:          2,
			width:      10,
			height:     3,
			checkFn: func(t *testing.T, result string) {
				lines := strings.Split(result, "\n")
				// Width 7 overlay anchored at x=8 in a 10-wide box shifts to x=3
				if !strings.Contains(lines[2], "[12345]") {
					t.Errorf("overlay not on clamped row: %q", lines[2])
				}
				if strings.Contains(lines[2], "cccc[") {
					t.Errorf("overlay not clamped horizontally: %q", lines[2])
				}
			},
		},
		{
			name:       "does not dim background",
			background: "\x1b[31mred\x1b[0m notdimmed\nplain",
			overlay:    "X",
			x:          0,
			y:          1,
			width:      15,
			height:     2,
			checkFn: func(t *testing.T, result string) {
				lines := strings.Split(result, "\n")
				if !strings.Contains(lines[0], "\x1b[31m") {
					t.Errorf("background styling should survive on uncovered rows: %q", lines[0])
				}
				if strings.Contains(result, DimSequence) {
					t.Errorf("OverlayAt must not dim the background")
				}
			},
		},
		{
			name:       "negative anchor clamps to origin",
			background: "one\ntwo",
			overlay:    "Z",
			x:          -4,
			y:          -4,
			width:      5,
			height:     2,
			checkFn: func(t *testing.T, result string) {
				lines := strings.Split(result, "\n")
				if !strings.HasPrefix(lines[0], "Z") {
					t.Errorf("overlay should clamp to top-left: %q", lines[0])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := OverlayAt(tt.background, tt.overlay, tt.x, tt.y, tt.width, tt.height)
			tt.checkFn(t, result)
		})
	}
}
