package styles

import "testing"

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF5500", true},
		{"#aabbcc", true},
		{"#AbCdEf", true},
		{"#000000", true},
		{"#00000080", true}, // 8-char with alpha
		{"#aabbcc00", true},

		{"#FFF", false},      // short forms rejected
		{"#FF55001", false},  // 7 digits
		{"FF5500", false},    // no hash
		{"#GGGGGG", false},   // non-hex
		{"#FF 550", false},   // space
		{"", false},
		{"#", false},
		{"#FF5500FF5500", false},
	}

	for _, tt := range tests {
		got := IsValidHexColor(tt.input)
		if got != tt.valid {
			t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("dracula").Name; got != "dracula" {
		t.Errorf("expected dracula, got %q", got)
	}
	// Unknown names fall back to the default theme.
	if got := GetTheme("no-such-theme").Name; got != "default" {
		t.Errorf("expected fallback to default, got %q", got)
	}
}

func TestIsValidTheme(t *testing.T) {
	for _, name := range ListThemes() {
		if !IsValidTheme(name) {
			t.Errorf("listed theme %q must validate", name)
		}
	}
	if IsValidTheme("solarized-unknown") {
		t.Error("unknown theme must not validate")
	}
}

func TestApplyThemeWithOverrides(t *testing.T) {
	defer ApplyThemeWithOverrides("default", nil)

	ApplyThemeWithOverrides("default", map[string]interface{}{
		"primary": "#123456",
	})
	if string(Primary) != "#123456" {
		t.Errorf("expected primary override applied, got %q", string(Primary))
	}
	if GetCurrentThemeName() != "default" {
		t.Errorf("expected theme name default, got %q", GetCurrentThemeName())
	}
}

func TestApplyThemeRejectsBadOverrides(t *testing.T) {
	defer ApplyThemeWithOverrides("default", nil)

	before := string(GetTheme("default").Colors.Primary)
	ApplyThemeWithOverrides("default", map[string]interface{}{
		"primary": "not-a-color",
		"unknown": "#123456",
	})
	if string(Primary) != before {
		t.Errorf("invalid hex must be ignored; primary became %q", string(Primary))
	}
}

func TestApplyThemeTabColorsOverride(t *testing.T) {
	defer ApplyThemeWithOverrides("default", nil)

	ApplyThemeWithOverrides("default", map[string]interface{}{
		"tabColors": []interface{}{"#111111", "#222222"},
	})
	want := HexToRGB("#111111")
	if len(CurrentTabColors) != 2 || CurrentTabColors[0] != want {
		t.Errorf("expected tab colors override, got %v", CurrentTabColors)
	}
}
