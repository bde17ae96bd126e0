package markup

import "testing"

func TestSnippet(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"alt+q", "«»", true},
		{"alt+t", "–", true},
		{"ctrl+b", `<span class="font-weight-bold"></span>`, true},
		{"ctrl+i", `<span class="font-italic"></span>`, true},
		{"alt+b", "<sub></sub>", true},
		{"alt+p", "<sup></sup>", true},
		{"ctrl+q", "", false},
		{"alt+i", "", false},
		{"b", "", false},
		{"ctrl+alt+b", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := Snippet(tt.key)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Snippet(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"bold span",
			`see <span class="font-weight-bold">Kernighan</span> 1978`,
			"see **Kernighan** 1978",
		},
		{
			"italic span",
			`<span class="font-italic">ceteris paribus</span>`,
			"*ceteris paribus*",
		},
		{
			"code span with bare class",
			"call <span class=font-code>fsync</span> first",
			"call `fsync` first",
		},
		{
			"subscript dropped keeping text",
			"H<sub>2</sub>O",
			"H2O",
		},
		{
			"superscript dropped keeping text",
			"10<sup>9</sup> ops",
			"109 ops",
		},
		{
			"two spans on one line stay separate",
			`<span class="font-italic">a</span> and <span class="font-italic">b</span>`,
			"*a* and *b*",
		},
		{
			"mixed markup",
			`<span class="font-weight-bold">E</span> = mc<sup>2</sup>`,
			"**E** = mc2",
		},
		{
			"plain text untouched",
			"no markup here – just a dash and «quotes»",
			"no markup here – just a dash and «quotes»",
		},
		{
			"empty string",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMarkdown(tt.in); got != tt.want {
				t.Errorf("ToMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
