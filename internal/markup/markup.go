// Package markup holds the editor's text-insertion snippets and the
// conversion of note span markup into markdown for terminal preview.
package markup

import "regexp"

// snippets maps editor key combinations to the literal appended to the
// field's current value. The set is fixed; no other combination is
// intercepted.
var snippets = map[string]string{
	"alt+q":  "«»",
	"alt+t":  "–",
	"ctrl+b": `<span class="font-weight-bold"></span>`,
	"ctrl+i": `<span class="font-italic"></span>`,
	"alt+b":  "<sub></sub>",
	"alt+p":  "<sup></sup>",
}

// Snippet returns the insertion snippet for a key combination in
// bubbletea key-string form ("alt+q", "ctrl+b", ...). ok is false for
// combinations the editor does not intercept.
func Snippet(key string) (s string, ok bool) {
	s, ok = snippets[key]
	return s, ok
}

// Note content carries a small fixed set of HTML spans (the templates
// style them with CSS classes). Class attributes appear both quoted
// and bare in stored notes.
var (
	boldRe   = regexp.MustCompile(`<span class="?font-weight-bold"?>(.*?)</span>`)
	italicRe = regexp.MustCompile(`<span class="?font-italic"?>(.*?)</span>`)
	codeRe   = regexp.MustCompile(`<span class="?font-code"?>(.*?)</span>`)
	subSupRe = regexp.MustCompile(`</?su[bp]>`)
)

// ToMarkdown rewrites note span markup as markdown emphasis for the
// preview renderer. Terminal cells have no subscript or superscript;
// those tags are dropped and their text kept inline.
func ToMarkdown(content string) string {
	out := boldRe.ReplaceAllString(content, "**$1**")
	out = italicRe.ReplaceAllString(out, "*$1*")
	out = codeRe.ReplaceAllString(out, "`$1`")
	out = subSupRe.ReplaceAllString(out, "")
	return out
}

// Plain strips all span markup, keeping only the text. Used for
// one-line listing rows where styling would be noise.
func Plain(content string) string {
	out := boldRe.ReplaceAllString(content, "$1")
	out = italicRe.ReplaceAllString(out, "$1")
	out = codeRe.ReplaceAllString(out, "$1")
	out = subSupRe.ReplaceAllString(out, "")
	return out
}
