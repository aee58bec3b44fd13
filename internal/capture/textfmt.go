// Package capture holds the pure input-shaping utilities the form
// controllers consume: dictated-text reformatting, receipt/photo inlining,
// and the dictation session state machine.
package capture

import (
	"regexp"
	"strings"
)

var (
	repeatedComma = regexp.MustCompile(`、{2,}`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// lineEnders are the characters a line may legitimately end with; anything
// else gets a closing 。 appended.
const lineEnders = "。）)】"

// FormatText normalizes dictated Japanese prose into one sentence per line:
// sentences are split after 。, duplicated 、 are collapsed, runs of blank
// lines are squeezed, and each line is closed with 。 when it lacks a
// terminator. Whitespace-only input is returned unchanged.
func FormatText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	text := breakAfterKuten(raw)
	text = repeatedComma.ReplaceAllString(text, "、")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.ContainsRune(lineEnders, lastRune(line)) {
			line += "。"
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// breakAfterKuten inserts a newline after every 。 not already followed by one.
func breakAfterKuten(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i, r := range runes {
		b.WriteRune(r)
		if r == '。' && (i+1 >= len(runes) || runes[i+1] != '\n') {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
