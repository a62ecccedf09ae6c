// Package android parses and formats the text formats spoken by Android
// shell tools: input escaping, logcat timestamps, dumpsys and getprop output.
package android

import "strings"

// inputEscapes maps characters that `adb shell input text` mangles to their
// escaped form. Space becomes %s per the input tool's convention.
var inputEscapes = map[rune]string{
	' ':  "%s",
	'&':  `\&`,
	'<':  `\<`,
	'>':  `\>`,
	'(':  `\(`,
	')':  `\)`,
	';':  `\;`,
	'|':  `\|`,
	'*':  `\*`,
	'~':  `\~`,
	'\'': `\'`,
	'"':  `\"`,
	'#':  `\#`,
	'%':  `\%`,
	'!':  `\!`,
	'?':  `\?`,
	':':  `\:`,
	'/':  `\/`,
	'\\': `\\`,
}

// EscapeInputText escapes a payload for `adb shell input text`. Covers the
// common cases; the input tool has no fully reliable quoting.
func EscapeInputText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		if esc, ok := inputEscapes[ch]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
