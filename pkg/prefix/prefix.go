// Package prefix derives a per-server command prefix from the bot's nickname.
//
// A nickname of the form "[pre] Name" makes "pre" the prefix on that server.
// Anything without both brackets falls back to the default prefix.
package prefix

import (
	"slices"
	"strings"
)

// Resolve returns the prefix encoded in nickname, or defaultPrefix when the
// nickname does not carry one.
//
// The tag is cut in two steps: everything after the first '[' is taken, then
// that remainder is cut to (index of the first ']' in the whole nickname) - 1
// characters. A negative length counts back from the end of the remainder.
// Reversed or adjacent brackets therefore give short or empty prefixes,
// e.g. "Bot]No[Open" resolves to "Op" and "[]" resolves to "".
//
// Positions are counted in runes. Invalid UTF-8 in nickname comes back as
// U+FFFD; Discord only delivers valid UTF-8, so nicknames are unaffected.
func Resolve(defaultPrefix, nickname string) string {
	if !strings.Contains(nickname, "[") || !strings.Contains(nickname, "]") {
		return defaultPrefix
	}

	runes := []rune(nickname)
	open := slices.Index(runes, '[')
	closing := slices.Index(runes, ']')

	rest := runes[open+1:]
	return string(rest[:sliceEnd(len(rest), closing-1)])
}

// sliceEnd clamps end to [0, n], counting negative values from n.
func sliceEnd(n, end int) int {
	if end < 0 {
		end += n
		if end < 0 {
			return 0
		}
	}
	if end > n {
		return n
	}
	return end
}
