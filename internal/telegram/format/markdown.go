// Package format escapes user-controlled text before it is embedded in
// Markdown messages. Targets, usernames and proof captions all pass through
// here so a crafted input cannot break a rendered summary.
package format

import "strings"

var (
	mdV1Escaper = strings.NewReplacer(
		"_", `\_`,
		"*", `\*`,
		"[", `\[`,
		"`", "\\`",
	)
	mdV2Escaper = strings.NewReplacer(
		"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`,
		"(", `\(`, ")", `\)`, "~", `\~`, "`", "\\`",
		">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
		"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`,
		".", `\.`, "!", `\!`,
	)
)

// EscapeV1 escapes the characters Telegram's legacy Markdown treats specially.
func EscapeV1(text string) string {
	return mdV1Escaper.Replace(text)
}

// EscapeV2 escapes the full MarkdownV2 special set.
func EscapeV2(text string) string {
	return mdV2Escaper.Replace(text)
}
