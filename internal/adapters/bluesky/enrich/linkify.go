package enrich

import (
	"strings"

	"mvdan.cc/xurls/v2"
)

var urlPattern = xurls.Strict()

// linkify wraps bare http(s) URLs in anchor tags, leaving the rest of the
// text untouched. Non-web schemes xurls knows about stay as plain text
func linkify(text string) string {
	if text == "" {
		return ""
	}
	return urlPattern.ReplaceAllStringFunc(text, func(m string) string {
		if !strings.HasPrefix(m, "http://") && !strings.HasPrefix(m, "https://") {
			return m
		}
		return `<a href="` + m + `" target="_blank">` + m + `</a>`
	})
}
