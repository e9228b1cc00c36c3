package flash

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	noticePolicyOnce sync.Once
	noticePolicy     *bluemonday.Policy
)

// NoticeHTML renders messages as notice markup. Message text is sanitized,
// keeping a small set of inline elements and escaping everything else.
func NoticeHTML(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	for _, message := range messages {
		normalized, ok := message.normalize()
		if !ok {
			continue
		}
		fmt.Fprintf(
			&b,
			"<div class=\"notice notice-%s\"><p>%s</p></div>\n",
			html.EscapeString(string(normalized.Category)),
			SanitizeText(normalized.Text),
		)
	}
	return b.String()
}

// SanitizeText strips unsafe markup from message text.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(noticeSanitizer().Sanitize(trimmed))
}

func noticeSanitizer() *bluemonday.Policy {
	noticePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("strong", "em", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		noticePolicy = policy
	})
	return noticePolicy
}
