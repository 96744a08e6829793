package pipeline

import (
	"regexp"
	"strings"
)

// externalLinkIcon marks anchors that open a new browsing context.
const externalLinkIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="md-icon md-icon-external"><path d="M18 13v6a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2V8a2 2 0 0 1 2-2h6"></path><polyline points="15 3 21 3 21 9"></polyline><line x1="10" y1="14" x2="21" y2="3"></line></svg>`

// [label](href); label without ']' and href without ')'.
var linkPattern = regexp.MustCompile(`\[([^\]]+?)\]\(([^)]+?)\)`)

// safeSchemes are the absolute href prefixes allowed to become anchors.
var safeSchemes = []string{"http://", "https://", "mailto:", "tel:"}

// formatLinks turns [label](href) into anchors. The text is already escaped,
// so label and href are emitted without a second entity pass. Unsafe hrefs
// degrade to the bare label.
func formatLinks(content string) string {
	if !strings.Contains(content, "](") {
		return content
	}
	return replaceSubmatches(linkPattern, content, func(m []string) string {
		label, rawHref := m[1], m[2]
		href := safeHref(rawHref)
		if href == "" {
			return label
		}

		var b strings.Builder
		b.WriteString(`<a class="md-link md-link--external" href="`)
		b.WriteString(escapeEscapedAttr(href))
		b.WriteString(`" target="_blank" rel="noreferrer noopener"><span class="md-link__label">`)
		b.WriteString(label)
		b.WriteString(`</span> `)
		b.WriteString(externalLinkIcon)
		b.WriteString(`<span class="md-link__tooltip">`)
		b.WriteString(strings.TrimSpace(rawHref))
		b.WriteString(`</span></a>`)
		return b.String()
	})
}

// safeHref returns the trimmed href when it is http(s), mailto, tel,
// root-relative or a fragment, and "" otherwise. Protocol-relative
// references ("//host", "/\host") are not root-relative and are rejected.
func safeHref(raw string) string {
	href := strings.TrimSpace(raw)
	if href == "" {
		return ""
	}

	lower := strings.ToLower(href)
	for _, scheme := range safeSchemes {
		if strings.HasPrefix(lower, scheme) {
			return href
		}
	}

	switch {
	case strings.HasPrefix(href, "#"):
		return href
	case strings.HasPrefix(href, "//"), strings.HasPrefix(href, `/\`):
		return ""
	case strings.HasPrefix(href, "/"):
		return href
	}
	return ""
}
