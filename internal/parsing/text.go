package parsing

import "strings"

// nonEmptyLines splits text into trimmed, non-empty lines.
func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// containsFold reports whether a contains b or b contains a, ignoring case.
func containsFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// window returns the text within radius bytes on either side of needle.
func window(text, needle string, radius int) (string, bool) {
	idx := strings.Index(text, needle)
	if idx < 0 {
		return "", false
	}
	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + radius
	if end > len(text) {
		end = len(text)
	}
	return text[start:end], true
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
}
