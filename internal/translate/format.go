package translate

import "strings"

// quoteRunes are characters treated as quotation marks when deciding
// whether a line is decoration rather than dialogue.
const quoteRunes = `"'“”「」『』《》‹›«»`

// FormatTranslation normalizes model output for the translation pane:
// line endings unified (including escaped "\n" sequences some models
// emit), a wrapping quote pair stripped, and a blank line inserted
// between consecutive speaker lines so balloons read separately.
func FormatTranslation(text string) string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, `\r\n`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")

	s = unwrapQuotes(s)

	lines := strings.Split(s, "\n")
	if len(lines) <= 1 {
		return s
	}

	out := make([]string, 0, 2*len(lines))
	for i, line := range lines {
		out = append(out, line)
		if i == len(lines)-1 {
			continue
		}
		cur := strings.TrimSpace(line)
		next := strings.TrimSpace(lines[i+1])
		if cur == "" || next == "" {
			continue
		}
		if isQuoteOnly(cur) || isQuoteOnly(next) {
			continue
		}
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// unwrapQuotes strips a single matching ASCII quote pair wrapping the
// whole string, which some models add despite instructions.
func unwrapQuotes(s string) string {
	if len(s) >= 2 && s[0] == s[len(s)-1] && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

func isQuoteOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(quoteRunes, r) {
			return false
		}
	}
	return true
}
