package redact

import "strings"

func Token() string  { return "[REDACTED_TOKEN]" }
func Secret() string { return "[REDACTED_SECRET]" }

// Snippet возвращает однострочный фрагмент тела ответа для логов:
// управляющие символы заменяются пробелами, длина ограничивается max рунами.
func Snippet(s string, max int) string {
	if max <= 0 {
		return ""
	}

	var b strings.Builder
	count := 0
	for _, r := range s {
		if count >= max {
			b.WriteString("...")
			break
		}

		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		b.WriteRune(r)
		count++
	}

	return b.String()
}
