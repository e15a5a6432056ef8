package domain

import "strings"

// BuildContext joins a conversation log into the textual memory sent to the
// completion gateway: one "role: content" line per message, in log order.
func BuildContext(msgs []*Message) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}
