package markup

import "strings"

const (
	literalOpen  = "<![CDATA["
	literalClose = "]]>"
)

// Literal marks s to be shown verbatim. A "]]>" inside s is split across two
// literal sections so it cannot end the section early.
func Literal(s string) string {
	return literalOpen + strings.ReplaceAll(s, literalClose, "]]"+literalClose+literalOpen+">") + literalClose
}

// Code marks inner as a command the user can type.
func Code(inner string) string {
	return "<code>" + inner + "</code>"
}

// Item is one list entry.
func Item(inner string) string {
	return "<li>" + inner + "</li>"
}

// StruckItem is a list entry shown struck out.
func StruckItem(inner string) string {
	return "<li><s>" + inner + "</s></li>"
}

// OrderedList joins items into a numbered list.
func OrderedList(items ...string) string {
	return "<ol>" + strings.Join(items, "") + "</ol>"
}
