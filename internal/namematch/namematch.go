package namematch

import "strings"

// Normalize returns the Latin letters (A-Z, a-z) of input, lower-cased.
// Every other character, including digits, punctuation, whitespace and
// non-Latin letters, is dropped.
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// Matches reports whether candidateName, once normalized, starts with the
// already-normalized queryTarget.
func Matches(candidateName, queryTarget string) bool {
	return strings.HasPrefix(Normalize(candidateName), queryTarget)
}

// Query is a normalized target derived from raw user input.
type Query struct {
	raw    string
	target string
}

// NewQuery normalizes raw into a Query.
func NewQuery(raw string) Query {
	return Query{raw: raw, target: Normalize(raw)}
}

// Raw returns the input the query was built from.
func (q Query) Raw() string { return q.raw }

// Target returns the normalized form of the input.
func (q Query) Target() string { return q.target }

// Matches reports whether name matches the query.
func (q Query) Matches(name string) bool {
	return Matches(name, q.target)
}

// First returns the first item whose name matches q. The second return value
// is false when nothing matches.
func First[T any](q Query, items []T, name func(T) string) (T, bool) {
	for _, item := range items {
		if q.Matches(name(item)) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
