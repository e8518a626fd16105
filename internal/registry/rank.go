package registry

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/namematch"
	"github.com/agnivade/levenshtein"
)

// maxTypoDistance is the edit distance up to which a name prefix still
// counts as a hit. Queries shorter than minTypoQuery get no typo tolerance.
const (
	maxTypoDistance = 2
	minTypoQuery    = 4
)

type scored struct {
	entry    Entry
	prefix   bool
	distance int
	key      string
}

// Rank returns the entries of category c that match query, best first.
//
// An entry matches when its normalized name, description or one of its tags
// contains the normalized query, or when the start of its normalized name is
// within a small edit distance of it. Name-prefix hits come first, then
// closer names, then alphabetical order.
func Rank(query string, entries []Entry, c addon.Category) []Entry {
	q := namematch.Normalize(query)

	var hits []scored
	for _, e := range entries {
		if e.Category != c {
			continue
		}
		name := namematch.Normalize(e.Name)
		head := name[:min(len(q), len(name))]
		s := scored{
			entry:    e,
			prefix:   strings.HasPrefix(name, q),
			distance: levenshtein.ComputeDistance(q, head),
			key:      name,
		}
		if s.prefix || contains(e, q) || (len(q) >= minTypoQuery && s.distance <= maxTypoDistance) {
			hits = append(hits, s)
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		if a.prefix != b.prefix {
			if a.prefix {
				return -1
			}
			return 1
		}
		if a.distance != b.distance {
			return cmp.Compare(a.distance, b.distance)
		}
		return cmp.Compare(a.key, b.key)
	})

	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

func contains(e Entry, q string) bool {
	if strings.Contains(namematch.Normalize(e.Name), q) || strings.Contains(namematch.Normalize(e.Description), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(namematch.Normalize(tag), q) {
			return true
		}
	}
	return false
}
