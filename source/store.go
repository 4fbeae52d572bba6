package source

import (
	"sort"

	"github.com/nam-hle/eslint/ast"
)

// Store holds the Position Index's companion structures for tokens and
// comments: the sorted token slice, the sorted comment slice, their merged
// stream, and the start/end location→index maps used for the O(1)
// boundary fast path (spec.md §4.1).
//
// A Store is built once per lint pass and never mutated afterward; all
// query methods are read-only (spec.md §3, Invariants).
type Store struct {
	tokens   []Token
	comments []*ast.Comment
	merged   []Item

	// startIndex maps a token's range.start to its index in tokens.
	startIndex map[int]int
	// endIndex maps a token's range.end to index+1 (the conventional
	// "one past" form used by the bounded cursors).
	endIndex map[int]int
}

// NewStore builds a Store from already-sorted, non-overlapping tokens and
// comments (spec.md §3, Data Model).
func NewStore(tokens []Token, comments []*ast.Comment) *Store {
	s := &Store{
		tokens:     tokens,
		comments:   comments,
		startIndex: make(map[int]int, len(tokens)),
		endIndex:   make(map[int]int, len(tokens)),
	}
	for i, t := range tokens {
		s.startIndex[t.Rng.Start] = i
		s.endIndex[t.Rng.End] = i + 1
	}
	s.merged = mergeStream(tokens, comments)
	return s
}

func mergeStream(tokens []Token, comments []*ast.Comment) []Item {
	merged := make([]Item, 0, len(tokens)+len(comments))
	i, j := 0, 0
	for i < len(tokens) && j < len(comments) {
		if tokens[i].Rng.Start <= comments[j].Rng.Start {
			merged = append(merged, Item{Token: &tokens[i]})
			i++
		} else {
			merged = append(merged, Item{Comment: comments[j]})
			j++
		}
	}
	for ; i < len(tokens); i++ {
		merged = append(merged, Item{Token: &tokens[i]})
	}
	for ; j < len(comments); j++ {
		merged = append(merged, Item{Comment: comments[j]})
	}
	return merged
}

// TokenCount returns the number of tokens (excluding comments).
func (s *Store) TokenCount() int { return len(s.tokens) }

// TokenByRangeStart returns the token beginning exactly at offset, or nil.
// It consults the O(1) map first and falls back to a binary search on
// miss (spec.md §4.1).
func (s *Store) TokenByRangeStart(offset int) *Token {
	if idx, ok := s.startIndex[offset]; ok {
		return &s.tokens[idx]
	}
	idx := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].Rng.Start >= offset })
	if idx < len(s.tokens) && s.tokens[idx].Rng.Start == offset {
		return &s.tokens[idx]
	}
	return nil
}

// firstIndexFrom returns the least token index i with tokens[i].Range.Start
// >= start, or len(tokens) if none.
func (s *Store) firstIndexFrom(start int) int {
	if idx, ok := s.startIndex[start]; ok && s.tokens[idx].Rng.Start >= start {
		return idx
	}
	return sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].Rng.Start >= start })
}

// lastIndexBefore returns the greatest token index i with
// tokens[i].Range.End <= end, or -1 if none.
func (s *Store) lastIndexBefore(end int) int {
	if idx, ok := s.endIndex[end]; ok && idx-1 >= 0 && s.tokens[idx-1].Rng.End <= end {
		return idx - 1
	}
	// sort.Search finds the first index whose End > end; the answer is
	// one before that.
	idx := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].Rng.End > end })
	return idx - 1
}

// tokenItems wraps tokens[lo:hi] as Items, for callers that already know
// the bounding index pair (e.g. from firstIndexFrom/lastIndexBefore).
func (s *Store) tokenItems(lo, hi int) []Item {
	if hi < lo {
		hi = lo
	}
	out := make([]Item, hi-lo)
	for i := lo; i < hi; i++ {
		out[i-lo] = Item{Token: &s.tokens[i]}
	}
	return out
}
