package source

import (
	"sort"

	"github.com/nam-hle/eslint/ast"
)

// Ranged is implemented by anything a positional query can be anchored
// to: an AST node, a Token, or a Comment.
type Ranged interface {
	Range() ast.Range
}

func (s *Store) window(opt Options) []Item {
	if opt.IncludeComments {
		return s.merged
	}
	out := make([]Item, len(s.tokens))
	for i := range s.tokens {
		out[i] = Item{Token: &s.tokens[i]}
	}
	return out
}

func first(c Cursor) *Item {
	if !c.MoveNext() {
		return nil
	}
	it := c.Current()
	return &it
}

func collect(c Cursor) []Item {
	var out []Item
	for c.MoveNext() {
		out = append(out, c.Current())
	}
	return out
}

func reversed(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return out
}

// FirstToken returns the first item of the stream matching opt, or nil.
func (s *Store) FirstToken(opt Options) *Item {
	items := s.window(opt)
	return first(compose(newForwardCursor(items), opt))
}

// LastToken returns the last item of the stream matching opt, or nil.
func (s *Store) LastToken(opt Options) *Item {
	items := s.window(opt)
	return first(compose(newBackwardCursor(items), opt))
}

// TokenBefore returns the nearest item strictly before target.Range().Start
// matching opt, or nil.
func (s *Store) TokenBefore(target Ranged, opt Options) *Item {
	start := target.Range().Start
	if !opt.IncludeComments {
		items := s.tokenItems(0, s.firstIndexFrom(start))
		return first(compose(newBackwardCursor(items), opt))
	}
	items := s.window(opt)
	idx := sort.Search(len(items), func(i int) bool { return items[i].Range().Start >= start })
	return first(compose(newBackwardCursor(items[:idx]), opt))
}

// TokenAfter returns the nearest item strictly after target.Range().End
// matching opt, or nil.
func (s *Store) TokenAfter(target Ranged, opt Options) *Item {
	end := target.Range().End
	if !opt.IncludeComments {
		items := s.tokenItems(s.firstIndexFrom(end), len(s.tokens))
		return first(compose(newForwardCursor(items), opt))
	}
	items := s.window(opt)
	idx := sort.Search(len(items), func(i int) bool { return items[i].Range().Start >= end })
	return first(compose(newForwardCursor(items[idx:]), opt))
}

// TokensBefore returns, in source order, every item strictly before
// target.Range().Start matching opt. Skip/Count are interpreted relative
// to the item nearest target first (i.e. skip/limit count backward from
// target, then the result is re-ordered forward).
func (s *Store) TokensBefore(target Ranged, opt Options) []Item {
	start := target.Range().Start
	var out []Item
	if !opt.IncludeComments {
		items := s.tokenItems(0, s.firstIndexFrom(start))
		out = collect(compose(newBackwardCursor(items), opt))
	} else {
		items := s.window(opt)
		idx := sort.Search(len(items), func(i int) bool { return items[i].Range().Start >= start })
		out = collect(compose(newBackwardCursor(items[:idx]), opt))
	}
	return reversed(out)
}

// TokensAfter returns, in source order, every item strictly after
// target.Range().End matching opt.
func (s *Store) TokensAfter(target Ranged, opt Options) []Item {
	end := target.Range().End
	if !opt.IncludeComments {
		items := s.tokenItems(s.firstIndexFrom(end), len(s.tokens))
		return collect(compose(newForwardCursor(items), opt))
	}
	items := s.window(opt)
	idx := sort.Search(len(items), func(i int) bool { return items[i].Range().Start >= end })
	return collect(compose(newForwardCursor(items[idx:]), opt))
}

// TokensBetween returns, in source order, every item with
// Range().Start >= left.Range().End and Range().End <= right.Range().Start,
// matching opt.
func (s *Store) TokensBetween(left, right Ranged, opt Options) []Item {
	lo := left.Range().End
	hi := right.Range().Start
	if !opt.IncludeComments {
		start := s.firstIndexFrom(lo)
		end := s.firstIndexFrom(hi)
		if end < start {
			end = start
		}
		return collect(compose(newForwardCursor(s.tokenItems(start, end)), opt))
	}
	items := s.window(opt)
	start := sort.Search(len(items), func(i int) bool { return items[i].Range().Start >= lo })
	end := sort.Search(len(items), func(i int) bool { return items[i].Range().Start >= hi })
	if end < start {
		end = start
	}
	return collect(compose(newForwardCursor(items[start:end]), opt))
}

// TokensInside returns, in source order, every item fully contained in
// target's range, matching opt.
func (s *Store) TokensInside(target Ranged, opt Options) []Item {
	r := target.Range()
	if !opt.IncludeComments {
		start := s.firstIndexFrom(r.Start)
		end := s.lastIndexBefore(r.End) + 1
		return collect(compose(newForwardCursor(s.tokenItems(start, end)), opt))
	}
	items := s.window(opt)
	start := sort.Search(len(items), func(i int) bool { return items[i].Range().Start >= r.Start })
	end := sort.Search(len(items), func(i int) bool { return items[i].Range().Start > r.End })
	inside := make([]Item, 0, end-start)
	for _, it := range items[start:end] {
		if it.Range().End <= r.End {
			inside = append(inside, it)
		}
	}
	return collect(compose(newForwardCursor(inside), opt))
}
