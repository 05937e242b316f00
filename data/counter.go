package data

import (
	"sort"
	"strings"
)

// TokenCount pairs a token with its frequency.
type TokenCount[T comparable] struct {
	Token T
	Count int
}

// Counter keeps token frequencies. Tokens retain insertion order, so
// iteration and tie-breaking are deterministic across runs.
type Counter[T comparable] struct {
	counts map[T]int
	order  []T
}

// NewCounter creates a Counter, optionally pre-counting the given tokens.
func NewCounter[T comparable](tokens ...T) *Counter[T] {
	c := &Counter[T]{counts: make(map[T]int)}
	c.Update(tokens)
	return c
}

// Update adds one occurrence of every token in tokens.
func (c *Counter[T]) Update(tokens []T) {
	for _, tok := range tokens {
		c.Add(tok, 1)
	}
}

// Add adds n occurrences of token. The token is registered even when
// the resulting count is zero.
func (c *Counter[T]) Add(token T, n int) {
	if _, ok := c.counts[token]; !ok {
		c.order = append(c.order, token)
	}
	c.counts[token] += n
}

// Get returns the frequency of token, zero if unseen.
func (c *Counter[T]) Get(token T) int {
	return c.counts[token]
}

// Len returns the number of distinct tokens.
func (c *Counter[T]) Len() int {
	return len(c.counts)
}

// Total returns the sum of all frequencies.
func (c *Counter[T]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Tokens returns the distinct tokens in insertion order.
func (c *Counter[T]) Tokens() []T {
	tokens := make([]T, len(c.order))
	copy(tokens, c.order)
	return tokens
}

// Items returns token/frequency pairs in insertion order.
func (c *Counter[T]) Items() []TokenCount[T] {
	items := make([]TokenCount[T], 0, len(c.order))
	for _, tok := range c.order {
		items = append(items, TokenCount[T]{Token: tok, Count: c.counts[tok]})
	}
	return items
}

// MostCommon returns the n highest-frequency tokens, most frequent
// first. Ties keep insertion order. n <= 0 returns all tokens.
func (c *Counter[T]) MostCommon(n int) []TokenCount[T] {
	items := c.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}

// Discard returns a new Counter in which every token with frequency
// below minFreq has been removed and its mass folded into unknown.
// The unknown token is present in the result even when nothing was
// discarded.
func (c *Counter[T]) Discard(minFreq int, unknown T) *Counter[T] {
	discarded := 0
	ret := NewCounter[T]()
	for _, item := range c.Items() {
		if item.Count < minFreq {
			discarded += item.Count
			continue
		}
		ret.Add(item.Token, item.Count)
	}
	ret.Add(unknown, discarded)
	return ret
}

// CountTokens counts string tokens into counter, lowercasing them first
// when toLower is set. A nil counter starts a fresh one. The updated
// counter is returned either way.
func CountTokens(tokens []string, toLower bool, counter *Counter[string]) *Counter[string] {
	if counter == nil {
		counter = NewCounter[string]()
	}
	if toLower {
		lowered := make([]string, len(tokens))
		for i, tok := range tokens {
			lowered[i] = strings.ToLower(tok)
		}
		tokens = lowered
	}
	counter.Update(tokens)
	return counter
}
