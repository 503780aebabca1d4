package suggest

import (
	"sort"

	"github.com/charmbracelet/log"

	"trieserve/pkg/trie"
)

// Suggestion is one ranked completion candidate.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer wraps the frequency trie into a ranked completion engine.
// Results for recently served prefixes sit in a hot cache that is
// selectively invalidated when the underlying words change.
type Completer struct {
	trie         *trie.Trie
	hotCache     *HotCache
	totalWords   int
	maxFrequency int
}

// NewCompleter returns a completer without result caching.
func NewCompleter() *Completer {
	return &Completer{trie: trie.New()}
}

// NewCachedCompleter returns a completer that remembers up to maxEntries
// recently served prefixes.
func NewCachedCompleter(maxEntries int) *Completer {
	return &Completer{
		trie:     trie.New(),
		hotCache: NewHotCache(maxEntries),
	}
}

// AddWord inserts a word with the given insertion count.
func (c *Completer) AddWord(word string, count int) {
	if count < 1 {
		count = 1
	}
	c.trie.AddN(word, count)
	c.totalWords++
	if freq := c.trie.Frequency(word); freq > c.maxFrequency {
		c.maxFrequency = freq
	}
	if c.hotCache != nil {
		c.hotCache.InvalidateWord(word)
	}
}

// RemoveWord deletes one word, pruning whatever branch it leaves behind.
func (c *Completer) RemoveWord(word string) {
	c.trie.Remove(word)
	if c.hotCache != nil {
		c.hotCache.InvalidateWord(word)
	}
}

// Clear drops every stored word and the whole cache.
func (c *Completer) Clear() {
	c.trie.Clear()
	c.totalWords = 0
	c.maxFrequency = 0
	if c.hotCache != nil {
		c.hotCache.Reset()
	}
}

// Complete returns up to limit words extending prefix, most frequent
// first. Equal frequencies keep enumeration order so output is stable.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if c.hotCache != nil {
		if cached, ok := c.hotCache.Get(prefix); ok {
			log.Debugf("hot cache hit for prefix %q", prefix)
			return capped(cached, limit)
		}
	}

	words := c.trie.WordsWithPrefix(prefix)
	suggestions := make([]Suggestion, 0, len(words))
	for _, w := range words {
		suggestions = append(suggestions, Suggestion{
			Word:      w,
			Frequency: c.trie.Frequency(w),
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Frequency > suggestions[j].Frequency
	})

	if c.hotCache != nil {
		c.hotCache.Put(prefix, suggestions)
	}
	return capped(suggestions, limit)
}

func capped(s []Suggestion, limit int) []Suggestion {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

// Best returns the single greedy most-frequent suffix for prefix.
// With force set it suggests an extension even when prefix is already a
// complete word.
func (c *Completer) Best(prefix string, force bool) (string, bool) {
	if force {
		return c.trie.CompletionForced(prefix)
	}
	return c.trie.Completion(prefix)
}

// Contains reports whether prefix occurs in the stored words.
func (c *Completer) Contains(prefix string) bool {
	return c.trie.Contains(prefix)
}

// IsWord reports whether word was stored as a complete word.
func (c *Completer) IsWord(word string) bool {
	return c.trie.IsValid(word)
}

// Frequency returns the insertion count at the given path.
func (c *Completer) Frequency(path string) int {
	return c.trie.Frequency(path)
}

// LongestPrefix returns the longest stored word that prefixes s.
func (c *Completer) LongestPrefix(s string) string {
	return c.trie.LongestPrefix(s)
}

// Words lists stored words, all of them for an empty prefix.
func (c *Completer) Words(prefix string) []string {
	if prefix == "" {
		return c.trie.Words()
	}
	return c.trie.WordsWithPrefix(prefix)
}

// Stats returns counters for debugging and the server's info op.
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords":   c.totalWords,
		"maxFrequency": c.maxFrequency,
	}
	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
