// Package suggest ranks the frequency trie's completions and caches the
// hot prefixes between requests.
package suggest

// ICompleter is the surface the server and CLI program against.
type ICompleter interface {
	// Complete returns ranked suggestions for a prefix, capped at limit
	Complete(prefix string, limit int) []Suggestion

	// Best returns the single greedy most-frequent suffix
	Best(prefix string, force bool) (string, bool)

	// AddWord inserts a word with an insertion count
	AddWord(word string, count int)

	// RemoveWord deletes a word and prunes its branch
	RemoveWord(word string)

	// Clear drops every stored word
	Clear()

	Contains(prefix string) bool
	IsWord(word string) bool
	Frequency(path string) int
	LongestPrefix(s string) string
	Words(prefix string) []string

	// Stats returns counters about the stored words and cache
	Stats() map[string]int
}
