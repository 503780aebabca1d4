package suggest

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache remembers ranked suggestion lists for recently served prefixes.
// Cached prefixes are mirrored into a patricia trie so that a word mutation
// can find every affected prefix with one VisitPrefixes walk instead of
// scanning the whole map. Eviction is LRU by a logical access counter.
type HotCache struct {
	entries     map[string][]Suggestion
	prefixes    *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxEntries  int
	mu          sync.RWMutex
}

// NewHotCache returns a cache bounded to maxEntries prefixes.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    make(map[string][]Suggestion, maxEntries),
		prefixes:   patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached suggestions for an exact prefix.
func (hc *HotCache) Get(prefix string) ([]Suggestion, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	cached, ok := hc.entries[prefix]
	if !ok {
		return nil, false
	}
	hc.hits++
	hc.markAccessed(prefix)
	return cached, true
}

// Put stores the suggestions served for prefix, evicting the least
// recently used entry when full.
func (hc *HotCache) Put(prefix string, suggestions []Suggestion) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, exists := hc.entries[prefix]; !exists && len(hc.entries) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries[prefix] = suggestions
	hc.prefixes.Insert(patricia.Prefix(prefix), len(suggestions))
	hc.markAccessed(prefix)
}

// InvalidateWord drops every cached prefix that word extends. Adding or
// removing a word only changes answers for prefixes of that word, so
// nothing else needs to go.
func (hc *HotCache) InvalidateWord(word string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var stale []string
	err := hc.prefixes.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, item patricia.Item) error {
		stale = append(stale, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("visiting cached prefixes: %v", err)
	}
	for _, p := range stale {
		hc.drop(p)
	}
	// the empty prefix never appears in the patricia walk
	if _, ok := hc.entries[""]; ok {
		hc.drop("")
	}
}

// Reset empties the cache.
func (hc *HotCache) Reset() {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.entries = make(map[string][]Suggestion, hc.maxEntries)
	hc.prefixes = patricia.NewTrie()
	hc.accessTime = make(map[string]int64, hc.maxEntries)
}

// Stats reports cache counters.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return map[string]int{
		"cachedPrefixes": len(hc.entries),
		"maxCacheSize":   hc.maxEntries,
		"cacheHits":      int(hc.hits),
	}
}

func (hc *HotCache) markAccessed(prefix string) {
	hc.accessCount++
	hc.accessTime[prefix] = hc.accessCount
}

func (hc *HotCache) drop(prefix string) {
	delete(hc.entries, prefix)
	delete(hc.accessTime, prefix)
	hc.prefixes.Delete(patricia.Prefix(prefix))
}

func (hc *HotCache) evictLRU() {
	var oldest string
	var oldestTime int64 = 1<<63 - 1

	for prefix, at := range hc.accessTime {
		if at < oldestTime {
			oldestTime = at
			oldest = prefix
		}
	}
	if _, ok := hc.entries[oldest]; ok {
		log.Debugf("evicting prefix %q from hot cache", oldest)
		hc.drop(oldest)
	}
}
