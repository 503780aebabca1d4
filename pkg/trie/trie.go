/*
Package trie implements a character-indexed prefix tree with per-insertion
frequency counts.

Every node tracks how many inserted strings passed through it and caches
which of its children currently has the highest count. The cache makes the
greedy most-frequent completion an O(depth) pointer chase instead of a
rescan of every child on the way down.

Lookups walk iteratively so stack usage stays flat no matter how long the
input is. Removal is the one genuinely recursive operation: each frame
reports back whether its node became dead so the parent can detach it.
*/
package trie

import (
	"sort"
	"strings"
)

// noChild is the sentinel for an unset mostFrequent cache.
const noChild rune = 0

type node struct {
	children     map[rune]*node
	terminal     bool
	frequency    int
	mostFrequent rune
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// sortedKeys returns the node's child runes in ascending order so that
// enumeration and display are deterministic.
func (n *node) sortedKeys() []rune {
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// bump adds w insertions to the child at r and refreshes the cache.
// Only a strictly greater count displaces the current holder, so the first
// child to reach a given maximum keeps the slot on ties.
func (n *node) bump(r rune, w int) {
	child := n.children[r]
	child.frequency += w
	if n.mostFrequent == noChild || n.children[n.mostFrequent].frequency < child.frequency {
		n.mostFrequent = r
	}
}

// recomputeMostFrequent rebuilds the cache after a child was detached.
// The original insertion order is gone at this point, so ties fall back to
// the smallest rune, which keeps the result deterministic.
func (n *node) recomputeMostFrequent() {
	n.mostFrequent = noChild
	for _, r := range n.sortedKeys() {
		if n.mostFrequent == noChild || n.children[n.mostFrequent].frequency < n.children[r].frequency {
			n.mostFrequent = r
		}
	}
}

// Trie is a rooted prefix tree. The zero value is not usable; call New.
//
// The structure is not safe for concurrent mutation; callers that share a
// Trie across goroutines must serialize access themselves.
type Trie struct {
	root *node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// Add inserts s, incrementing the frequency of every node along its path
// and marking the final node as a complete word. Inserting the same string
// again counts as another insertion, not a no-op.
func (t *Trie) Add(s string) {
	t.AddN(s, 1)
}

// AddN inserts s with weight n, equivalent to calling Add n times.
// n < 1 is a no-op.
func (t *Trie) AddN(s string, n int) {
	if n < 1 {
		return
	}
	cur := t.root
	for _, r := range s {
		if _, ok := cur.children[r]; !ok {
			cur.children[r] = newNode()
		}
		cur.bump(r, n)
		cur = cur.children[r]
	}
	cur.terminal = true
}

// Remove deletes one word from the trie. Nodes left behind with no children
// and no word ending at them are pruned on the way back up. Removing a
// string that was never added changes nothing.
func (t *Trie) Remove(s string) {
	t.remove(t.root, []rune(s), 0)
}

// remove reports whether the node at arr[:i] should be kept by its parent.
// The root is kept unconditionally by Remove.
func (t *Trie) remove(cur *node, arr []rune, i int) bool {
	if i == len(arr) {
		if cur.terminal {
			cur.terminal = false
			if len(cur.children) == 0 {
				return false
			}
		}
		return true
	}
	r := arr[i]
	child, ok := cur.children[r]
	if !ok {
		// not stored, nothing to prune
		return true
	}
	if !t.remove(child, arr, i+1) {
		delete(cur.children, r)
		if cur.mostFrequent == r {
			cur.recomputeMostFrequent()
		}
	}
	if !cur.terminal && len(cur.children) == 0 {
		return false
	}
	return true
}

// Clear detaches every stored word, collapsing back to an empty root.
func (t *Trie) Clear() {
	t.root = newNode()
}

// get resolves the node at the end of s, or nil if any step is missing.
func (t *Trie) get(s string) *node {
	cur := t.root
	for _, r := range s {
		cur = cur.children[r]
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Contains reports whether s occurs in the trie as a prefix of some stored
// word. It does not require s itself to be a stored word.
func (t *Trie) Contains(s string) bool {
	return t.get(s) != nil
}

// IsValid reports whether s was stored as a complete word.
func (t *Trie) IsValid(s string) bool {
	n := t.get(s)
	return n != nil && n.terminal
}

// Frequency returns how many insertions passed through the node at s,
// or 0 when no such node exists. Interior nodes carry meaningful counts
// too: the count of every stored word they prefix.
func (t *Trie) Frequency(s string) int {
	n := t.get(s)
	if n == nil {
		return 0
	}
	return n.frequency
}

// LongestPrefix returns the longest stored word that prefixes s, walking s
// left to right and stopping at the first missing node. Empty when no
// stored word prefixes s.
func (t *Trie) LongestPrefix(s string) string {
	runes := []rune(s)
	length := 0
	cur := t.root
	for i, r := range runes {
		cur = cur.children[r]
		if cur == nil {
			break
		}
		if cur.terminal {
			length = i + 1
		}
	}
	return string(runes[:length])
}

// Completion returns the most frequent suffix extending s, following the
// cached most-frequent child at each node until a word ends. It reports
// ok=false when s is not in the trie, when s is already a complete word,
// or when nothing extends it.
func (t *Trie) Completion(s string) (string, bool) {
	return t.completion(s, false)
}

// CompletionForced is Completion except it still suggests an extension
// when s itself is already a complete word.
func (t *Trie) CompletionForced(s string) (string, bool) {
	return t.completion(s, true)
}

func (t *Trie) completion(s string, force bool) (string, bool) {
	cur := t.get(s)
	if cur == nil {
		return "", false
	}
	if (cur.terminal && !force) || cur.mostFrequent == noChild {
		return "", false
	}
	var b strings.Builder
	for {
		r := cur.mostFrequent
		b.WriteRune(r)
		cur = cur.children[r]
		if cur.terminal {
			return b.String(), true
		}
	}
}

// Words returns every stored word in depth-first order, children visited
// in ascending rune order.
func (t *Trie) Words() []string {
	return t.collect(t.root, []rune(nil), []string{})
}

// WordsWithPrefix returns every stored word starting with prefix, in the
// same order as Words. A prefix with no matching node yields nothing.
func (t *Trie) WordsWithPrefix(prefix string) []string {
	n := t.get(prefix)
	if n == nil {
		return []string{}
	}
	return t.collect(n, []rune(prefix), []string{})
}

func (t *Trie) collect(cur *node, path []rune, out []string) []string {
	if cur.terminal {
		out = append(out, string(path))
	}
	for _, r := range cur.sortedKeys() {
		out = t.collect(cur.children[r], append(path, r), out)
	}
	return out
}

// String renders every edge rune in breadth-first queue order. Debug
// display only; the output carries no structural information.
func (t *Trie) String() string {
	var b strings.Builder
	queue := []*node{t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, r := range cur.sortedKeys() {
			b.WriteRune(r)
			queue = append(queue, cur.children[r])
		}
	}
	return b.String()
}
