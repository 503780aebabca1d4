package trie

import (
	"fmt"
	"reflect"
	"testing"
)

// round trip: anything added must be found, both as a prefix and as a word
func TestAddAndLookup(t *testing.T) {
	words := []string{"he", "hello", "help", "cat", "car", "карта"}
	tr := New()
	for _, w := range words {
		tr.Add(w)
	}

	for _, w := range words {
		if !tr.Contains(w) {
			t.Errorf("Contains(%q) = false after Add", w)
		}
		if !tr.IsValid(w) {
			t.Errorf("IsValid(%q) = false after Add", w)
		}
	}

	// interior prefixes are contained but not valid words
	for _, p := range []string{"h", "hel", "ca", "кар"} {
		if !tr.Contains(p) {
			t.Errorf("Contains(%q) = false for stored prefix", p)
		}
		if tr.IsValid(p) {
			t.Errorf("IsValid(%q) = true for non-word prefix", p)
		}
	}

	if tr.Contains("dog") || tr.IsValid("dog") {
		t.Error("found word that was never added")
	}
	if tr.Contains("helper") {
		t.Error("Contains matched past a stored word's end")
	}
}

func TestFrequencyCountsInsertions(t *testing.T) {
	tr := New()
	for i := 0; i < 3; i++ {
		tr.Add("car")
	}
	tr.Add("cat")

	tests := []struct {
		path string
		want int
	}{
		{"c", 4},  // both words pass through
		{"ca", 4}, // interior node, still counted
		{"car", 3},
		{"cat", 1},
		{"card", 0}, // missing path
		{"", 0},     // root carries no count
		{"x", 0},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("freq_%q", tc.path), func(t *testing.T) {
			if got := tr.Frequency(tc.path); got != tc.want {
				t.Errorf("Frequency(%q) = %d, want %d", tc.path, got, tc.want)
			}
		})
	}
}

func TestAddN(t *testing.T) {
	tr := New()
	tr.AddN("car", 3)
	tr.Add("cat")

	if got := tr.Frequency("car"); got != 3 {
		t.Errorf("Frequency(car) = %d, want 3", got)
	}
	if got := tr.Frequency("ca"); got != 4 {
		t.Errorf("Frequency(ca) = %d, want 4", got)
	}
	if s, ok := tr.Completion("ca"); !ok || s != "r" {
		t.Errorf("Completion(ca) = %q, %v; want \"r\", true", s, ok)
	}

	before := tr.Frequency("car")
	tr.AddN("car", 0)
	tr.AddN("car", -5)
	if got := tr.Frequency("car"); got != before {
		t.Errorf("AddN with n < 1 changed frequency: %d -> %d", before, got)
	}
}

func TestLongestPrefix(t *testing.T) {
	tr := New()
	tr.Add("he")
	tr.Add("hello")

	tests := []struct {
		in   string
		want string
	}{
		{"help", "he"},     // stops where the path dies, keeps deepest word
		{"hello", "hello"}, // the word itself
		{"hell", "he"},
		{"h", ""},
		{"xyz", ""}, // no path at all
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("lp_%q", tc.in), func(t *testing.T) {
			if got := tr.LongestPrefix(tc.in); got != tc.want {
				t.Errorf("LongestPrefix(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	tr := New()
	tr.Add("cat")
	tr.Add("car")
	tr.Add("car")
	tr.Add("car")

	// most frequent branch wins
	if s, ok := tr.Completion("ca"); !ok || s != "r" {
		t.Errorf("Completion(ca) = %q, %v; want \"r\", true", s, ok)
	}

	// a complete word gets no suggestion unless forced
	if s, ok := tr.Completion("car"); ok {
		t.Errorf("Completion(car) = %q, want no suggestion for complete word", s)
	}
	if _, ok := tr.CompletionForced("car"); ok {
		t.Error("CompletionForced(car) suggested although car has no children")
	}

	// unknown prefix
	if _, ok := tr.Completion("zz"); ok {
		t.Error("Completion(zz) suggested for missing path")
	}

	// forced variant extends past a word boundary
	tr.Add("carpet")
	if s, ok := tr.CompletionForced("car"); !ok || s != "pet" {
		t.Errorf("CompletionForced(car) = %q, %v; want \"pet\", true", s, ok)
	}
	if s, ok := tr.Completion("car"); ok {
		t.Errorf("Completion(car) = %q, want no suggestion for complete word", s)
	}
}

// multi step greedy walk: the chain follows each node's own most frequent
// child and stops at the first word end
func TestCompletionStopsAtFirstWord(t *testing.T) {
	tr := New()
	tr.Add("inter")
	tr.Add("internal")
	tr.Add("internal")

	if s, ok := tr.Completion("in"); !ok || s != "ter" {
		t.Errorf("Completion(in) = %q, %v; want \"ter\", true", s, ok)
	}
}

// ties keep the first child that reached the maximum
func TestCompletionTieBreak(t *testing.T) {
	tr := New()
	tr.Add("cat")
	tr.Add("car")

	// both children of "ca" sit at frequency 1; "t" got there first
	if s, ok := tr.Completion("ca"); !ok || s != "t" {
		t.Errorf("Completion(ca) = %q, %v; want first inserted \"t\", true", s, ok)
	}

	// a strictly greater count displaces the holder
	tr.Add("car")
	if s, ok := tr.Completion("ca"); !ok || s != "r" {
		t.Errorf("Completion(ca) = %q, %v; want \"r\", true", s, ok)
	}

	// pulling back level again must not give the slot back
	tr.Add("cat")
	if s, ok := tr.Completion("ca"); !ok || s != "r" {
		t.Errorf("Completion(ca) after re-tie = %q, %v; want \"r\", true", s, ok)
	}
}

func TestRemovePrunesDeadBranch(t *testing.T) {
	tr := New()
	tr.Add("hello")
	tr.Add("he")

	tr.Remove("hello")

	if tr.IsValid("hello") {
		t.Error("hello still valid after Remove")
	}
	if tr.Contains("hel") || tr.Contains("hell") {
		t.Error("dead branch below \"he\" was not pruned")
	}
	if !tr.IsValid("he") {
		t.Error("Remove(hello) disturbed the word \"he\"")
	}

	tr.Remove("he")
	if tr.Contains("h") {
		t.Error("whole branch should be gone after removing both words")
	}
}

func TestRemoveKeepsSharedStructure(t *testing.T) {
	tr := New()
	tr.Add("cat")
	tr.Add("car")

	tr.Remove("cat")

	if tr.Contains("cat") {
		t.Error("cat not removed")
	}
	if !tr.IsValid("car") || !tr.Contains("ca") {
		t.Error("removing cat disturbed car")
	}
}

// removing an interior word keeps the node while children still hang off it
func TestRemoveInteriorWord(t *testing.T) {
	tr := New()
	tr.Add("he")
	tr.Add("hello")

	tr.Remove("he")

	if tr.IsValid("he") {
		t.Error("he still valid after Remove")
	}
	if !tr.Contains("he") {
		t.Error("interior node pruned although hello still needs it")
	}
	if !tr.IsValid("hello") {
		t.Error("hello lost")
	}
}

func TestRemoveIdempotent(t *testing.T) {
	tr := New()
	tr.Add("word")
	tr.Remove("word")
	tr.Remove("word") // second call is a no-op
	tr.Remove("never-added")

	if tr.Contains("w") {
		t.Error("branch not pruned")
	}
	if got := tr.Words(); len(got) != 0 {
		t.Errorf("Words() = %v, want empty", got)
	}
}

// detaching the cached most frequent child must not leave the cache
// dangling; completion has to fall back to the survivors
func TestRemoveRepairsMostFrequent(t *testing.T) {
	tr := New()
	tr.Add("car")
	tr.Add("car")
	tr.Add("cat")

	tr.Remove("car")

	if s, ok := tr.Completion("ca"); !ok || s != "t" {
		t.Errorf("Completion(ca) = %q, %v after removing car; want \"t\", true", s, ok)
	}
}

func TestWords(t *testing.T) {
	tr := New()
	for _, w := range []string{"car", "cat", "card", "dog", "do"} {
		tr.Add(w)
	}

	want := []string{"car", "card", "cat", "do", "dog"}
	if got := tr.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"ca", []string{"car", "card", "cat"}},
		{"car", []string{"car", "card"}},
		{"do", []string{"do", "dog"}},
		{"x", []string{}},
		{"", want},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("prefix_%q", tc.prefix), func(t *testing.T) {
			if got := tr.WordsWithPrefix(tc.prefix); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("WordsWithPrefix(%q) = %v, want %v", tc.prefix, got, tc.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	tr := New()
	tr.Add("hello")
	tr.Add("world")
	tr.Clear()

	if tr.Contains("h") || tr.IsValid("hello") {
		t.Error("lookup found data after Clear")
	}
	if got := tr.Frequency("hello"); got != 0 {
		t.Errorf("Frequency(hello) = %d after Clear, want 0", got)
	}
	if got := tr.Words(); len(got) != 0 {
		t.Errorf("Words() = %v after Clear, want empty", got)
	}
	if _, ok := tr.Completion(""); ok {
		t.Error("Completion on cleared trie suggested something")
	}

	// a cleared trie behaves like a fresh one
	tr.Add("again")
	if !tr.IsValid("again") {
		t.Error("trie unusable after Clear")
	}
}

func TestEmptyString(t *testing.T) {
	tr := New()

	if tr.IsValid("") {
		t.Error("empty string valid before any Add")
	}
	if !tr.Contains("") {
		t.Error("root path should always be contained")
	}

	tr.Add("")
	if !tr.IsValid("") {
		t.Error("empty string not valid after Add(\"\")")
	}

	words := tr.Words()
	if len(words) != 1 || words[0] != "" {
		t.Errorf("Words() = %v, want the empty string", words)
	}

	// completion at the root follows the same rules as any other node
	if _, ok := tr.Completion(""); ok {
		t.Error("Completion(\"\") suggested although root is a word and has no children")
	}

	tr.Add("a")
	if s, ok := tr.CompletionForced(""); !ok || s != "a" {
		t.Errorf("CompletionForced(\"\") = %q, %v; want \"a\", true", s, ok)
	}

	tr.Remove("")
	if tr.IsValid("") {
		t.Error("empty string still valid after Remove(\"\")")
	}
	if !tr.IsValid("a") {
		t.Error("Remove(\"\") disturbed other words")
	}
}

func TestString(t *testing.T) {
	tr := New()
	tr.Add("he")
	tr.Add("hi")

	// level by level: h, then its two children in rune order
	if got := tr.String(); got != "hei" {
		t.Errorf("String() = %q, want %q", got, "hei")
	}

	if got := New().String(); got != "" {
		t.Errorf("String() on empty trie = %q, want empty", got)
	}
}

func BenchmarkAdd(b *testing.B) {
	words := make([]string, 1000)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := New()
		for _, w := range words {
			tr.Add(w)
		}
	}
}

func BenchmarkCompletion(b *testing.B) {
	tr := New()
	for i := 0; i < 1000; i++ {
		tr.AddN(fmt.Sprintf("word%d", i), i%50+1)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Completion("wor")
	}
}
