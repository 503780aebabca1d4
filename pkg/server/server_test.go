package server

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"trieserve/pkg/config"
	"trieserve/pkg/suggest"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// runFrames feeds requests through a fresh server and returns a decoder
// positioned after the ready frame.
func runFrames(t *testing.T, completer suggest.ICompleter, requests []Request) *msgpack.Decoder {
	t.Helper()

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatal(err)
		}
	}

	srv := NewServerIO(completer, config.DefaultConfig(), &in, &out)
	if err := srv.Start(); err != nil && err != io.EOF {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready Ack
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("missing ready frame: %v %+v", err, ready)
	}
	return dec
}

func decode[T any](t *testing.T, dec *msgpack.Decoder) T {
	t.Helper()
	var v T
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func seeded() *suggest.Completer {
	c := suggest.NewCompleter()
	c.AddWord("car", 3)
	c.AddWord("cat", 1)
	c.AddWord("card", 2)
	return c
}

func TestCompleteOp(t *testing.T) {
	dec := runFrames(t, seeded(), []Request{
		{ID: "r1", Op: "complete", Prefix: "ca", Limit: 10},
	})

	resp := decode[CompleteResponse](t, dec)
	if resp.ID != "r1" {
		t.Errorf("ID = %q, want r1", resp.ID)
	}
	if resp.Count != 3 {
		t.Fatalf("Count = %d, want 3", resp.Count)
	}
	if resp.Suggestions[0].Word != "car" || resp.Suggestions[0].Rank != 1 {
		t.Errorf("top suggestion = %+v, want car at rank 1", resp.Suggestions[0])
	}
	if resp.Suggestions[2].Word != "cat" || resp.Suggestions[2].Rank != 3 {
		t.Errorf("last suggestion = %+v, want cat at rank 3", resp.Suggestions[2])
	}
}

func TestSuggestOp(t *testing.T) {
	dec := runFrames(t, seeded(), []Request{
		{ID: "s1", Op: "suggest", Prefix: "ca"},
		{ID: "s2", Op: "suggest", Prefix: "car"},
		{ID: "s3", Op: "suggest", Prefix: "car", Force: true},
	})

	if resp := decode[SuggestResponse](t, dec); !resp.OK || resp.Suffix != "r" {
		t.Errorf("suggest(ca) = %+v, want r", resp)
	}
	if resp := decode[SuggestResponse](t, dec); resp.OK {
		t.Errorf("suggest(car) = %+v, want no suggestion for complete word", resp)
	}
	if resp := decode[SuggestResponse](t, dec); !resp.OK || resp.Suffix != "d" {
		t.Errorf("suggest(car, force) = %+v, want d", resp)
	}
}

func TestLookupOps(t *testing.T) {
	dec := runFrames(t, seeded(), []Request{
		{ID: "l1", Op: "contains", Word: "ca"},
		{ID: "l2", Op: "is_word", Word: "ca"},
		{ID: "l3", Op: "is_word", Word: "card"},
		{ID: "l4", Op: "freq", Word: "ca"},
		{ID: "l5", Op: "longest_prefix", Prefix: "cards"},
		{ID: "l6", Op: "words", Prefix: "car"},
	})

	if resp := decode[BoolResponse](t, dec); !resp.Value {
		t.Error("contains(ca) = false")
	}
	if resp := decode[BoolResponse](t, dec); resp.Value {
		t.Error("is_word(ca) = true")
	}
	if resp := decode[BoolResponse](t, dec); !resp.Value {
		t.Error("is_word(card) = false")
	}
	if resp := decode[IntResponse](t, dec); resp.Value != 6 {
		t.Errorf("freq(ca) = %d, want 6", resp.Value)
	}
	if resp := decode[StringResponse](t, dec); resp.Value != "card" {
		t.Errorf("longest_prefix(cards) = %q, want card", resp.Value)
	}
	resp := decode[WordsResponse](t, dec)
	if resp.Count != 2 || resp.Words[0] != "car" || resp.Words[1] != "card" {
		t.Errorf("words(car) = %+v, want [car card]", resp)
	}
}

func TestMutatingOps(t *testing.T) {
	c := seeded()
	dec := runFrames(t, c, []Request{
		{ID: "m1", Op: "add", Word: "dog", Count: 5},
		{ID: "m2", Op: "remove", Word: "cat"},
		{ID: "m3", Op: "clear"},
	})

	for _, id := range []string{"m1", "m2", "m3"} {
		if resp := decode[Ack](t, dec); resp.ID != id || resp.Status != "ok" {
			t.Errorf("ack = %+v, want ok for %s", resp, id)
		}
	}
	if got := c.Words(""); len(got) != 0 {
		t.Errorf("words after clear = %v", got)
	}
}

func TestAddDefaultsCountToOne(t *testing.T) {
	c := suggest.NewCompleter()
	runFrames(t, c, []Request{
		{ID: "a1", Op: "add", Word: "solo"},
	})
	if got := c.Frequency("solo"); got != 1 {
		t.Errorf("freq(solo) = %d, want 1", got)
	}
}

func TestRejectsBadRequests(t *testing.T) {
	longPrefix := make([]byte, 61)
	for i := range longPrefix {
		longPrefix[i] = 'a'
	}

	dec := runFrames(t, seeded(), []Request{
		{ID: "b1", Op: "frobnicate"},
		{ID: "b2", Op: "complete", Prefix: string(longPrefix)},
		{ID: "b3", Op: "complete", Prefix: ""},
	})

	if resp := decode[ErrorFrame](t, dec); resp.Code != 400 || resp.ID != "b1" {
		t.Errorf("unknown op frame = %+v", resp)
	}
	if resp := decode[ErrorFrame](t, dec); resp.Code != 400 || resp.ID != "b2" {
		t.Errorf("long prefix frame = %+v", resp)
	}
	if resp := decode[ErrorFrame](t, dec); resp.Code != 400 || resp.ID != "b3" {
		t.Errorf("short prefix frame = %+v", resp)
	}
}

// the default filter swallows noise prefixes instead of erroring
func TestFilteredPrefixReturnsEmpty(t *testing.T) {
	dec := runFrames(t, seeded(), []Request{
		{ID: "f1", Op: "complete", Prefix: "12345"},
	})

	resp := decode[CompleteResponse](t, dec)
	if resp.ID != "f1" || resp.Count != 0 || len(resp.Suggestions) != 0 {
		t.Errorf("filtered response = %+v, want empty", resp)
	}
}

func TestHealthAndStats(t *testing.T) {
	dec := runFrames(t, seeded(), []Request{
		{ID: "h1", Op: "health"},
		{ID: "h2", Op: "stats"},
	})

	if resp := decode[Ack](t, dec); resp.Status != "ok" {
		t.Errorf("health = %+v", resp)
	}
	resp := decode[StatsResponse](t, dec)
	if resp.Stats["totalWords"] != 3 {
		t.Errorf("stats = %+v, want totalWords 3", resp.Stats)
	}
}
