/*
Package server implements msgpack IPC for the frequency trie.

The protocol is request/response over stdin/stdout: clients write binary
msgpack frames and read one response frame per request. Every frame carries
an ID the response echoes back, plus an op selecting the operation.

# Ops

	complete        {id, op, p, l}    ranked suggestions under a prefix
	suggest         {id, op, p, f}    single greedy most-frequent suffix
	add             {id, op, w, n}    insert a word n times (n defaults to 1)
	remove          {id, op, w}       delete a word, pruning its branch
	clear           {id, op}          drop every stored word
	contains        {id, op, w}       prefix membership, word or not
	is_word         {id, op, w}       whole-word membership
	freq            {id, op, w}       insertion count at a path
	longest_prefix  {id, op, p}       longest stored word prefixing p
	words           {id, op, p}       stored words, all when p is empty
	stats           {id, op}          word and cache counters
	health          {id, op}          liveness check

A completion request and its response look like:

	{"id": "req_001", "op": "complete", "p": "ame", "l": 24}
	{"id": "req_001", "s": [{"w": "america", "f": 312, "r": 1}], "c": 1, "t": 145}

Unknown ops and invalid parameters produce an error frame:

	{"id": "req_002", "e": "unknown op: foo", "c": 400}

Prefix length limits and the suggestion cap come from the server section of
the TOML config. Timing is reported in microseconds.
*/
package server

// Request is the single frame shape for every op; unused fields are
// omitted on the wire.
type Request struct {
	ID     string `msgpack:"id"`
	Op     string `msgpack:"op"`
	Prefix string `msgpack:"p,omitempty"`
	Word   string `msgpack:"w,omitempty"`
	Count  int    `msgpack:"n,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Force  bool   `msgpack:"f,omitempty"`
}

// Suggestion is one ranked candidate in a complete response.
type Suggestion struct {
	Word      string `msgpack:"w"`
	Frequency int    `msgpack:"f"`
	Rank      uint16 `msgpack:"r"`
}

// CompleteResponse answers the complete op.
type CompleteResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// SuggestResponse answers the suggest op; OK is false when nothing
// extends the prefix.
type SuggestResponse struct {
	ID     string `msgpack:"id"`
	Suffix string `msgpack:"v"`
	OK     bool   `msgpack:"ok"`
}

// BoolResponse answers contains and is_word.
type BoolResponse struct {
	ID    string `msgpack:"id"`
	Value bool   `msgpack:"v"`
}

// IntResponse answers freq.
type IntResponse struct {
	ID    string `msgpack:"id"`
	Value int    `msgpack:"v"`
}

// StringResponse answers longest_prefix.
type StringResponse struct {
	ID    string `msgpack:"id"`
	Value string `msgpack:"v"`
}

// WordsResponse answers the words op.
type WordsResponse struct {
	ID    string   `msgpack:"id"`
	Words []string `msgpack:"words"`
	Count int      `msgpack:"c"`
}

// StatsResponse answers the stats op.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// Ack acknowledges mutating ops.
type Ack struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorFrame reports a rejected request.
type ErrorFrame struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
