package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"trieserve/internal/utils"
	"trieserve/pkg/config"
	"trieserve/pkg/suggest"
)

// Server decodes request frames from a stream and answers each one with a
// single response frame. Requests are processed synchronously in arrival
// order.
type Server struct {
	completer suggest.ICompleter
	cfg       *config.Config
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
	requests  int
}

// NewServer returns a server bound to stdin/stdout.
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServerIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerIO binds the server to an arbitrary stream pair.
func NewServerIO(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		completer: completer,
		cfg:       cfg,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
	}
}

// Start processes frames until the stream ends.
func (s *Server) Start() error {
	log.Debug("starting IPC server")
	s.send(Ack{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("client disconnected")
				return nil
			}
			log.Errorf("decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	s.requests++

	switch req.Op {
	case "complete":
		s.handleComplete(req)
	case "suggest":
		s.handleSuggest(req)
	case "add":
		s.handleAdd(req)
	case "remove":
		s.completer.RemoveWord(req.Word)
		s.send(Ack{ID: req.ID, Status: "ok"})
	case "clear":
		s.completer.Clear()
		s.send(Ack{ID: req.ID, Status: "ok"})
	case "contains":
		s.send(BoolResponse{ID: req.ID, Value: s.completer.Contains(req.Word)})
	case "is_word":
		s.send(BoolResponse{ID: req.ID, Value: s.completer.IsWord(req.Word)})
	case "freq":
		s.send(IntResponse{ID: req.ID, Value: s.completer.Frequency(req.Word)})
	case "longest_prefix":
		s.send(StringResponse{ID: req.ID, Value: s.completer.LongestPrefix(req.Prefix)})
	case "words":
		words := s.completer.Words(req.Prefix)
		s.send(WordsResponse{ID: req.ID, Words: words, Count: len(words)})
	case "stats":
		s.send(StatsResponse{ID: req.ID, Stats: s.completer.Stats()})
	case "health":
		s.send(Ack{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleComplete(req Request) {
	prefix := req.Prefix
	srv := s.cfg.Server

	if len(prefix) < srv.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", srv.MinPrefix), 400)
		return
	}
	if len(prefix) > srv.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", srv.MaxPrefix), 400)
		return
	}
	if srv.EnableFilter && !utils.IsValidInput(prefix) {
		log.Debugf("filtered prefix %q", prefix)
		s.send(CompleteResponse{ID: req.ID, Suggestions: []Suggestion{}})
		return
	}

	limit := req.Limit
	if limit < 1 || limit > srv.MaxLimit {
		limit = srv.MaxLimit
	}

	start := time.Now()
	results := s.completer.Complete(prefix, limit)
	elapsed := time.Since(start)

	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = Suggestion{
			Word:      r.Word,
			Frequency: r.Frequency,
			Rank:      uint16(i + 1),
		}
	}
	s.send(CompleteResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleSuggest(req Request) {
	if len(req.Prefix) > s.cfg.Server.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		return
	}
	suffix, ok := s.completer.Best(req.Prefix, req.Force)
	s.send(SuggestResponse{ID: req.ID, Suffix: suffix, OK: ok})
}

func (s *Server) handleAdd(req Request) {
	count := req.Count
	if count < 1 {
		count = 1
	}
	s.completer.AddWord(req.Word, count)
	s.send(Ack{ID: req.ID, Status: "ok"})
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorFrame{ID: id, Error: message, Code: code})
}
