// Package cli handles interactive stdin input for testing and debugging
// the completion engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"trieserve/internal/logger"
	"trieserve/internal/utils"
	"trieserve/pkg/suggest"
)

// InputHandler reads prefixes from stdin and prints ranked suggestions.
// Lines starting with ':' are meta commands that mutate or inspect the
// trie directly.
type InputHandler struct {
	completer       suggest.ICompleter
	out             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		out:             logger.NewWithConfig("cli", log.InfoLevel, false, false, log.TextFormatter),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop. Each line is either a prefix to
// complete or a ':' meta command. The loop ends on stream EOF.
func (h *InputHandler) Start() error {
	log.Print("trieserve CLI")
	log.Print("type a prefix and press Enter for suggestions (Ctrl+C to exit)")
	log.Print("meta commands: :add w [n]  :rm w  :freq w  :lp s  :words [p]  :stats  :clear")

	reader := bufio.NewReader(os.Stdin)
	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			h.handleCommand(line)
			continue
		}
		h.handleInput(line)
	}
}

// handleCommand dispatches a ':' meta command.
func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case ":add":
		if len(args) < 1 {
			log.Error("usage: :add word [count]")
			return
		}
		count := 1
		if len(args) > 1 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				log.Errorf("bad count %q: %v", args[1], err)
				return
			}
			count = parsed
		}
		h.completer.AddWord(args[0], count)
		h.out.Printf("added %q x%d (freq now %d)", args[0], count, h.completer.Frequency(args[0]))
	case ":rm":
		if len(args) < 1 {
			log.Error("usage: :rm word")
			return
		}
		h.completer.RemoveWord(args[0])
		h.out.Printf("removed %q", args[0])
	case ":freq":
		if len(args) < 1 {
			log.Error("usage: :freq word")
			return
		}
		h.out.Printf("%q freq: %s (word: %v)", args[0],
			utils.FormatWithCommas(h.completer.Frequency(args[0])), h.completer.IsWord(args[0]))
	case ":lp":
		if len(args) < 1 {
			log.Error("usage: :lp string")
			return
		}
		h.out.Printf("longest prefix of %q: %q", args[0], h.completer.LongestPrefix(args[0]))
	case ":words":
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		words := h.completer.Words(prefix)
		h.out.Printf("%d words:", len(words))
		for _, w := range words {
			h.out.Printf("  %s", w)
		}
	case ":stats":
		for k, v := range h.completer.Stats() {
			h.out.Printf("%s: %s", k, utils.FormatWithCommas(v))
		}
	case ":clear":
		h.completer.Clear()
		h.out.Print("cleared")
	default:
		log.Errorf("unknown command: %s", cmd)
	}
}

// handleInput processes a single prefix to generate suggestions.
func (h *InputHandler) handleInput(prefix string) {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("prefix too long: %s", prefix)
		return
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		log.Infof("no results found for prefix: %q", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	elapsed := time.Since(start)
	log.Debugf("took [ %v ] for prefix %q", elapsed, prefix)

	if len(suggestions) == 0 {
		log.Warnf("no suggestions found for prefix: %q", prefix)
		return
	}

	if best, ok := h.completer.Best(prefix, false); ok {
		h.out.Printf("greedy completion: %s\033[38;5;75m%s\033[0m", prefix, best)
	}

	h.out.Printf("found %d suggestions for prefix %q:", len(suggestions), prefix)
	for i, s := range suggestions {
		fmtFreq := utils.FormatWithCommas(s.Frequency)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		h.out.Printf("%2d. %-40s (freq: %8s)", i+1, clWord, fmtFreq)
	}
}
