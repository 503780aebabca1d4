/*
Package dictionary loads word frequency data into a completer.

Two layouts are supported: plain text files with one "word count" pair per
line, and a little-endian binary format produced by WriteBinary. A data
directory may hold several binary chunks named dict_0001.bin, dict_0002.bin
and so on; chunks load in ascending ID order until the word budget runs out.
*/
package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// WordSink receives decoded dictionary entries; *suggest.Completer
// satisfies it.
type WordSink interface {
	AddWord(word string, count int)
}

// Entry is a single decoded word with its insertion count.
type Entry struct {
	Word  string
	Count int
}

// ChunkInfo describes one chunk file found in a data directory.
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// LoaderStats summarizes what a load pass did.
type LoaderStats struct {
	TotalWords   int
	SkippedLines int
	LoadedChunks int
	MaxCount     int
}

// Loader reads dictionary files into a sink, skipping entries below
// MinCount and stopping once MaxWords entries loaded (0 means unlimited).
type Loader struct {
	MinCount int
	MaxWords int
}

// LoadFile loads a single dictionary file, dispatching on its format.
func (l *Loader) LoadFile(filename string, sink WordSink) (LoaderStats, error) {
	var stats LoaderStats

	format := DetectFormat(filename)
	if format == FormatUnknown {
		return stats, fmt.Errorf("unsupported dictionary file: %s", filename)
	}
	if err := ValidateFormat(filename, format); err != nil {
		return stats, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return stats, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	switch format {
	case FormatBinary:
		err = l.loadBinary(file, sink, &stats)
	case FormatText:
		err = l.loadText(file, sink, &stats)
	}
	if err != nil {
		return stats, fmt.Errorf("loading %s: %w", filename, err)
	}

	log.Debugf("loaded %d words from %s (%d lines skipped)",
		stats.TotalWords, filename, stats.SkippedLines)
	return stats, nil
}

// LoadDir loads every dict_*.bin chunk under dirPath in chunk ID order.
func (l *Loader) LoadDir(dirPath string, sink WordSink) (LoaderStats, error) {
	var stats LoaderStats

	chunks, err := AvailableChunks(dirPath)
	if err != nil {
		return stats, err
	}
	if len(chunks) == 0 {
		return stats, fmt.Errorf("no dictionary chunks found in %s", dirPath)
	}

	for _, chunk := range chunks {
		if l.MaxWords > 0 && stats.TotalWords >= l.MaxWords {
			break
		}
		chunkStats, err := l.LoadFile(chunk.Filename, sink)
		if err != nil {
			log.Warnf("skipping chunk %s: %v", chunk.Filename, err)
			continue
		}
		stats.TotalWords += chunkStats.TotalWords
		stats.SkippedLines += chunkStats.SkippedLines
		if chunkStats.MaxCount > stats.MaxCount {
			stats.MaxCount = chunkStats.MaxCount
		}
		stats.LoadedChunks++
	}
	return stats, nil
}

// AvailableChunks scans a directory for chunk files, sorted by chunk ID.
func AvailableChunks(dirPath string) ([]ChunkInfo, error) {
	pattern := filepath.Join(dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Warnf("ignoring file with malformed chunk name: %s", basename)
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("failed to read word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ChunkID < chunks[j].ChunkID })
	return chunks, nil
}

func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var count int32
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	return int(count), nil
}

// loadText parses "word count" lines; a bare word counts once. Malformed
// counts are logged and the line skipped.
func (l *Loader) loadText(r io.Reader, sink WordSink, stats *LoaderStats) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if l.MaxWords > 0 && stats.TotalWords >= l.MaxWords {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		count := 1
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil {
				log.Warnf("skipping malformed line %q: %v", line, err)
				stats.SkippedLines++
				continue
			}
			count = parsed
		}
		l.deliver(fields[0], count, sink, stats)
	}
	return scanner.Err()
}

// loadBinary decodes count-prefixed entries: uint32 count, uint16 word
// length, then the word bytes.
func (l *Loader) loadBinary(r io.Reader, sink WordSink, stats *LoaderStats) error {
	br := bufio.NewReader(r)

	var entryCount int32
	if err := binary.Read(br, binary.LittleEndian, &entryCount); err != nil {
		return fmt.Errorf("reading entry count: %w", err)
	}

	for i := int32(0); i < entryCount; i++ {
		if l.MaxWords > 0 && stats.TotalWords >= l.MaxWords {
			break
		}
		var count uint32
		if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
			return fmt.Errorf("reading count of entry %d: %w", i, err)
		}
		var wordLen uint16
		if err := binary.Read(br, binary.LittleEndian, &wordLen); err != nil {
			return fmt.Errorf("reading word length of entry %d: %w", i, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(br, wordBytes); err != nil {
			return fmt.Errorf("reading word of entry %d: %w", i, err)
		}
		l.deliver(string(wordBytes), int(count), sink, stats)
	}
	return nil
}

func (l *Loader) deliver(word string, count int, sink WordSink, stats *LoaderStats) {
	if count < l.MinCount {
		stats.SkippedLines++
		return
	}
	sink.AddWord(word, count)
	stats.TotalWords++
	if count > stats.MaxCount {
		stats.MaxCount = count
	}
}

// WriteBinary writes entries in the binary chunk format LoadFile reads.
func WriteBinary(filename string, entries []Entry) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := binary.Write(bw, binary.LittleEndian, uint32(e.Count)); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Word); err != nil {
			return err
		}
	}
	return bw.Flush()
}
