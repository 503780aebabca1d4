// Copyright 2025 The trieserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the trieserve completion server and debug CLI.

Trieserve keeps a character-indexed frequency trie and serves ranked
prefix completions from it. It can run as a MessagePack IPC server for
integration with editors and other long-lived clients, or as an
interactive CLI for testing and debugging.

# Usage

Start the server with default settings:

	trieserve

Preload a dictionary and enable debug logging:

	trieserve -data /path/to/dict -d

Run in CLI mode for interactive testing:

	trieserve -c -limit 10 -prmin 2

The data path may be a single .txt or .bin dictionary file, or a directory
of chunked binary files named dict_0001.bin, dict_0002.bin and so on.

# Configuration

Runtime configuration is a TOML file holding server limits, dictionary
thresholds, and CLI defaults:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true
	cache_size = 256

	[dict]
	max_words = 50000
	min_count = 1

The config file is created with defaults if it doesn't exist.

# IPC Protocol

The server speaks MessagePack over stdin/stdout; see pkg/server for the
frame shapes. A completion exchange looks like:

	{"id": "req1", "op": "complete", "p": "hel", "l": 20}
	{"id": "req1", "s": [{"w": "hello", "f": 120, "r": 1}], "c": 1, "t": 145}

Besides completion the protocol exposes the full trie surface: add,
remove, clear, contains, is_word, freq, longest_prefix, suggest, words,
stats and health.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"trieserve/internal/cli"
	"trieserve/pkg/config"
	"trieserve/pkg/dictionary"
	"trieserve/pkg/server"
	"trieserve/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "trieserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags, config, dictionary and the chosen frontend together.
// Logic lives in the packages; main only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Dictionary file or directory of binary chunks")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaults.CLI.DefaultMinLen, "Minimum prefix length for suggestions")
	maxPrefix := flag.Int("prmax", defaults.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaults.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	wordLimit := flag.Int("words", defaults.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	resolvedConfigPath := *configPath
	if resolvedConfigPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			log.Fatalf("Failed to determine config path: %v", err)
		}
		resolvedConfigPath = defaultPath
	}
	log.Debugf("using config file: %s", resolvedConfigPath)

	appConfig, err := config.InitConfig(resolvedConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	completer := suggest.NewCachedCompleter(appConfig.Server.CacheSize)

	if *dataPath != "" {
		loader := dictionary.Loader{
			MinCount: appConfig.Dict.MinCount,
			MaxWords: *wordLimit,
		}
		var stats dictionary.LoaderStats
		info, statErr := os.Stat(*dataPath)
		if statErr != nil {
			log.Fatalf("Failed to stat data path %s: %v", *dataPath, statErr)
		}
		if info.IsDir() {
			stats, err = loader.LoadDir(*dataPath, completer)
		} else {
			stats, err = loader.LoadFile(*dataPath, completer)
		}
		if err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
		}
		log.Debugf("loaded %d words (max count %d)", stats.TotalWords, stats.MaxCount)
	} else {
		log.Warn("No data path specified, starting with an empty trie...")
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig)

	showStartupInfo(*dataPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// printVersion renders the -version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ trieserve ] frequency trie completion server")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	if dataPath != "" {
		log.Infof("data: ( %s )", dataPath)
	}
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
