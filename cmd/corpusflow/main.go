// =============================================================================
// corpusflow entry point
// =============================================================================
// Dataset-preparation CLI over the corpusflow library.
//
// Usage:
//
//	corpusflow count  [--config corpusflow.yaml] [--lower] [--top 20] FILE...
//	corpusflow slice  [--length 128] [--overlap 0] [--pad PAD] FILE
//	corpusflow vocab  [--config corpusflow.yaml] NAME
//	corpusflow version
// =============================================================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/corpusflow/config"
	"github.com/BaSui01/corpusflow/data"
	"github.com/BaSui01/corpusflow/internal/metrics"
	"github.com/BaSui01/corpusflow/vocab"
)

// Version information (injected at build time).
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "count":
		err = runCount(os.Args[2:])
	case "slice":
		err = runSlice(os.Args[2:])
	case "vocab":
		err = runVocab(os.Args[2:])
	case "version":
		fmt.Printf("corpusflow %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: corpusflow <count|slice|vocab|version> [flags]`)
}

// loadConfigAndLogger loads configuration and builds the logger.
func loadConfigAndLogger(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.NewLoader().WithConfigPath(path).Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Log.BuildLogger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// runCount prints the most common whitespace-separated tokens of the
// given files.
func runCount(args []string) error {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	lower := fs.Bool("lower", false, "lowercase tokens before counting")
	top := fs.Int("top", 20, "number of tokens to print, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("count: at least one input file required")
	}

	_, logger, err := loadConfigAndLogger(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	counter := data.NewCounter[string]()
	for _, path := range fs.Args() {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		counter = data.CountTokens(data.WhitespaceSplitter(string(raw)), *lower, counter)
	}
	logger.Info("counted tokens",
		zap.Int("distinct", counter.Len()),
		zap.Int("total", counter.Total()))

	for _, item := range counter.MostCommon(*top) {
		fmt.Printf("%d\t%s\n", item.Count, item.Token)
	}
	return nil
}

// runSlice windows the whitespace-separated tokens of a file and prints
// one window per line.
func runSlice(args []string) error {
	fs := flag.NewFlagSet("slice", flag.ExitOnError)
	length := fs.Int("length", 128, "window length in tokens")
	overlap := fs.Int("overlap", 0, "tokens shared between consecutive windows")
	pad := fs.String("pad", "", "pad the last window with this token instead of dropping it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("slice: exactly one input file required")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	windows, err := data.SliceSequence(data.WhitespaceSplitter(string(raw)), *length, data.SliceOptions[string]{
		PadLast: *pad != "",
		PadVal:  *pad,
		Overlap: *overlap,
	})
	if err != nil {
		return err
	}
	for _, w := range windows {
		fmt.Println(strings.Join(w, " "))
	}
	return nil
}

// runVocab fetches a pretrained vocabulary into the local cache and
// prints its path-relevant details.
func runVocab(args []string) error {
	fs := flag.NewFlagSet("vocab", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("vocab: exactly one vocabulary name required, hosted: %v", vocab.HostedNames())
	}

	cfg, logger, err := loadConfigAndLogger(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var opts []vocab.Option
	if cfg.Metrics.Enabled {
		opts = append(opts, vocab.WithMetrics(metrics.NewCollector(cfg.Metrics.Namespace, nil, logger)))
	}

	loader := vocab.NewLoader(vocab.Config{
		RepoURL:  cfg.Vocab.RepoURL,
		Root:     cfg.Vocab.Root,
		Download: cfg.Vocab.Download.ToFetcherConfig(),
	}, logger, opts...)

	raw, err := loader.Load(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("fetched %s (%d bytes) into %s\n", fs.Arg(0), len(raw), cfg.Vocab.Root)
	return nil
}
