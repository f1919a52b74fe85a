// Command redline runs the text correction engine, either as an HTTP
// server or as a one-shot check/diff over local files.
//
// Usage:
//
//	redline serve [-config config.yaml]
//	redline check [-config config.yaml] [-json] [file]
//	redline diff  [-config config.yaml] [-json] <original> <corrected>
//
// With no file argument, check reads from stdin. Exit codes: 0 clean,
// 1 issues found, 2 usage or configuration error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redlinehq/redline/internal/config"
	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/engine"
	"github.com/redlinehq/redline/internal/observe"
	"github.com/redlinehq/redline/internal/server"
	"github.com/redlinehq/redline/internal/session"
	"github.com/redlinehq/redline/internal/worddiff"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:])
	case "check":
		return runCheck(args[1:])
	case "diff":
		return runDiff(args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "redline: unknown command %q\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  redline serve [-config config.yaml]
  redline check [-config config.yaml] [-json] [file]
  redline diff  [-config config.yaml] [-json] <original> <corrected>`)
}

// setup loads the config, configures logging, and builds the engine.
func setup(configPath string) (*config.Config, *engine.Engine, *observe.Metrics, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	dict, err := loadDictionary(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	metrics := observe.DefaultMetrics()
	eng := engine.New(dict,
		engine.WithSuggestionLimit(cfg.Engine.SuggestionLimit),
		engine.WithDiffWindow(cfg.Engine.DiffWindow),
		engine.WithMetrics(metrics),
	)
	return cfg, eng, metrics, nil
}

func loadDictionary(cfg *config.Config) (*dictionary.Dictionary, error) {
	if cfg.Engine.DictionaryPath != "" {
		return dictionary.LoadFile(cfg.Engine.DictionaryPath)
	}
	return dictionary.Load()
}

func newLogger(level config.LogLevel) *slog.Logger {
	var l slog.Level
	switch level {
	case config.LogDebug:
		l = slog.LevelDebug
	case config.LogWarn:
		l = slog.LevelWarn
	case config.LogError:
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML configuration file")
	fs.Parse(args)

	cfg, eng, metrics, err := setup(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redline: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "redline",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 2
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	sessions := session.NewManager(
		session.WithHistoryCap(cfg.Sessions.HistoryCap),
		session.WithIdleTTL(cfg.Sessions.IdleTTL.Std()),
		session.WithMetrics(metrics),
	)

	slog.Info("redline starting",
		"version", version,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	srv := server.New(cfg.Server.ListenAddr, eng, sessions, metrics)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "err", err)
		return 1
	}
	slog.Info("shutdown complete")
	return 0
}

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML configuration file")
	asJSON := fs.Bool("json", false, "print suggestions as JSON")
	fs.Parse(args)

	_, eng, _, err := setup(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redline: %v\n", err)
		return 2
	}

	text, err := readInput(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "redline: %v\n", err)
		return 2
	}

	suggestions := eng.Check(context.Background(), text)
	if *asJSON {
		out, _ := json.MarshalIndent(suggestions, "", "  ")
		fmt.Println(string(out))
	} else {
		for _, s := range suggestions {
			fmt.Printf("%d:%d\t%s\t%s", s.Offset, s.Length, s.Category, s.Explanation)
			if s.Primary != s.Original {
				fmt.Printf(" (suggest %q)", s.Primary)
			}
			fmt.Println()
		}
	}
	if len(suggestions) > 0 {
		return 1
	}
	return 0
}

func runDiff(args []string) int {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML configuration file")
	asJSON := fs.Bool("json", false, "print segments as JSON")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "redline: diff requires exactly two file arguments")
		return 2
	}

	_, eng, _, err := setup(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redline: %v\n", err)
		return 2
	}

	original, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "redline: %v\n", err)
		return 2
	}
	corrected, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "redline: %v\n", err)
		return 2
	}

	segs := eng.Diff(context.Background(), string(original), string(corrected))
	if *asJSON {
		out, _ := json.MarshalIndent(segs, "", "  ")
		fmt.Println(string(out))
		return 0
	}
	for _, seg := range segs {
		switch seg.Op {
		case worddiff.Added:
			fmt.Printf("+%q\n", seg.Text)
		case worddiff.Removed:
			fmt.Printf("-%q\n", seg.Text)
		default:
			fmt.Printf(" %q\n", seg.Text)
		}
	}
	return 0
}

// readInput reads the single optional file argument, or stdin.
func readInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case 1:
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", errors.New("check accepts at most one file argument")
	}
}
