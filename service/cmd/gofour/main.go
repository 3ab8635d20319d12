// Command gofour serves the Gang of Four analysis API, or analyzes a single
// position from the command line.
//
//	gofour serve
//	gofour analyze -hand "7R 7G 7Y" [-trick "5G 5Y"] [-played "..."]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/gangoffour/service/internal/analysis"
	"github.com/jason-s-yu/gangoffour/service/internal/auth"
	"github.com/jason-s-yu/gangoffour/service/internal/cache"
	"github.com/jason-s-yu/gangoffour/service/internal/config"
	"github.com/jason-s-yu/gangoffour/service/internal/journal"
	"github.com/jason-s-yu/gangoffour/service/internal/logging"
	"github.com/jason-s-yu/gangoffour/service/internal/server"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "gofour:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}
	switch args[0] {
	case "serve":
		return serve(ctx, stderr)
	case "analyze":
		return analyze(ctx, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	}
	usage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage:
  gofour serve
  gofour analyze -hand "<cards>" [-trick "<cards>"] [-played "<cards>"] [-opponents 16,16,16]`)
}

func serve(ctx context.Context, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)

	var c cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		rc, client, err := cache.Dial(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer client.Close()
		c = rc
		log.WithField("ttl", cfg.CacheTTL).Info("action cache enabled")
	}

	var j journal.Recorder = journal.Nop{}
	if cfg.DatabaseURL != "" {
		pg, pool, err := journal.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		j = pg
		log.Info("analysis journal enabled")
	}

	verifier := auth.NewVerifier(cfg.JWTSecret)
	if !verifier.Enabled() {
		log.Warn("authentication disabled, set GOFOUR_JWT_SECRET to require bearer tokens")
	}

	a := analysis.New(analysis.Options{
		MaxHandSize: cfg.MaxHandSize,
		Cache:       c,
		Journal:     j,
		Logger:      log,
	})
	srv := server.New(server.Options{
		Analyzer:       a,
		Verifier:       verifier,
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	return srv.Run(ctx, cfg.HTTPAddr)
}

func analyze(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	hand := fs.String("hand", "", "cards in hand, e.g. \"7R 7G PhoenixY\"")
	trick := fs.String("trick", "", "trick to beat; empty when leading")
	played := fs.String("played", "", "cards already played")
	opponents := intList{}
	fs.Var(&opponents, "opponents", "comma separated opponent hand sizes")
	verbose := fs.Bool("v", false, "log at debug level to stderr")
	full := fs.Bool("full", false, "include the encoded state and mask in the output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logging.Discard()
	if *verbose {
		log = logging.New(logrus.DebugLevel, "text", stderr)
	}

	req := analysis.Request{Hand: *hand, Trick: *trick, OpponentHandSizes: opponents}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "played" {
			req.Played = played
		}
	})

	res, err := analysis.New(analysis.Options{Logger: log}).Analyze(ctx, req)
	if err != nil {
		return err
	}
	if !*full {
		res.State, res.Mask = nil, nil
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
