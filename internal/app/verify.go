package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/vitae/internal/cli"
	"horse.fit/vitae/internal/config"
	"horse.fit/vitae/internal/logging"
)

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	resumePath := fs.String("resume", "", "Path to the résumé profile JSON (required)")
	referencePath := fs.String("reference", "", "Path to the reference profile JSON (required)")
	outPath := fs.String("out", "-", "Output path, or - for stdout")
	timeout := fs.Duration("timeout", 2*time.Minute, "Overall verification timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if strings.TrimSpace(*resumePath) == "" || strings.TrimSpace(*referencePath) == "" {
		fmt.Fprintln(os.Stderr, "--resume and --reference are required")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	resume, _, err := readProfile(*resumePath)
	if err != nil {
		logger.Error().Err(err).Msg("résumé document rejected")
		fmt.Fprintf(os.Stderr, "Invalid résumé document: %v\n", err)
		return 1
	}
	reference, _, err := readProfile(*referencePath)
	if err != nil {
		logger.Error().Err(err).Msg("reference document rejected")
		fmt.Fprintf(os.Stderr, "Invalid reference document: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	scorer := buildScorer(buildEngine(cfg), logger)
	report := scorer.Verify(ctx, resume, reference)

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("encode verification report failed")
		fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
		return 1
	}
	if err := writeOutput(*outPath, encoded); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		return 1
	}
	return 0
}
