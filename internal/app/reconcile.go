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
	"horse.fit/vitae/internal/merge"
	"horse.fit/vitae/internal/profile"
)

type reconcileOutput struct {
	Merged *merge.MergedProfile `json:"merged"`
	Record *profile.Record      `json:"record"`
}

func runReconcile(args []string) int {
	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	resumePath := fs.String("resume", "", "Path to the résumé profile JSON (required)")
	referencePath := fs.String("reference", "", "Path to the reference profile JSON (required)")
	outPath := fs.String("out", "-", "Output path, or - for stdout")
	label := fs.String("secondary-label", merge.DefaultStyle.SecondaryLabel, "Provenance tag for reference-sourced values in the rendered record")
	timeout := fs.Duration("timeout", 5*time.Minute, "Overall reconciliation timeout")

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

	engine := buildEngine(cfg)
	reconciler, err := buildReconciler(cfg, engine, logger)
	if err != nil {
		logger.Error().Err(err).Msg("reconciler setup failed")
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	started := time.Now()
	merged := reconciler.Reconcile(ctx, resume, reference)

	style := merge.DefaultStyle
	style.SecondaryLabel = strings.TrimSpace(*label)
	output := reconcileOutput{
		Merged: merged,
		Record: merged.Record(style),
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("encode merged profile failed")
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		return 1
	}
	if err := writeOutput(*outPath, encoded); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}

	logger.Info().
		Dur("elapsed", time.Since(started)).
		Int("experiences", len(merged.Experiences)).
		Int("educations", len(merged.Educations)).
		Int("projects", len(merged.Projects)).
		Msg("reconcile finished")
	return 0
}
