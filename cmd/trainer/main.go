// Command trainer fits the category models on the collected dataset and
// prints a comparative evaluation report. Runs are fully reproducible for a
// fixed seed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"newslab/internal/infra/dataset"
	"newslab/internal/observability/logging"
	"newslab/internal/usecase/train"
)

func main() {
	var (
		dataDir  = flag.String("data", "data", "directory containing processed.csv")
		seed     = flag.Int64("seed", 42, "random seed for the split and model initialization")
		testFrac = flag.Float64("test-frac", 0.2, "held-out fraction of each class")
	)
	flag.Parse()

	_ = godotenv.Load()

	// Text output: the trainer is an interactive console tool and its log
	// lines sit next to the printed report.
	logger := logging.WithRunID(logging.NewTextLogger())
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	csvPath := filepath.Join(*dataDir, "processed.csv")
	rows, err := dataset.LoadCSV(csvPath)
	if err != nil {
		logger.Error("failed to load dataset",
			slog.String("path", csvPath),
			slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		slog.String("path", csvPath),
		slog.Int("rows", len(rows)))

	cfg := train.DefaultConfig()
	cfg.Seed = *seed
	cfg.TestFraction = *testFrac

	result, err := train.NewService(cfg).Run(ctx, rows)
	if err != nil {
		logger.Error("training failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Print(train.FormatReport(result))
}
