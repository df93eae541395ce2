package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/example/teetime-engine/internal/application"
	"github.com/example/teetime-engine/internal/config"
	"github.com/example/teetime-engine/internal/logging"
	"github.com/example/teetime-engine/internal/persistence/sqlite"
	"github.com/example/teetime-engine/internal/persistence/sqlite/migration"
	"github.com/example/teetime-engine/internal/teetime"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error("simulation failed", "error", err, "error_kind", application.ErrorKind(err))
		os.Exit(1)
	}
	logger.Info("simulation finished",
		"run_id", result.RunID,
		"days", result.Days,
		"total_revenue", formatMoney(result.TotalRevenue),
	)
}

type runResult struct {
	RunID        string
	Days         int
	TotalRevenue decimal.Decimal
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) (runResult, error) {
	storage, err := sqlite.Open(migration.DefaultSQLiteConfig(cfg.SQLiteDSN), logger)
	if err != nil {
		return runResult{}, fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		return runResult{}, err
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	state := teetime.NewState(cfg.Spacing)
	for state.CurrentDay < cfg.StartDay {
		state = state.AdvanceDay()
	}

	svc := application.NewBookingServiceWithLogger(state, storage.Ledger(), storage.Summaries(), uuid.NewString, time.Now, rng.Float64, logger)
	svc.SetPreviewCache(len(teetime.SpacingPresets), cfg.PreviewCacheTTL)
	ctx = logging.WithAttrs(ctx, logger, "run_id", svc.RunID(), "seed", seed)
	dayLogger := logging.FromContext(ctx)

	if preview, err := svc.PreviewSpacing(ctx, cfg.Spacing); err == nil {
		dayLogger.InfoContext(ctx, "spacing selected",
			"spacing", teetime.SpacingLabel(cfg.Spacing),
			"max_slots", preview.MaxSlots,
			"round_time", teetime.FormatRoundTime(preview.EstimatedRoundTime),
			"backup_risk", preview.BackupRisk,
		)
	}

	inputs := application.EconomicInputs{
		Factors:          cfg.DemandFactors(),
		GreenFee:         cfg.GreenFee,
		CartFee:          cfg.CartFee,
		CourseConditions: cfg.CourseConditions,
		Skills:           teetime.DefaultSkillDistribution(),
	}

	result := runResult{RunID: svc.RunID(), TotalRevenue: decimal.Zero}
	for i := 0; i < cfg.SimulationDays; i++ {
		if ctx.Err() != nil {
			dayLogger.WarnContext(ctx, "simulation interrupted", "completed_days", result.Days)
			break
		}
		report, err := svc.AdvanceDay(ctx, inputs)
		if err != nil {
			return result, err
		}
		result.Days++
		result.TotalRevenue = result.TotalRevenue.Add(report.Stats.TotalRevenue)

		dayLogger.InfoContext(ctx, "day summary",
			"day", report.Day,
			"booked", fmt.Sprintf("%d/%d", report.Stats.BookedSlots, report.Stats.TotalSlots),
			"golfers", humanize.Comma(int64(report.Stats.TotalGolfers)),
			"revenue", formatMoney(report.Stats.TotalRevenue),
			"pace", teetime.PaceRatingLabel(report.Pace.Rating),
			"round_time", teetime.FormatRoundTime(report.Pace.EstimatedRoundTime),
			"backup_holes", report.Pace.BackupLocations,
		)
	}
	return result, nil
}

func formatMoney(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return "$" + humanize.CommafWithDigits(value, 2)
}
