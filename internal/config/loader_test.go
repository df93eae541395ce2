package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/example/teetime-engine/internal/teetime"
	"github.com/shopspring/decimal"
)

var allKeys = []string{
	"TEETIME_SQLITE_DSN",
	"TEETIME_SPACING",
	"TEETIME_SIM_DAYS",
	"TEETIME_START_DAY",
	"TEETIME_GREEN_FEE",
	"TEETIME_CART_FEE",
	"TEETIME_PRESTIGE",
	"TEETIME_PRICING_RATIO",
	"TEETIME_MARKETING_BONUS",
	"TEETIME_WEATHER",
	"TEETIME_COURSE_CONDITIONS",
	"TEETIME_RANDOM_SEED",
	"TEETIME_PREVIEW_CACHE_TTL",
	"TEETIME_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.SQLiteDSN != "data/teetime.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.Spacing != teetime.SpacingStandard || cfg.SimulationDays != 7 || cfg.StartDay != 0 {
			t.Fatalf("unexpected defaults %+v", cfg)
		}
		if !cfg.GreenFee.Equal(decimal.NewFromInt(55)) || !cfg.CartFee.Equal(decimal.NewFromInt(15)) {
			t.Fatalf("unexpected default fees %s / %s", cfg.GreenFee, cfg.CartFee)
		}
		if cfg.Weather != teetime.WeatherGood || cfg.CourseConditions != 75 || cfg.PreviewCacheTTL != 5*time.Minute {
			t.Fatalf("unexpected defaults %+v", cfg)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("expected info level, got %v", cfg.LogLevel)
		}
	})

	t.Run("parses every field", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TEETIME_SQLITE_DSN", "file:/tmp/teetime.db")
		t.Setenv("TEETIME_SPACING", "Exclusive")
		t.Setenv("TEETIME_SIM_DAYS", "30")
		t.Setenv("TEETIME_START_DAY", "90")
		t.Setenv("TEETIME_GREEN_FEE", "72.50")
		t.Setenv("TEETIME_CART_FEE", "0")
		t.Setenv("TEETIME_PRESTIGE", "800")
		t.Setenv("TEETIME_PRICING_RATIO", "1.4")
		t.Setenv("TEETIME_MARKETING_BONUS", "0.1")
		t.Setenv("TEETIME_WEATHER", "perfect")
		t.Setenv("TEETIME_COURSE_CONDITIONS", "40")
		t.Setenv("TEETIME_RANDOM_SEED", "42")
		t.Setenv("TEETIME_PREVIEW_CACHE_TTL", "30s")
		t.Setenv("TEETIME_LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.SQLiteDSN != "file:/tmp/teetime.db" || cfg.Spacing != teetime.SpacingExclusive {
			t.Fatalf("unexpected config %+v", cfg)
		}
		if cfg.SimulationDays != 30 || cfg.StartDay != 90 || cfg.RandomSeed != 42 {
			t.Fatalf("unexpected numeric fields %+v", cfg)
		}
		if !cfg.GreenFee.Equal(decimal.RequireFromString("72.5")) || !cfg.CartFee.IsZero() {
			t.Fatalf("unexpected fees %s / %s", cfg.GreenFee, cfg.CartFee)
		}
		if cfg.PreviewCacheTTL != 30*time.Second || cfg.LogLevel != slog.LevelDebug {
			t.Fatalf("unexpected ttl or level %+v", cfg)
		}

		factors := cfg.DemandFactors()
		if factors.Weather != teetime.WeatherPerfect || factors.PrestigeScore != 800 ||
			factors.PricingRatio != 1.4 || factors.MarketingBonus != 0.1 {
			t.Fatalf("unexpected demand factors %+v", factors)
		}
		if factors.BaseDemand != teetime.DefaultBaseDemand {
			t.Fatalf("expected default base demand, got %v", factors.BaseDemand)
		}
	})

	t.Run("reports every invalid value", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TEETIME_SPACING", "sardines")
		t.Setenv("TEETIME_SIM_DAYS", "0")
		t.Setenv("TEETIME_GREEN_FEE", "-5")
		t.Setenv("TEETIME_PRESTIGE", "1001")
		t.Setenv("TEETIME_WEATHER", "hail")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "環境変数の値が不正です: TEETIME_GREEN_FEE, TEETIME_PRESTIGE, TEETIME_SIM_DAYS, TEETIME_SPACING, TEETIME_WEATHER"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("rejects malformed durations and seeds", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TEETIME_PREVIEW_CACHE_TTL", "soon")
		t.Setenv("TEETIME_RANDOM_SEED", "-1")
		t.Setenv("TEETIME_LOG_LEVEL", "chatty")

		_, err := Load()
		expected := "環境変数の値が不正です: TEETIME_LOG_LEVEL, TEETIME_PREVIEW_CACHE_TTL, TEETIME_RANDOM_SEED"
		if err == nil || err.Error() != expected {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
