package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/teetime-engine/internal/teetime"
	"github.com/shopspring/decimal"
)

// Config captures environment driven configuration values for the tee-time simulation.
type Config struct {
	SQLiteDSN        string
	Spacing          teetime.SpacingPreset
	SimulationDays   int
	StartDay         int
	GreenFee         decimal.Decimal
	CartFee          decimal.Decimal
	Prestige         float64
	PricingRatio     float64
	MarketingBonus   float64
	Weather          teetime.WeatherCondition
	CourseConditions float64
	RandomSeed       uint64
	PreviewCacheTTL  time.Duration
	LogLevel         slog.Level
}

// Load parses configuration values from the current process environment.
//
// Every key is optional. Values that fail to parse are collected and
// reported together.
func Load() (Config, error) {
	cfg := Config{
		SQLiteDSN:        "data/teetime.db",
		Spacing:          teetime.SpacingStandard,
		SimulationDays:   7,
		StartDay:         0,
		GreenFee:         decimal.NewFromInt(55),
		CartFee:          decimal.NewFromInt(15),
		Prestige:         500,
		PricingRatio:     1.0,
		Weather:          teetime.WeatherGood,
		CourseConditions: 75,
		PreviewCacheTTL:  5 * time.Minute,
		LogLevel:         slog.LevelInfo,
	}

	invalid := make([]string, 0, 2)
	lookup := func(key string) (string, bool) {
		value := strings.TrimSpace(os.Getenv(key))
		return value, value != ""
	}

	if dsn, ok := lookup("TEETIME_SQLITE_DSN"); ok {
		cfg.SQLiteDSN = dsn
	}

	if value, ok := lookup("TEETIME_SPACING"); ok {
		preset, known := teetime.ParseSpacingPreset(strings.ToLower(value))
		if !known {
			invalid = append(invalid, "TEETIME_SPACING")
		} else {
			cfg.Spacing = preset
		}
	}

	if value, ok := lookup("TEETIME_SIM_DAYS"); ok {
		days, err := strconv.Atoi(value)
		if err != nil || days <= 0 {
			invalid = append(invalid, "TEETIME_SIM_DAYS")
		} else {
			cfg.SimulationDays = days
		}
	}

	if value, ok := lookup("TEETIME_START_DAY"); ok {
		day, err := strconv.Atoi(value)
		if err != nil || day < 0 {
			invalid = append(invalid, "TEETIME_START_DAY")
		} else {
			cfg.StartDay = day
		}
	}

	for key, target := range map[string]*decimal.Decimal{
		"TEETIME_GREEN_FEE": &cfg.GreenFee,
		"TEETIME_CART_FEE":  &cfg.CartFee,
	} {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		fee, err := decimal.NewFromString(value)
		if err != nil || fee.IsNegative() {
			invalid = append(invalid, key)
			continue
		}
		*target = fee
	}

	floats := []struct {
		key    string
		target *float64
		min    float64
		max    float64
	}{
		{"TEETIME_PRESTIGE", &cfg.Prestige, 0, 1000},
		{"TEETIME_PRICING_RATIO", &cfg.PricingRatio, 0, 10},
		{"TEETIME_MARKETING_BONUS", &cfg.MarketingBonus, -1, 1},
		{"TEETIME_COURSE_CONDITIONS", &cfg.CourseConditions, 0, 100},
	}
	for _, f := range floats {
		value, ok := lookup(f.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || parsed < f.min || parsed > f.max {
			invalid = append(invalid, f.key)
			continue
		}
		*f.target = parsed
	}

	if value, ok := lookup("TEETIME_WEATHER"); ok {
		weather, known := teetime.ParseWeather(strings.ToLower(value))
		if !known {
			invalid = append(invalid, "TEETIME_WEATHER")
		} else {
			cfg.Weather = weather
		}
	}

	if value, ok := lookup("TEETIME_RANDOM_SEED"); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			invalid = append(invalid, "TEETIME_RANDOM_SEED")
		} else {
			cfg.RandomSeed = seed
		}
	}

	if value, ok := lookup("TEETIME_PREVIEW_CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "TEETIME_PREVIEW_CACHE_TTL")
		} else {
			cfg.PreviewCacheTTL = ttl
		}
	}

	if value, ok := lookup("TEETIME_LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(value)); err != nil {
			invalid = append(invalid, "TEETIME_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Config{}, fmt.Errorf("環境変数の値が不正です: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// DemandFactors builds the demand model inputs described by the configuration.
func (c Config) DemandFactors() teetime.DemandFactors {
	factors := teetime.DefaultDemandFactors()
	factors.Weather = c.Weather
	factors.PrestigeScore = c.Prestige
	factors.PricingRatio = c.PricingRatio
	factors.MarketingBonus = c.MarketingBonus
	return factors
}
