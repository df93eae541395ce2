package teetime

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers carry state and are not safe for concurrent use.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// FormatTeeTime renders a game time as "h:mm AM/PM".
func FormatTeeTime(t GameTime) string {
	period := "AM"
	if t.Hour >= 12 {
		period = "PM"
	}
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, period)
}

// FormatRoundTime renders a duration in hours as "H:MM".
func FormatRoundTime(hours float64) string {
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", whole, minutes)
}

// SpacingLabel returns the display label of a preset, e.g. "Standard (10 min)".
func SpacingLabel(preset SpacingPreset) string {
	cfg, ok := SpacingConfig(preset)
	if !ok {
		return title(string(preset))
	}
	return fmt.Sprintf("%s (%d min)", title(string(preset)), cfg.MinutesBetween)
}

// PaceRatingLabel returns the display label of a pace rating.
func PaceRatingLabel(rating PaceRating) string {
	return title(string(rating))
}
