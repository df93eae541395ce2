package teetime

// SpacingPreset names one of the interval policies between consecutive
// tee times.
type SpacingPreset string

const (
	SpacingPacked      SpacingPreset = "packed"
	SpacingTight       SpacingPreset = "tight"
	SpacingStandard    SpacingPreset = "standard"
	SpacingComfortable SpacingPreset = "comfortable"
	SpacingRelaxed     SpacingPreset = "relaxed"
	SpacingExclusive   SpacingPreset = "exclusive"
)

// SpacingPresets lists every preset from densest to sparsest.
var SpacingPresets = []SpacingPreset{
	SpacingPacked,
	SpacingTight,
	SpacingStandard,
	SpacingComfortable,
	SpacingRelaxed,
	SpacingExclusive,
}

// SpacingConfiguration carries the timing and economic parameters of a
// spacing preset.
type SpacingConfiguration struct {
	Preset               SpacingPreset
	MinutesBetween       int
	MaxDailySlots        int
	PacePenaltyHours     float64
	BackupRiskMultiplier float64
	ReputationModifier   float64
	RevenueMultiplier    float64
}

var spacingConfigs = map[SpacingPreset]SpacingConfiguration{
	SpacingPacked: {
		Preset:               SpacingPacked,
		MinutesBetween:       6,
		MaxDailySlots:        150,
		PacePenaltyHours:     0.75,
		BackupRiskMultiplier: 2.5,
		ReputationModifier:   -10,
		RevenueMultiplier:    1.3,
	},
	SpacingTight: {
		Preset:               SpacingTight,
		MinutesBetween:       8,
		MaxDailySlots:        110,
		PacePenaltyHours:     0.4,
		BackupRiskMultiplier: 1.5,
		ReputationModifier:   -5,
		RevenueMultiplier:    1.15,
	},
	SpacingStandard: {
		Preset:               SpacingStandard,
		MinutesBetween:       10,
		MaxDailySlots:        90,
		PacePenaltyHours:     0,
		BackupRiskMultiplier: 1.0,
		ReputationModifier:   0,
		RevenueMultiplier:    1.0,
	},
	SpacingComfortable: {
		Preset:               SpacingComfortable,
		MinutesBetween:       12,
		MaxDailySlots:        75,
		PacePenaltyHours:     -0.15,
		BackupRiskMultiplier: 0.6,
		ReputationModifier:   3,
		RevenueMultiplier:    0.92,
	},
	SpacingRelaxed: {
		Preset:               SpacingRelaxed,
		MinutesBetween:       15,
		MaxDailySlots:        60,
		PacePenaltyHours:     -0.3,
		BackupRiskMultiplier: 0.4,
		ReputationModifier:   6,
		RevenueMultiplier:    0.85,
	},
	SpacingExclusive: {
		Preset:               SpacingExclusive,
		MinutesBetween:       20,
		MaxDailySlots:        45,
		PacePenaltyHours:     -0.5,
		BackupRiskMultiplier: 0.2,
		ReputationModifier:   10,
		RevenueMultiplier:    0.75,
	},
}

// SpacingConfig returns the configuration of preset. The boolean is false for
// unknown presets.
func SpacingConfig(preset SpacingPreset) (SpacingConfiguration, bool) {
	cfg, ok := spacingConfigs[preset]
	return cfg, ok
}

// ParseSpacingPreset validates a preset name.
func ParseSpacingPreset(value string) (SpacingPreset, bool) {
	preset := SpacingPreset(value)
	_, ok := spacingConfigs[preset]
	return preset, ok
}

// HoursWindow is one open/close/last-tee-time window, in whole hours.
type HoursWindow struct {
	Open        int
	Close       int
	LastTeeTime int
}

// OperatingHours holds the base window, the seasonal overrides and the hour
// at which twilight pricing starts.
type OperatingHours struct {
	Open          int
	Close         int
	LastTeeTime   int
	Summer        HoursWindow
	Winter        HoursWindow
	TwilightStart int
}

// DefaultOperatingHours returns the operating hours used by new states.
func DefaultOperatingHours() OperatingHours {
	return OperatingHours{
		Open:          6,
		Close:         20,
		LastTeeTime:   16,
		Summer:        HoursWindow{Open: 5, Close: 21, LastTeeTime: 18},
		Winter:        HoursWindow{Open: 7, Close: 17, LastTeeTime: 14},
		TwilightStart: 15,
	}
}

// Season is the day-of-year band used by operating hours and demand.
type Season string

const (
	SeasonSummer   Season = "summer"
	SeasonWinter   Season = "winter"
	SeasonShoulder Season = "shoulder"
)

// SeasonForDay resolves the season band for a simulated day: days 91 to 273
// of the year are summer, days up to 60 or from 305 are winter.
func SeasonForDay(day int) Season {
	doy := dayOfYear(day)
	switch {
	case doy >= 91 && doy <= 273:
		return SeasonSummer
	case doy <= 60 || doy >= 305:
		return SeasonWinter
	}
	return SeasonShoulder
}

// WindowForDay returns the single window that applies on day.
func (h OperatingHours) WindowForDay(day int) HoursWindow {
	switch SeasonForDay(day) {
	case SeasonSummer:
		return h.Summer
	case SeasonWinter:
		return h.Winter
	}
	return h.base()
}

func (h OperatingHours) base() HoursWindow {
	return HoursWindow{Open: h.Open, Close: h.Close, LastTeeTime: h.LastTeeTime}
}

// IsTwilight reports whether a tee time starts in the twilight band.
func (h OperatingHours) IsTwilight(t GameTime) bool {
	return t.Hour >= h.TwilightStart
}
