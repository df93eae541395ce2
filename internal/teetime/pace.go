package teetime

import (
	"math"
	"math/rand/v2"
)

const (
	baselineRoundHours   = 4.0
	overloadThreshold    = 0.8
	conditionsThreshold  = 50.0
	previewCapacity      = 0.8
	previewConditions    = 75.0
	maxBackupProbability = 0.8
)

// Holes where groups are modeled to queue when play is slow.
var backupCandidateHoles = []int{4, 8, 12, 15, 17}

// PaceRating is the qualitative classification of an expected round time.
type PaceRating string

const (
	PaceExcellent  PaceRating = "excellent"
	PaceGood       PaceRating = "good"
	PaceAcceptable PaceRating = "acceptable"
	PaceSlow       PaceRating = "slow"
	PaceTerrible   PaceRating = "terrible"
)

// BackupRisk buckets a spacing's backup-risk multiplier.
type BackupRisk string

const (
	BackupRiskLow      BackupRisk = "low"
	BackupRiskModerate BackupRisk = "moderate"
	BackupRiskHigh     BackupRisk = "high"
	BackupRiskVeryHigh BackupRisk = "very_high"
)

// SkillDistribution is the share of golfers at each skill level, in percent.
type SkillDistribution struct {
	Beginner     float64
	Intermediate float64
	Advanced     float64
	Expert       float64
}

// DefaultSkillDistribution is 10% beginners, 50% intermediate, 30% advanced
// and 10% experts.
func DefaultSkillDistribution() SkillDistribution {
	return SkillDistribution{Beginner: 10, Intermediate: 50, Advanced: 30, Expert: 10}
}

// TimeDelta returns the occupancy-weighted extra hours per round that the
// skill mix adds. An empty distribution adds nothing.
func (d SkillDistribution) TimeDelta() float64 {
	total := d.Beginner + d.Intermediate + d.Advanced + d.Expert
	if total == 0 {
		return 0
	}
	weighted := d.Beginner*0.5 + d.Intermediate*0.15 + d.Advanced*0 + d.Expert*-0.1
	return weighted / total
}

// PaceOfPlayResult is the congestion feedback for one day.
type PaceOfPlayResult struct {
	EstimatedRoundTime  float64
	Rating              PaceRating
	SatisfactionPenalty int
	BackupLocations     []int
	WaitTimeMinutes     float64
}

// CalculatePaceOfPlayDeterministic models pace of play without the
// stochastic backup placement. BackupLocations is always empty.
func CalculatePaceOfPlayDeterministic(spacing SpacingConfiguration, capacity, courseConditions float64, skills SkillDistribution) PaceOfPlayResult {
	roundTime := EstimateRoundTime(spacing, capacity, courseConditions, skills)
	rating := RatePace(roundTime)
	return PaceOfPlayResult{
		EstimatedRoundTime:  roundTime,
		Rating:              rating,
		SatisfactionPenalty: SatisfactionPenalty(rating),
		BackupLocations:     []int{},
		WaitTimeMinutes:     ExpectedWaitTime(roundTime, spacing.BackupRiskMultiplier),
	}
}

// CalculatePaceOfPlay models pace of play and places backups at random.
// random defaults to math/rand/v2 when nil.
func CalculatePaceOfPlay(spacing SpacingConfiguration, capacity, courseConditions float64, skills SkillDistribution, random func() float64) PaceOfPlayResult {
	result := CalculatePaceOfPlayDeterministic(spacing, capacity, courseConditions, skills)
	result.BackupLocations = IdentifyBackupLocations(result.EstimatedRoundTime, spacing.BackupRiskMultiplier, random)
	return result
}

// EstimateRoundTime returns the expected round duration in hours.
func EstimateRoundTime(spacing SpacingConfiguration, capacity, courseConditions float64, skills SkillDistribution) float64 {
	hours := baselineRoundHours + spacing.PacePenaltyHours
	if capacity > overloadThreshold {
		hours += (capacity - overloadThreshold) * 1.5
	}
	if courseConditions < conditionsThreshold {
		hours += (conditionsThreshold - courseConditions) * 0.02
	}
	return hours + skills.TimeDelta()
}

// RatePace classifies a round time.
func RatePace(roundTimeHours float64) PaceRating {
	switch {
	case roundTimeHours <= 3.75:
		return PaceExcellent
	case roundTimeHours <= 4.25:
		return PaceGood
	case roundTimeHours <= 4.75:
		return PaceAcceptable
	case roundTimeHours <= 5.5:
		return PaceSlow
	}
	return PaceTerrible
}

// SatisfactionPenalty is the guest-satisfaction change caused by a rating.
func SatisfactionPenalty(rating PaceRating) int {
	switch rating {
	case PaceAcceptable:
		return -5
	case PaceSlow:
		return -15
	case PaceTerrible:
		return -30
	}
	return 0
}

// ExpectedWaitTime returns the expected wait per hole in minutes, rounded to
// one decimal.
func ExpectedWaitTime(roundTimeHours, backupRiskMultiplier float64) float64 {
	excess := roundTimeHours - baselineRoundHours
	if excess <= 0 {
		return 0
	}
	return math.Round(excess*60/18*backupRiskMultiplier*10) / 10
}

// IdentifyBackupLocations draws which candidate holes back up. Each hole is
// chosen independently with probability min(0.8, excess*risk*0.3).
func IdentifyBackupLocations(roundTimeHours, backupRiskMultiplier float64, random func() float64) []int {
	excess := roundTimeHours - baselineRoundHours
	holes := []int{}
	if excess <= 0 {
		return holes
	}
	if random == nil {
		random = rand.Float64
	}
	probability := math.Min(maxBackupProbability, excess*backupRiskMultiplier*0.3)
	for _, hole := range backupCandidateHoles {
		if random() < probability {
			holes = append(holes, hole)
		}
	}
	return holes
}

// BackupRiskFor buckets a backup-risk multiplier.
func BackupRiskFor(multiplier float64) BackupRisk {
	switch {
	case multiplier <= 0.5:
		return BackupRiskLow
	case multiplier <= 1.0:
		return BackupRiskModerate
	case multiplier <= 2.0:
		return BackupRiskHigh
	}
	return BackupRiskVeryHigh
}

// SpacingImpactPreview summarizes what switching to a preset would mean.
type SpacingImpactPreview struct {
	Spacing             SpacingPreset
	MinutesBetween      int
	MaxSlots            int
	EstimatedRoundTime  float64
	PaceRating          PaceRating
	BackupRisk          BackupRisk
	RevenueMultiplier   float64
	ReputationImpact    float64
	SatisfactionPenalty int
}

// PreviewSpacingImpact compares a preset under the default operating hours
// at a busy but not overloaded course. Unknown presets report false.
func PreviewSpacingImpact(preset SpacingPreset) (SpacingImpactPreview, bool) {
	spacing, ok := SpacingConfig(preset)
	if !ok {
		return SpacingImpactPreview{}, false
	}
	hours := DefaultOperatingHours()
	pace := CalculatePaceOfPlayDeterministic(spacing, previewCapacity, previewConditions, DefaultSkillDistribution())
	return SpacingImpactPreview{
		Spacing:             preset,
		MinutesBetween:      spacing.MinutesBetween,
		MaxSlots:            slotsInWindow(spacing, hours.base()),
		EstimatedRoundTime:  pace.EstimatedRoundTime,
		PaceRating:          pace.Rating,
		BackupRisk:          BackupRiskFor(spacing.BackupRiskMultiplier),
		RevenueMultiplier:   spacing.RevenueMultiplier,
		ReputationImpact:    spacing.ReputationModifier,
		SatisfactionPenalty: pace.SatisfactionPenalty,
	}, true
}
