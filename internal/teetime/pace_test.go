package teetime

import "testing"

func TestEstimateRoundTime(t *testing.T) {
	t.Parallel()

	tight, _ := SpacingConfig(SpacingTight)
	standard, _ := SpacingConfig(SpacingStandard)

	t.Run("tight spacing adds its pace penalty", func(t *testing.T) {
		t.Parallel()
		result := CalculatePaceOfPlayDeterministic(tight, 0.5, 80, SkillDistribution{})
		if !approx(result.EstimatedRoundTime, 4.4) {
			t.Fatalf("expected 4.4 hours, got %.4f", result.EstimatedRoundTime)
		}
		if result.Rating != PaceAcceptable || result.SatisfactionPenalty != -5 {
			t.Fatalf("expected acceptable pace with -5 penalty, got %s %d", result.Rating, result.SatisfactionPenalty)
		}
		if result.WaitTimeMinutes != 2.0 {
			t.Fatalf("expected 2.0 minute wait, got %.2f", result.WaitTimeMinutes)
		}
		if result.BackupLocations == nil || len(result.BackupLocations) != 0 {
			t.Fatalf("expected empty backup locations, got %v", result.BackupLocations)
		}
	})

	t.Run("overload and poor conditions slow play", func(t *testing.T) {
		t.Parallel()
		if got := EstimateRoundTime(standard, 0.8, 50, SkillDistribution{}); !approx(got, 4.0) {
			t.Fatalf("expected thresholds to be exclusive, got %.4f", got)
		}
		if got := EstimateRoundTime(standard, 1.0, 80, SkillDistribution{}); !approx(got, 4.3) {
			t.Fatalf("expected 4.3 hours at full capacity, got %.4f", got)
		}
		if got := EstimateRoundTime(standard, 0.5, 30, SkillDistribution{}); !approx(got, 4.4) {
			t.Fatalf("expected 4.4 hours in poor conditions, got %.4f", got)
		}
	})

	t.Run("skill mix shifts the round time", func(t *testing.T) {
		t.Parallel()
		if got := DefaultSkillDistribution().TimeDelta(); !approx(got, 0.115) {
			t.Fatalf("expected default skill delta 0.115, got %.4f", got)
		}
		beginners := SkillDistribution{Beginner: 100}
		if got := EstimateRoundTime(standard, 0.5, 80, beginners); !approx(got, 4.5) {
			t.Fatalf("expected 4.5 hours for beginners, got %.4f", got)
		}
		experts := SkillDistribution{Expert: 1}
		if got := EstimateRoundTime(standard, 0.5, 80, experts); !approx(got, 3.9) {
			t.Fatalf("expected 3.9 hours for experts, got %.4f", got)
		}
	})
}

func TestRatePace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours   float64
		want    PaceRating
		penalty int
	}{
		{3.5, PaceExcellent, 0},
		{3.75, PaceExcellent, 0},
		{3.76, PaceGood, 0},
		{4.25, PaceGood, 0},
		{4.5, PaceAcceptable, -5},
		{4.75, PaceAcceptable, -5},
		{5.0, PaceSlow, -15},
		{5.5, PaceSlow, -15},
		{5.51, PaceTerrible, -30},
	}
	for _, tc := range cases {
		rating := RatePace(tc.hours)
		if rating != tc.want {
			t.Fatalf("%.2f hours: expected %s, got %s", tc.hours, tc.want, rating)
		}
		if got := SatisfactionPenalty(rating); got != tc.penalty {
			t.Fatalf("%s: expected penalty %d, got %d", rating, tc.penalty, got)
		}
	}
}

func TestExpectedWaitTime(t *testing.T) {
	t.Parallel()

	if got := ExpectedWaitTime(3.8, 2.5); got != 0 {
		t.Fatalf("expected no wait under baseline, got %.2f", got)
	}
	if got := ExpectedWaitTime(4.0, 2.5); got != 0 {
		t.Fatalf("expected no wait at baseline, got %.2f", got)
	}
	// 0.9h over baseline spread across 18 holes at 2.5x risk.
	if got := ExpectedWaitTime(4.9, 2.5); got != 7.5 {
		t.Fatalf("expected 7.5 minute wait, got %.2f", got)
	}
}

func TestIdentifyBackupLocations(t *testing.T) {
	t.Parallel()

	if got := IdentifyBackupLocations(5.0, 2.5, constRandom(0.5)); !equalInts(got, []int{4, 8, 12, 15, 17}) {
		t.Fatalf("expected every candidate hole, got %v", got)
	}
	if got := IdentifyBackupLocations(5.0, 2.5, constRandom(0.9)); len(got) != 0 {
		t.Fatalf("expected no backups, got %v", got)
	}
	// Probability caps at 0.8 however slow the round is.
	if got := IdentifyBackupLocations(9.0, 3.0, constRandom(0.8)); len(got) != 0 {
		t.Fatalf("expected capped probability to reject 0.8, got %v", got)
	}
	if got := IdentifyBackupLocations(9.0, 3.0, constRandom(0.79)); len(got) != 5 {
		t.Fatalf("expected capped probability to accept 0.79, got %v", got)
	}
	if got := IdentifyBackupLocations(3.9, 3.0, constRandom(0)); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result under baseline, got %v", got)
	}

	draws := []float64{0.1, 0.9, 0.1, 0.9, 0.1}
	i := 0
	random := func() float64 {
		v := draws[i]
		i++
		return v
	}
	if got := IdentifyBackupLocations(5.0, 2.5, random); !equalInts(got, []int{4, 12, 17}) {
		t.Fatalf("expected alternating holes, got %v", got)
	}
}

func TestCalculatePaceOfPlay(t *testing.T) {
	t.Parallel()

	packed, _ := SpacingConfig(SpacingPacked)
	result := CalculatePaceOfPlay(packed, 1.0, 80, SkillDistribution{}, constRandom(0))
	if !approx(result.EstimatedRoundTime, 5.05) {
		t.Fatalf("expected 5.05 hours, got %.4f", result.EstimatedRoundTime)
	}
	if result.Rating != PaceSlow || len(result.BackupLocations) != 5 {
		t.Fatalf("expected slow pace with backups everywhere, got %+v", result)
	}

	deterministic := CalculatePaceOfPlayDeterministic(packed, 1.0, 80, SkillDistribution{})
	if deterministic.EstimatedRoundTime != result.EstimatedRoundTime || deterministic.WaitTimeMinutes != result.WaitTimeMinutes {
		t.Fatalf("expected the stochastic variant to share the deterministic figures")
	}
}

func TestBackupRiskFor(t *testing.T) {
	t.Parallel()

	cases := map[SpacingPreset]BackupRisk{
		SpacingPacked:      BackupRiskVeryHigh,
		SpacingTight:       BackupRiskHigh,
		SpacingStandard:    BackupRiskModerate,
		SpacingComfortable: BackupRiskModerate,
		SpacingRelaxed:     BackupRiskLow,
		SpacingExclusive:   BackupRiskLow,
	}
	for preset, want := range cases {
		cfg, _ := SpacingConfig(preset)
		if got := BackupRiskFor(cfg.BackupRiskMultiplier); got != want {
			t.Fatalf("%s: expected %s, got %s", preset, want, got)
		}
	}
}

func TestPreviewSpacingImpact(t *testing.T) {
	t.Parallel()

	packed, ok := PreviewSpacingImpact(SpacingPacked)
	if !ok {
		t.Fatalf("expected packed preview")
	}
	if packed.PaceRating != PaceSlow || packed.BackupRisk != BackupRiskVeryHigh {
		t.Fatalf("expected slow very-high-risk preview, got %+v", packed)
	}
	if packed.MaxSlots != 101 || packed.MinutesBetween != 6 {
		t.Fatalf("expected 101 six-minute slots, got %+v", packed)
	}
	if packed.RevenueMultiplier != 1.3 || packed.ReputationImpact != -10 || packed.SatisfactionPenalty != -15 {
		t.Fatalf("unexpected packed economics %+v", packed)
	}

	exclusive, _ := PreviewSpacingImpact(SpacingExclusive)
	if exclusive.PaceRating != PaceExcellent || exclusive.BackupRisk != BackupRiskLow {
		t.Fatalf("expected excellent low-risk preview, got %+v", exclusive)
	}
	if exclusive.MaxSlots != 31 || exclusive.SatisfactionPenalty != 0 {
		t.Fatalf("unexpected exclusive preview %+v", exclusive)
	}

	standard, _ := PreviewSpacingImpact(SpacingStandard)
	if standard.PaceRating != PaceGood || standard.MaxSlots != 61 {
		t.Fatalf("unexpected standard preview %+v", standard)
	}

	if _, ok := PreviewSpacingImpact(SpacingPreset("nope")); ok {
		t.Fatalf("expected unknown preset to be rejected")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
