package application

import (
	"context"
	"fmt"

	"github.com/example/teetime-engine/internal/teetime"
)

// ChangeSpacing switches the spacing preset for days generated from now on.
func (s *BookingService) ChangeSpacing(ctx context.Context, preset teetime.SpacingPreset) (err error) {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}

	logger := s.loggerWith(ctx, "ChangeSpacing", "spacing", preset)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to change spacing", err)
			return
		}
		logger.InfoContext(ctx, "spacing changed")
	}()

	if _, ok := teetime.SpacingConfig(preset); !ok {
		vErr := &ValidationError{}
		vErr.add("spacing", fmt.Sprintf("unknown spacing preset %q", preset))
		return vErr
	}

	s.mu.Lock()
	s.state = s.state.UpdateSpacing(preset)
	s.mu.Unlock()
	return nil
}

// ChangeOperatingHours replaces the operating hours for days generated from now on.
func (s *BookingService) ChangeOperatingHours(ctx context.Context, hours teetime.OperatingHours) (err error) {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}

	logger := s.loggerWith(ctx, "ChangeOperatingHours",
		"open", hours.Open,
		"last_tee_time", hours.LastTeeTime,
	)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to change operating hours", err)
			return
		}
		logger.InfoContext(ctx, "operating hours changed")
	}()

	if vErr := validateOperatingHours(hours); vErr.HasErrors() {
		return vErr
	}

	s.mu.Lock()
	s.state = s.state.UpdateOperatingHours(hours)
	s.mu.Unlock()
	return nil
}

// ChangeBookingConfig replaces the booking window and penalty configuration.
func (s *BookingService) ChangeBookingConfig(ctx context.Context, cfg teetime.BookingWindowConfig) (err error) {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}

	logger := s.loggerWith(ctx, "ChangeBookingConfig")
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to change booking config", err)
			return
		}
		logger.InfoContext(ctx, "booking config changed")
	}()

	if vErr := validateBookingConfig(cfg); vErr.HasErrors() {
		return vErr
	}

	s.mu.Lock()
	s.state = s.state.UpdateBookingConfig(cfg)
	s.mu.Unlock()
	return nil
}

// PreviewSpacing reports what switching to preset would mean. Previews do
// not depend on the current state and are cached per preset.
func (s *BookingService) PreviewSpacing(ctx context.Context, preset teetime.SpacingPreset) (teetime.SpacingImpactPreview, error) {
	if s == nil {
		return teetime.SpacingImpactPreview{}, fmt.Errorf("BookingService is nil")
	}

	s.mu.RLock()
	cache := s.previews
	s.mu.RUnlock()

	if preview, ok := cache.Get(preset); ok {
		return preview, nil
	}

	preview, ok := teetime.PreviewSpacingImpact(preset)
	if !ok {
		vErr := &ValidationError{}
		vErr.add("spacing", fmt.Sprintf("unknown spacing preset %q", preset))
		logFailure(ctx, s.loggerWith(ctx, "PreviewSpacing", "spacing", preset), "preview rejected", vErr)
		return teetime.SpacingImpactPreview{}, vErr
	}
	cache.Store(preset, preview)
	return preview, nil
}
