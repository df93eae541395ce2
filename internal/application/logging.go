package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/teetime-engine/internal/logging"
	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/teetime"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// operationLogger scopes the request logger (or base) to one booking operation.
func operationLogger(ctx context.Context, base *slog.Logger, operation string, attrs ...any) *slog.Logger {
	pairs := make([]any, 0, len(attrs)+4)
	pairs = append(pairs, "component", "booking")
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	pairs = append(pairs, attrs...)
	return logging.FromContextOr(ctx, base).With(pairs...)
}

// logFailure writes err at error level, except for rejections callers are
// expected to handle, which go out as warnings.
func logFailure(ctx context.Context, logger *slog.Logger, msg string, err error) {
	kind := ErrorKind(err)
	level := slog.LevelError
	switch kind {
	case "validation", "not_found", "invalid_transition", "slot_unavailable", "cancelled":
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, msg, "error", err, "error_kind", kind)
}

// teeTimeAttrs describes a slot after a command. The id is already on the
// operation logger.
func teeTimeAttrs(tt *teetime.TeeTime) []any {
	if tt == nil {
		return nil
	}
	return []any{
		"status", string(tt.Status),
		"booking_type", string(tt.BookingType),
		"players", tt.GroupSize,
	}
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, persistence.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, persistence.ErrConstraintViolation):
		return "constraint"
	case errors.Is(err, persistence.ErrBusy):
		return "storage_busy"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
