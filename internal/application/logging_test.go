package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/example/teetime-engine/internal/logging"
	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/teetime"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}

	if got := defaultLogger(nil); got != slog.Default() {
		t.Fatalf("expected default logger when none provided")
	}
}

func TestOperationLoggerPrefersContextLogger(t *testing.T) {
	t.Parallel()

	var base, scoped bytes.Buffer
	baseLogger := slog.New(slog.NewTextHandler(&base, nil))
	ctx := logging.ContextWithLogger(context.Background(), slog.New(slog.NewTextHandler(&scoped, nil)))

	slot := &teetime.TeeTime{ID: "tt-0-0800", Status: teetime.StatusReserved, BookingType: teetime.BookingTypeGroup, GroupSize: 3}
	operationLogger(ctx, baseLogger, "Book", "tee_time_id", slot.ID).Info("booked", teeTimeAttrs(slot)...)
	if base.Len() != 0 {
		t.Fatalf("expected base logger to be bypassed")
	}
	out := scoped.String()
	for _, want := range []string{"component=booking", "operation=Book", "tee_time_id=tt-0-0800", "status=reserved", "players=3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNotFound, "not_found"},
		{fmt.Errorf("%w: tt-1-0800 is completed", ErrInvalidTransition), "invalid_transition"},
		{ErrSlotUnavailable, "slot_unavailable"},
		{fmt.Errorf("record: %w", persistence.ErrDuplicate), "duplicate"},
		{persistence.ErrBusy, "storage_busy"},
		{fmt.Errorf("insert: %w", persistence.ErrConstraintViolation), "constraint"},
		{context.Canceled, "cancelled"},
		{&ValidationError{FieldErrors: map[string]string{"golfers": "required"}}, "validation"},
		{errors.New("boom"), "unexpected"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestLogFailureLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := context.Background()

	logFailure(ctx, logger, "rejected", ErrSlotUnavailable)
	logFailure(ctx, logger, "write failed", persistence.ErrBusy)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two log lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "level=WARN") || !strings.Contains(lines[0], "error_kind=slot_unavailable") {
		t.Fatalf("expected warning for rejected booking, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "level=ERROR") || !strings.Contains(lines[1], "error_kind=storage_busy") {
		t.Fatalf("expected error for storage failure, got %q", lines[1])
	}
}
