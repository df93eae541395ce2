package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/teetime-engine/internal/application"
	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/teetime"
)

// ServiceFactory assists tests with constructing booking services using
// deterministic identifiers, clocks and draws.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Random      *SequenceRandom
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults. The default
// random source always draws zero, so every simulated slot books.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("")
	}
	if factory.Random == nil {
		factory.Random = NewSequenceRandom(0)
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithRandom overrides the random source used by the factory.
func WithRandom(random *SequenceRandom) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Random = random
	}
}

// BookingServiceDeps captures dependencies for constructing a booking service.
type BookingServiceDeps struct {
	State       *teetime.State
	Ledger      persistence.LedgerRepository
	Summaries   persistence.SummaryRepository
	RunID       string
	IDGenerator func() string
	Now         func() time.Time
	Random      func() float64
	Logger      *slog.Logger
}

// NewBookingService builds a booking service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewBookingService(deps BookingServiceDeps) *application.BookingService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	random := deps.Random
	if random == nil {
		random = f.Random.Func()
	}
	svc := application.NewBookingServiceWithLogger(
		deps.State,
		deps.Ledger,
		deps.Summaries,
		idGen,
		now,
		random,
		deps.Logger,
	)
	runID := deps.RunID
	if runID == "" {
		runID = "run-fixture"
	}
	svc.SetRunID(runID)
	return svc
}
