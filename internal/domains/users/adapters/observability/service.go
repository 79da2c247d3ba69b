package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/clear-solutions/users-api/internal/domains/users/domain"
	userports "github.com/clear-solutions/users-api/internal/domains/users/ports"
)

const tracerName = "github.com/clear-solutions/users-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Create(ctx context.Context, draft userdomain.Draft) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Create", trace.WithAttributes(attribute.String("user.email", draft.Email)))
	defer span.End()
	s.logInfo(ctx, "creating user", slog.String("email", draft.Email))
	result, err := s.inner.Create(ctx, draft)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create user", slog.String("email", draft.Email))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "user created", slog.Int64("id", result.ID))
	return result, nil
}

func (s *Service) Replace(ctx context.Context, id int64, draft userdomain.Draft) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Replace", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	result, err := s.inner.Replace(ctx, id, draft)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to replace user", slog.Int64("id", id))
	}
	s.metrics.recordUpdated(ctx)
	return result, nil
}

func (s *Service) PartialUpdate(ctx context.Context, id int64, patch userdomain.Patch) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.PartialUpdate", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	result, err := s.inner.PartialUpdate(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to patch user", slog.Int64("id", id))
	}
	s.metrics.recordUpdated(ctx)
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Delete", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.Int64("id", id))
	}
	s.metrics.recordDeleted(ctx)
	return nil
}

func (s *Service) FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.FindByBirthDateRange", trace.WithAttributes(
		attribute.String("user.birthdate.from", from.Format("2006-01-02")),
		attribute.String("user.birthdate.to", to.Format("2006-01-02")),
	))
	defer span.End()
	result, err := s.inner.FindByBirthDateRange(ctx, from, to)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to query users by birth date range")
	}
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	usersCreated metric.Int64Counter
	usersUpdated metric.Int64Counter
	usersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users created"))
	updated, _ := m.Int64Counter("users.service.updated", metric.WithDescription("Number of users updated"))
	deleted, _ := m.Int64Counter("users.service.deleted", metric.WithDescription("Number of users deleted"))
	return serviceMetrics{usersCreated: created, usersUpdated: updated, usersDeleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.usersUpdated != nil {
		m.usersUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.usersDeleted != nil {
		m.usersDeleted.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
