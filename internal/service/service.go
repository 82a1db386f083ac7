// Package service answers food listing and nutrition queries against the
// reference table loaded at startup.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/nutrition-api/internal/domain"
	"github.com/couchcryptid/nutrition-api/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ResultPublisher forwards computed results downstream.
type ResultPublisher interface {
	Publish(ctx context.Context, calc domain.Calculation) error
}

// Service is the query surface shared by the HTTP adapter and the CLI.
// The table is read-only after construction, so a Service is safe for
// concurrent use.
type Service struct {
	table     *domain.Table
	publisher ResultPublisher
	metrics   *observability.Metrics
	logger    *slog.Logger
	clock     clockwork.Clock
}

// New creates a Service over table. publisher may be nil to disable result
// publishing.
func New(table *domain.Table, publisher ResultPublisher, metrics *observability.Metrics, logger *slog.Logger, clock clockwork.Clock) *Service {
	if table == nil {
		table = domain.NewTable(nil)
	}
	return &Service{
		table:     table,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		clock:     clock,
	}
}

// ListFoods returns every food name in file order, duplicates included.
func (s *Service) ListFoods(_ context.Context) ([]string, error) {
	names := s.table.Names()
	if len(names) == 0 {
		s.metrics.FoodListings.WithLabelValues(observability.OutcomeUnavailable).Inc()
		return nil, domain.ErrDataUnavailable
	}
	s.metrics.FoodListings.WithLabelValues(observability.OutcomeSuccess).Inc()
	return names, nil
}

// Food returns the per-100g row for an exact name.
func (s *Service) Food(_ context.Context, name string) (domain.Food, error) {
	food, ok := s.table.Lookup(name)
	if !ok {
		return domain.Food{}, &domain.FoodNotFoundError{Name: name}
	}
	return food, nil
}

// Compute scales the named food to the query weight. A configured publisher
// receives the result; publish failures are logged and counted but do not fail
// the query.
func (s *Service) Compute(ctx context.Context, q domain.Query) (domain.Result, error) {
	if err := domain.ValidateWeight(q.Weight); err != nil {
		s.metrics.Calculations.WithLabelValues(observability.OutcomeInvalid).Inc()
		return domain.Result{}, err
	}

	res, err := domain.Calculate(s.table, q.FoodName, q.Weight)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFoodNotFound):
			s.metrics.Calculations.WithLabelValues(observability.OutcomeNotFound).Inc()
		case errors.Is(err, domain.ErrOutOfRange):
			s.metrics.Calculations.WithLabelValues(observability.OutcomeInvalid).Inc()
		}
		return domain.Result{}, err
	}
	s.metrics.Calculations.WithLabelValues(observability.OutcomeSuccess).Inc()

	s.publish(ctx, res)
	return res, nil
}

func (s *Service) publish(ctx context.Context, res domain.Result) {
	if s.publisher == nil {
		return
	}
	calc := domain.Calculation{Result: res, CalculatedAt: s.clock.Now().UTC()}
	if err := s.publisher.Publish(ctx, calc); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish result failed", "error", err, "name", res.Name)
		return
	}
	s.metrics.ResultsPublished.Inc()
}

// CheckReadiness returns nil once the table holds at least one row.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.table.Len() == 0 {
		return fmt.Errorf("reference table empty: %w", domain.ErrDataUnavailable)
	}
	return nil
}
