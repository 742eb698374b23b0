// Package admin holds the operations that manage the demo itself: restoring
// seed data and tuning the simulated failure rate.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
)

// ErrInvalidInput indicates an unusable admin input.
var ErrInvalidInput = errors.New("invalid admin input")

// Resetter restores a store to its seed state.
type Resetter interface {
	Reset(ctx context.Context) error
}

// RateController reads and writes the global failure rate.
type RateController interface {
	Rate() float64
	SetRate(rate float64) float64
}

// ActivityLogger records admin activities.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.Entry) error
}

// Service handles admin operations.
type Service struct {
	stores     []Resetter
	rate       RateController
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates an admin service. activities may be nil.
func NewService(rate RateController, activities ActivityLogger, logger *slog.Logger, stores ...Resetter) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{stores: stores, rate: rate, activities: activities, logger: logger}
}

// ResetData restores every store to its seed state.
func (s *Service) ResetData(ctx context.Context) error {
	for _, st := range s.stores {
		if err := st.Reset(ctx); err != nil {
			return fmt.Errorf("resetting data: %w", err)
		}
	}
	s.logger.Info("data reset to seed")
	s.logActivity(ctx, activity.TypeDataReset, "Reset all data to seed")
	return nil
}

// ErrorRate returns the current failure rate.
func (s *Service) ErrorRate() float64 {
	return s.rate.Rate()
}

// SetErrorRate stores rate clamped into [0, 1] and returns the stored value.
func (s *Service) SetErrorRate(ctx context.Context, rate float64) (float64, error) {
	if math.IsNaN(rate) {
		return 0, fmt.Errorf("%w: error rate must be a number", ErrInvalidInput)
	}
	prev := s.rate.Rate()
	stored := s.rate.SetRate(rate)
	s.logger.Info("error rate changed", "from", prev, "to", stored)
	s.logActivity(ctx, activity.TypeErrorRateChanged, fmt.Sprintf("Error rate set to %d%%", int(math.Round(stored*100))))
	return stored, nil
}

func (s *Service) logActivity(ctx context.Context, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	entry := &activity.Entry{Type: typ, Summary: summary, CreatedAt: time.Now().UTC()}
	if err := s.activities.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", typ, "error", err)
	}
}
