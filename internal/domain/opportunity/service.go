package opportunity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/repository"
)

// IDPrefix starts every generated opportunity ID.
const IDPrefix = "opp_"

// Service handles opportunity operations.
type Service struct {
	repo       Repository
	activities ActivityLogger
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new opportunity service. activities may be nil.
func NewService(repo Repository, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, activities: activities, logger: logger, now: time.Now}
}

// CreateRequest defines opportunity creation inputs.
type CreateRequest struct {
	Name        string   `json:"name"`
	AccountName string   `json:"accountName"`
	Stage       Stage    `json:"stage,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	LeadID      string   `json:"leadId,omitempty"`
}

// UpdateRequest defines opportunity update inputs. Nil fields are left alone.
type UpdateRequest struct {
	ID          string   `json:"-"`
	Name        *string  `json:"name,omitempty"`
	AccountName *string  `json:"accountName,omitempty"`
	Stage       *Stage   `json:"stage,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	ClearAmount bool     `json:"clearAmount,omitempty"`
}

// List returns one page of opportunities.
func (s *Service) List(ctx context.Context, q query.Query) (query.Result[Opportunity], error) {
	if err := QueryFields.Validate(q); err != nil {
		s.logger.Debug("rejected opportunity query", "error", err)
		return query.Result[Opportunity]{}, err
	}
	res, err := s.repo.Query(ctx, q)
	if err != nil {
		return query.Result[Opportunity]{}, fmt.Errorf("listing opportunities: %w", err)
	}
	return res, nil
}

// Get fetches an opportunity by ID.
func (s *Service) Get(ctx context.Context, id string) (*Opportunity, error) {
	opp, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.mapErr("getting opportunity", err)
	}
	return opp, nil
}

// Create validates req and stores a new opportunity.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Opportunity, error) {
	if err := ValidateCreateInput(req); err != nil {
		s.logger.Debug("rejected opportunity create", "error", err)
		return nil, err
	}

	stage := req.Stage
	if stage == "" {
		stage = StageProspecting
	}
	now := s.now().UTC()
	opp := &Opportunity{
		ID:          IDPrefix + uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Stage:       stage,
		Amount:      req.Amount,
		AccountName: strings.TrimSpace(req.AccountName),
		LeadID:      req.LeadID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, fmt.Errorf("creating opportunity: %w", err)
	}

	s.logActivity(ctx, activity.TypeOpportunityCreated, opp.ID,
		fmt.Sprintf("Created opportunity %q for %s", opp.Name, opp.AccountName))
	return opp, nil
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Opportunity, error) {
	if err := ValidateUpdateInput(req); err != nil {
		s.logger.Debug("rejected opportunity update", "error", err)
		return nil, err
	}

	opp, err := s.repo.Update(ctx, req.ID, func(o *Opportunity) error {
		if req.Name != nil {
			o.Name = strings.TrimSpace(*req.Name)
		}
		if req.AccountName != nil {
			o.AccountName = strings.TrimSpace(*req.AccountName)
		}
		if req.Stage != nil {
			o.Stage = *req.Stage
		}
		if req.Amount != nil {
			amount := *req.Amount
			o.Amount = &amount
		}
		if req.ClearAmount {
			o.Amount = nil
		}
		return nil
	})
	if err != nil {
		return nil, s.mapErr("updating opportunity", err)
	}

	s.logActivity(ctx, activity.TypeOpportunityUpdated, opp.ID,
		fmt.Sprintf("Updated opportunity %q (%s)", opp.Name, opp.Stage))
	return opp, nil
}

// Delete removes an opportunity.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapErr("deleting opportunity", err)
	}
	s.logActivity(ctx, activity.TypeOpportunityDeleted, id, "Deleted opportunity "+id)
	return nil
}

// Stats summarizes the whole pipeline.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("loading opportunities: %w", err)
	}
	return Summarize(all), nil
}

// Summarize counts opportunities per stage and totals their amounts.
func Summarize(opps []Opportunity) Stats {
	stats := Stats{Count: len(opps), ByStage: make(map[Stage]int, len(Stages))}
	for _, st := range Stages {
		stats.ByStage[st] = 0
	}
	for _, o := range opps {
		stats.ByStage[o.Stage]++
		stats.TotalValue += amountOf(o)
	}
	return stats
}

func (s *Service) mapErr(action string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOpportunityNotFound
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (s *Service) logActivity(ctx context.Context, typ activity.Type, entityID, summary string) {
	if s.activities == nil {
		return
	}
	id := entityID
	entry := &activity.Entry{Type: typ, EntityID: &id, Summary: summary, CreatedAt: s.now().UTC()}
	if err := s.activities.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", typ, "entity", entityID, "error", err)
	}
}
