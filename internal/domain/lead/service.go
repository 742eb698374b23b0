package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/repository"
)

// Service handles lead operations.
type Service struct {
	repo       Repository
	opps       OpportunityCreator
	remover    OpportunityRemover
	activities ActivityLogger
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new lead service. remover and activities may be nil.
func NewService(repo Repository, opps OpportunityCreator, remover OpportunityRemover, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, opps: opps, remover: remover, activities: activities, logger: logger, now: time.Now}
}

// UpdateRequest defines lead update inputs. Nil fields are left alone.
type UpdateRequest struct {
	ID      string  `json:"-"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Company *string `json:"company,omitempty"`
	Status  *Status `json:"status,omitempty"`
	Score   *int    `json:"score,omitempty"`
}

// ConvertRequest defines the opportunity created from a lead. Empty Name and
// AccountName default to the lead's name and company.
type ConvertRequest struct {
	LeadID      string            `json:"-"`
	Name        string            `json:"name,omitempty"`
	AccountName string            `json:"accountName,omitempty"`
	Stage       opportunity.Stage `json:"stage,omitempty"`
	Amount      *float64          `json:"amount,omitempty"`
}

// ConvertResult holds both sides of a successful conversion.
type ConvertResult struct {
	Lead        *Lead                    `json:"lead"`
	Opportunity *opportunity.Opportunity `json:"opportunity"`
}

// List returns one page of leads.
func (s *Service) List(ctx context.Context, q query.Query) (query.Result[Lead], error) {
	if err := QueryFields.Validate(q); err != nil {
		s.logger.Debug("rejected lead query", "error", err)
		return query.Result[Lead]{}, err
	}
	res, err := s.repo.Query(ctx, q)
	if err != nil {
		return query.Result[Lead]{}, fmt.Errorf("listing leads: %w", err)
	}
	return res, nil
}

// Get fetches a lead by ID.
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapErr("getting lead", err)
	}
	return l, nil
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Lead, error) {
	if err := ValidateUpdateInput(req); err != nil {
		s.logger.Debug("rejected lead update", "error", err)
		return nil, err
	}

	l, err := s.repo.Update(ctx, req.ID, func(l *Lead) error {
		if req.Name != nil {
			l.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			l.Email = strings.TrimSpace(*req.Email)
		}
		if req.Company != nil {
			l.Company = strings.TrimSpace(*req.Company)
		}
		if req.Status != nil {
			l.Status = *req.Status
		}
		if req.Score != nil {
			l.Score = *req.Score
		}
		return nil
	})
	if err != nil {
		return nil, mapErr("updating lead", err)
	}

	s.logActivity(ctx, activity.TypeLeadUpdated, l.ID, fmt.Sprintf("Updated lead %s (%s)", l.Name, l.Status))
	return l, nil
}

// Convert creates an opportunity from a lead and marks the lead Converted.
// If the lead cannot be marked, the new opportunity is deleted again.
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	if strings.TrimSpace(req.LeadID) == "" {
		return nil, fmt.Errorf("%w: lead id is required", ErrInvalidInput)
	}

	l, err := s.repo.Get(ctx, req.LeadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: loading lead: %w", ErrConversionFailed, err)
	}
	if l.Status == StatusConverted {
		return nil, ErrAlreadyConverted
	}

	create := opportunity.CreateRequest{
		Name:        req.Name,
		AccountName: req.AccountName,
		Stage:       req.Stage,
		Amount:      req.Amount,
		LeadID:      l.ID,
	}
	if strings.TrimSpace(create.Name) == "" {
		create.Name = l.Name
	}
	if strings.TrimSpace(create.AccountName) == "" {
		create.AccountName = l.Company
	}
	if err := opportunity.ValidateCreateInput(create); err != nil {
		s.logger.Debug("rejected lead conversion", "lead", l.ID, "error", err)
		return nil, err
	}

	opp, err := s.opps.Create(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("%w: creating opportunity: %w", ErrConversionFailed, err)
	}

	converted, err := s.repo.Update(ctx, l.ID, func(l *Lead) error {
		if l.Status == StatusConverted {
			return ErrAlreadyConverted
		}
		l.Status = StatusConverted
		return nil
	})
	if err != nil {
		s.compensate(opp.ID, l.ID)
		switch {
		case errors.Is(err, ErrAlreadyConverted):
			return nil, ErrAlreadyConverted
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: marking lead converted: %w", ErrConversionFailed, err)
	}

	s.logger.Info("lead converted", "lead", converted.ID, "opportunity", opp.ID)
	s.logActivity(ctx, activity.TypeLeadConverted, converted.ID,
		fmt.Sprintf("Converted lead %s to opportunity %q", converted.Name, opp.Name))
	return &ConvertResult{Lead: converted, Opportunity: opp}, nil
}

// compensate removes an opportunity whose conversion could not complete. It
// runs detached from the request context so a cancelled caller still cleans up.
func (s *Service) compensate(oppID, leadID string) {
	if s.remover == nil {
		s.logger.Error("no remover for opportunity after conversion failure", "lead", leadID, "opportunity", oppID)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.remover.Delete(ctx, oppID); err != nil {
		s.logger.Error("failed to remove opportunity after conversion failure",
			"lead", leadID, "opportunity", oppID, "error", err)
	}
}

// Stats counts all leads per status.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("loading leads: %w", err)
	}
	return Summarize(all), nil
}

// Summarize counts leads per status. Every status is present in the map.
func Summarize(leads []Lead) Stats {
	stats := Stats{Total: len(leads), ByStatus: make(map[Status]int, len(Statuses))}
	for _, st := range Statuses {
		stats.ByStatus[st] = 0
	}
	for _, l := range leads {
		stats.ByStatus[l.Status]++
	}
	return stats
}

func mapErr(action string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLeadNotFound
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
