package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/repository"
)

const oppColumns = `id, name, stage, amount, account_name, lead_id, created_at, updated_at`

// OpportunityRepository implements opportunity.Repository for SQLite
type OpportunityRepository struct {
	db  *DB
	now func() time.Time
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(db *DB) *OpportunityRepository {
	return &OpportunityRepository{db: db, now: time.Now}
}

func (r *OpportunityRepository) Query(ctx context.Context, q query.Query) (query.Result[opportunity.Opportunity], error) {
	q = q.Normalize(opportunity.QueryFields.Defaults)
	now := r.now()

	stmt := `SELECT ` + oppColumns + ` FROM opportunities WHERE 1=1`
	var args []any
	if q.Status != query.StatusAll {
		stmt += " AND stage = ?"
		args = append(args, q.Status)
	}
	if cutoff, ok := q.DateRange.Cutoff(now); ok {
		stmt += " AND created_at >= ?"
		args = append(args, toNanos(cutoff))
	}
	stmt += " ORDER BY seq"

	opps, err := r.list(ctx, stmt, args...)
	if err != nil {
		return query.Result[opportunity.Opportunity]{}, err
	}
	return query.Apply(opps, q, opportunity.QueryFields, now), nil
}

func (r *OpportunityRepository) Get(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	return scanOpportunity(r.db.QueryRowContext(ctx, `SELECT `+oppColumns+` FROM opportunities WHERE id = ?`, id))
}

// Create appends a new opportunity
func (r *OpportunityRepository) Create(ctx context.Context, opp *opportunity.Opportunity) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO opportunities (`+oppColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		opp.ID, opp.Name, opp.Stage, nullAmount(opp.Amount), opp.AccountName, opp.LeadID,
		toNanos(opp.CreatedAt), toNanos(opp.UpdatedAt))
	if isUniqueViolation(err) {
		return repository.ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}
	return nil
}

func (r *OpportunityRepository) Update(ctx context.Context, id string, fn func(*opportunity.Opportunity) error) (*opportunity.Opportunity, error) {
	var out *opportunity.Opportunity
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		current, err := scanOpportunity(tx.QueryRowContext(ctx, `SELECT `+oppColumns+` FROM opportunities WHERE id = ?`, id))
		if err != nil {
			return err
		}
		updated := *current
		if err := fn(&updated); err != nil {
			return err
		}
		updated.ID = id
		updated.CreatedAt = current.CreatedAt
		updated.Touch(r.now())

		_, err = tx.ExecContext(ctx, `
			UPDATE opportunities
			SET name = ?, stage = ?, amount = ?, account_name = ?, lead_id = ?, updated_at = ?
			WHERE id = ?
		`, updated.Name, updated.Stage, nullAmount(updated.Amount), updated.AccountName, updated.LeadID,
			toNanos(updated.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("failed to update opportunity: %w", err)
		}
		out = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OpportunityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM opportunities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OpportunityRepository) All(ctx context.Context) ([]opportunity.Opportunity, error) {
	return r.list(ctx, `SELECT `+oppColumns+` FROM opportunities ORDER BY seq`)
}

// Reset removes every opportunity.
func (r *OpportunityRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM opportunities`); err != nil {
		return fmt.Errorf("failed to clear opportunities: %w", err)
	}
	return nil
}

func (r *OpportunityRepository) list(ctx context.Context, stmt string, args ...any) ([]opportunity.Opportunity, error) {
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	opps := []opportunity.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opps = append(opps, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunity rows: %w", err)
	}
	return opps, nil
}

func scanOpportunity(s scanner) (*opportunity.Opportunity, error) {
	var o opportunity.Opportunity
	var amount sql.NullFloat64
	var created, updated int64
	err := s.Scan(&o.ID, &o.Name, &o.Stage, &amount, &o.AccountName, &o.LeadID, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan opportunity: %w", err)
	}
	if amount.Valid {
		o.Amount = &amount.Float64
	}
	o.CreatedAt = fromNanos(created)
	o.UpdatedAt = fromNanos(updated)
	return &o, nil
}

func nullAmount(a *float64) sql.NullFloat64 {
	if a == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *a, Valid: true}
}
