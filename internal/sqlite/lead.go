package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/repository"
)

const leadColumns = `id, name, email, company, source, score, status, created_at, updated_at`

// LeadRepository implements lead.Repository for SQLite
type LeadRepository struct {
	db   *DB
	seed []lead.Lead
	now  func() time.Time
}

// NewLeadRepository creates a LeadRepository. Reset reloads seed.
func NewLeadRepository(db *DB, seed []lead.Lead) *LeadRepository {
	return &LeadRepository{db: db, seed: slices.Clone(seed), now: time.Now}
}

// Query narrows by status and date range in SQL, then runs the full pipeline
// over the rows in store order.
func (r *LeadRepository) Query(ctx context.Context, q query.Query) (query.Result[lead.Lead], error) {
	q = q.Normalize(lead.QueryFields.Defaults)
	now := r.now()

	stmt := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	var args []any
	if q.Status != query.StatusAll {
		stmt += " AND status = ?"
		args = append(args, q.Status)
	}
	if cutoff, ok := q.DateRange.Cutoff(now); ok {
		stmt += " AND created_at >= ?"
		args = append(args, toNanos(cutoff))
	}
	stmt += " ORDER BY seq"

	leads, err := r.list(ctx, stmt, args...)
	if err != nil {
		return query.Result[lead.Lead]{}, err
	}
	return query.Apply(leads, q, lead.QueryFields, now), nil
}

// Get retrieves a lead by ID
func (r *LeadRepository) Get(ctx context.Context, id string) (*lead.Lead, error) {
	return scanLead(r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id))
}

// Update applies fn inside a transaction.
func (r *LeadRepository) Update(ctx context.Context, id string, fn func(*lead.Lead) error) (*lead.Lead, error) {
	var out *lead.Lead
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		current, err := scanLead(tx.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id))
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
			UPDATE leads
			SET name = ?, email = ?, company = ?, source = ?, score = ?, status = ?, updated_at = ?
			WHERE id = ?
		`, updated.Name, updated.Email, updated.Company, updated.Source, updated.Score,
			updated.Status, toNanos(updated.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("failed to update lead: %w", err)
		}
		out = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// All returns every lead in store order.
func (r *LeadRepository) All(ctx context.Context) ([]lead.Lead, error) {
	return r.list(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY seq`)
}

// Reset replaces the table contents with the seed leads.
func (r *LeadRepository) Reset(ctx context.Context) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM leads`); err != nil {
			return fmt.Errorf("failed to clear leads: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO leads (`+leadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare lead insert: %w", err)
		}
		defer stmt.Close()
		for _, l := range r.seed {
			if _, err := stmt.ExecContext(ctx, l.ID, l.Name, l.Email, l.Company, l.Source, l.Score,
				l.Status, toNanos(l.CreatedAt), toNanos(l.UpdatedAt)); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("seeding lead %s: %w", l.ID, repository.ErrDuplicateID)
				}
				return fmt.Errorf("failed to seed lead %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

func (r *LeadRepository) list(ctx context.Context, stmt string, args ...any) ([]lead.Lead, error) {
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []lead.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead rows: %w", err)
	}
	return leads, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (*lead.Lead, error) {
	var l lead.Lead
	var created, updated int64
	err := s.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Source, &l.Score, &l.Status, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan lead: %w", err)
	}
	l.CreatedAt = fromNanos(created)
	l.UpdatedAt = fromNanos(updated)
	return &l, nil
}
