package opportunity

import (
	"context"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/query"
)

// Repository provides access to the opportunity store.
type Repository interface {
	Query(ctx context.Context, q query.Query) (query.Result[Opportunity], error)
	Get(ctx context.Context, id string) (*Opportunity, error)
	Create(ctx context.Context, opp *Opportunity) error
	// Update applies fn to a copy of the stored opportunity and replaces it
	// when fn succeeds. The store refreshes UpdatedAt.
	Update(ctx context.Context, id string, fn func(*Opportunity) error) (*Opportunity, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]Opportunity, error)
}

// ActivityLogger records opportunity activities.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.Entry) error
}
