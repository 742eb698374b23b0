package lead

import (
	"context"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
)

// Repository provides access to the lead store.
type Repository interface {
	Query(ctx context.Context, q query.Query) (query.Result[Lead], error)
	Get(ctx context.Context, id string) (*Lead, error)
	// Update applies fn to a copy of the stored lead and replaces it when fn
	// succeeds. The store refreshes UpdatedAt.
	Update(ctx context.Context, id string, fn func(*Lead) error) (*Lead, error)
	All(ctx context.Context) ([]Lead, error)
}

// OpportunityCreator creates the opportunity made by a conversion.
type OpportunityCreator interface {
	Create(ctx context.Context, req opportunity.CreateRequest) (*opportunity.Opportunity, error)
}

// OpportunityRemover deletes an opportunity left behind by a failed
// conversion. It must reach the store directly, without simulated faults.
type OpportunityRemover interface {
	Delete(ctx context.Context, id string) error
}

// ActivityLogger records lead activities.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.Entry) error
}
