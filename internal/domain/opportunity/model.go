package opportunity

import (
	"time"

	"github.com/rpggio/sellerconsole/internal/query"
)

// Stage is the position of an opportunity in the sales pipeline.
type Stage string

const (
	StageProspecting   Stage = "Prospecting"
	StageQualification Stage = "Qualification"
	StageProposal      Stage = "Proposal"
	StageNegotiation   Stage = "Negotiation"
	StageClosedWon     Stage = "Closed Won"
	StageClosedLost    Stage = "Closed Lost"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{
	StageProspecting, StageQualification, StageProposal,
	StageNegotiation, StageClosedWon, StageClosedLost,
}

// Opportunity is a sales deal, usually created from a converted lead.
type Opportunity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Stage       Stage     `json:"stage"`
	Amount      *float64  `json:"amount,omitempty"`
	AccountName string    `json:"accountName"`
	LeadID      string    `json:"leadId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Stats summarizes the opportunity pipeline.
type Stats struct {
	Count      int           `json:"count"`
	ByStage    map[Stage]int `json:"stages"`
	TotalValue float64       `json:"totalValue"`
}

// Touch sets UpdatedAt to now, never earlier than CreatedAt.
func (o *Opportunity) Touch(now time.Time) {
	now = now.UTC()
	if now.Before(o.CreatedAt) {
		now = o.CreatedAt
	}
	o.UpdatedAt = now
}

func amountOf(o Opportunity) float64 {
	if o.Amount == nil {
		return 0
	}
	return *o.Amount
}

// QueryFields exposes opportunities to the query pipeline. Newest first by default.
var QueryFields = query.Fields[Opportunity]{
	Text:     func(o Opportunity) []string { return []string{o.Name, o.AccountName} },
	Status:   func(o Opportunity) string { return string(o.Stage) },
	Created:  func(o Opportunity) time.Time { return o.CreatedAt },
	Statuses: stageNames(),
	Sorters: map[query.SortKey]func(a, b Opportunity) int{
		query.SortAmount:    func(a, b Opportunity) int { return query.CompareNumber(amountOf(a), amountOf(b)) },
		query.SortName:      func(a, b Opportunity) int { return query.CompareFold(a.Name, b.Name) },
		query.SortCreatedAt: func(a, b Opportunity) int { return query.CompareTime(a.CreatedAt, b.CreatedAt) },
		query.SortUpdatedAt: func(a, b Opportunity) int { return query.CompareTime(a.UpdatedAt, b.UpdatedAt) },
	},
	Defaults: query.Defaults{SortBy: query.SortCreatedAt, SortOrder: query.Desc, Limit: query.DefaultLimit},
}

func stageNames() []string {
	names := make([]string, len(Stages))
	for i, s := range Stages {
		names[i] = string(s)
	}
	return names
}
