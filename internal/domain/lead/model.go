package lead

import (
	"time"

	"github.com/rpggio/sellerconsole/internal/query"
)

// Status is the position of a lead in its lifecycle.
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusQualified Status = "Qualified"
	StatusLost      Status = "Lost"
	StatusConverted Status = "Converted"
)

// Statuses lists every lead status in display order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusConverted}

// Source is the channel a lead came in through.
type Source string

const (
	SourceWebsite       Source = "Website"
	SourceLinkedIn      Source = "LinkedIn"
	SourceEmailCampaign Source = "Email Campaign"
	SourceColdCall      Source = "Cold Call"
	SourceReferral      Source = "Referral"
	SourceTradeShow     Source = "Trade Show"
	SourceSocialMedia   Source = "Social Media"
	SourceAdvertisement Source = "Advertisement"
)

// Sources lists every lead source.
var Sources = []Source{
	SourceWebsite, SourceLinkedIn, SourceEmailCampaign, SourceColdCall,
	SourceReferral, SourceTradeShow, SourceSocialMedia, SourceAdvertisement,
}

// Lead is a sales prospect.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Source    Source    `json:"source"`
	Score     int       `json:"score"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stats counts leads per status.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
}

// Touch sets UpdatedAt to now, never earlier than CreatedAt.
func (l *Lead) Touch(now time.Time) {
	now = now.UTC()
	if now.Before(l.CreatedAt) {
		now = l.CreatedAt
	}
	l.UpdatedAt = now
}

// QueryFields exposes leads to the query pipeline.
var QueryFields = query.Fields[Lead]{
	Text:     func(l Lead) []string { return []string{l.Name, l.Email, l.Company} },
	Status:   func(l Lead) string { return string(l.Status) },
	Created:  func(l Lead) time.Time { return l.CreatedAt },
	Statuses: statusNames(),
	Sorters: map[query.SortKey]func(a, b Lead) int{
		query.SortScore:     func(a, b Lead) int { return query.CompareNumber(a.Score, b.Score) },
		query.SortName:      func(a, b Lead) int { return query.CompareFold(a.Name, b.Name) },
		query.SortCreatedAt: func(a, b Lead) int { return query.CompareTime(a.CreatedAt, b.CreatedAt) },
		query.SortUpdatedAt: func(a, b Lead) int { return query.CompareTime(a.UpdatedAt, b.UpdatedAt) },
	},
	Defaults: query.Defaults{SortBy: query.SortScore, SortOrder: query.Desc, Limit: query.DefaultLimit},
}

func statusNames() []string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return names
}
