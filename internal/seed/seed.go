// Package seed generates the demo lead data set.
package seed

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
)

const (
	DefaultCount = 200
	DefaultSeed  = 20250913
	DefaultSpan  = 120 * 24 * time.Hour
)

// Options control generation. Zero fields take the defaults.
type Options struct {
	Count int
	Seed  uint64
	// Now anchors timestamps: every lead is created within Span before Now.
	Now  time.Time
	Span time.Duration
}

var firstNames = []string{
	"Ana", "Carlos", "Maria", "Roberto", "Sofia", "James", "Priya", "Michael", "Emma", "David",
	"Sarah", "Zhang", "Isabella", "Ahmed", "Nicole", "Lucas", "Fatima", "Kevin", "Aisha", "Ryan",
	"Camila", "Hassan", "Emily", "Omar", "Lucia", "Alexander", "Zara", "Daniel", "Layla", "Nathan",
	"Valentina", "Yuki", "Grace", "Raj", "Chloe", "Mohamed", "Sophia", "Ethan", "Amara", "Leo",
	"Maya", "Jin", "Olivia", "Arjun", "Zoe", "Ali", "Luna", "Noah", "Aya", "Mason",
}

var lastNames = []string{
	"Silva", "Mendoza", "Santos", "Lima", "Rodriguez", "Chen", "Patel", "Thompson", "Wilson", "Kim",
	"Johnson", "Wei", "Martinez", "Hassan", "Brown", "Garcia", "Ahmed", "Davis", "Miller", "Jones",
	"Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris", "Martin", "Clark", "Lewis", "Walker",
	"Hall", "Allen", "Young", "King", "Wright", "Lopez", "Hill", "Scott", "Green", "Adams",
	"Baker", "Nelson", "Carter", "Mitchell", "Perez", "Roberts", "Turner", "Phillips", "Campbell", "Parker",
}

var companies = []string{
	"TechFlow Systems", "DataStream Corp", "CloudNine Solutions", "InnovateLab", "NextGen Technologies",
	"Digital Dynamics", "SmartLogic Inc", "FutureWorks", "Quantum Analytics", "ByteForge",
	"CyberCore Systems", "Velocity Ventures", "Pinnacle Tech", "Synergy Solutions", "Apex Industries",
	"Prime Digital", "Elite Enterprises", "Vision Systems", "Spark Technologies", "Nexus Corp",
	"Global Dynamics", "Infinite Solutions", "Stellar Systems", "Fusion Technologies", "Vertex Corp",
	"Catalyst Consulting", "Momentum Labs", "Zenith Technologies", "Phoenix Systems", "Horizon Corp",
	"Breakthrough Tech", "Elevate Solutions", "Unity Systems", "Triumph Technologies", "Summit Corp",
	"Vanguard Systems", "Pioneer Technologies", "Legacy Solutions", "Prestige Corp", "Enterprise Hub",
	"Metropolitan Systems", "Continental Tech", "Universal Solutions", "Pacific Technologies", "Atlantic Corp",
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// Leads returns a deterministic set of leads for opts. The same options
// always produce the same leads.
func Leads(opts Options) []lead.Lead {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	if opts.Span <= 0 {
		opts.Span = DefaultSpan
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	end := opts.Now.UTC().Truncate(time.Second)
	start := end.Add(-opts.Span)

	rnd := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	pick := func(list []string) string { return list[rnd.IntN(len(list))] }

	leads := make([]lead.Lead, 0, opts.Count)
	for i := 1; i <= opts.Count; i++ {
		first, last, company := pick(firstNames), pick(lastNames), pick(companies)
		created := start.Add(time.Duration(rnd.Int64N(int64(opts.Span))))
		updated := created.Add(time.Duration(rnd.Int64N(int64(end.Sub(created)) + 1)))

		leads = append(leads, lead.Lead{
			ID:        fmt.Sprintf("lead_%03d", i),
			Name:      first + " " + last,
			Email:     Email(first, last, company),
			Company:   company,
			Source:    lead.Sources[rnd.IntN(len(lead.Sources))],
			Score:     rnd.IntN(100) + 1,
			Status:    lead.Statuses[rnd.IntN(len(lead.Statuses))],
			CreatedAt: created,
			UpdatedAt: updated,
		})
	}
	return leads
}

// Email builds first.last@company.com from the display values.
func Email(first, last, company string) string {
	domain := nonAlnum.ReplaceAllString(strings.ToLower(company), "")
	return fmt.Sprintf("%s.%s@%s.com", strings.ToLower(first), strings.ToLower(last), domain)
}
