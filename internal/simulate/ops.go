package simulate

import "time"

// Operation names. Each simulated call is tagged with one.
const (
	OpListLeads         = "list_leads"
	OpGetLead           = "get_lead"
	OpUpdateLead        = "update_lead"
	OpConvertLead       = "convert_lead"
	OpListOpportunities = "list_opportunities"
	OpGetOpportunity    = "get_opportunity"
	OpCreateOpportunity = "create_opportunity"
	OpUpdateOpportunity = "update_opportunity"
	OpDeleteOpportunity = "delete_opportunity"
)

// Conversion has no delay of its own; it pays for the get, create and update
// calls it is made of.
type opInfo struct {
	code    string
	message string
	delay   time.Duration
}

var ops = map[string]opInfo{
	OpListLeads:         {"SERVER_ERROR", "Server temporarily unavailable. Please try again.", 800 * time.Millisecond},
	OpGetLead:           {"SERVER_ERROR", "Server temporarily unavailable. Please try again.", 200 * time.Millisecond},
	OpUpdateLead:        {"UPDATE_FAILED", "Failed to update lead", 400 * time.Millisecond},
	OpConvertLead:       {"CONVERT_FAILED", "Failed to convert lead", 0},
	OpListOpportunities: {"FETCH_OPPORTUNITIES_FAILED", "Failed to fetch opportunities", 300 * time.Millisecond},
	OpGetOpportunity:    {"FETCH_OPPORTUNITIES_FAILED", "Failed to fetch opportunities", 200 * time.Millisecond},
	OpCreateOpportunity: {"CREATE_OPPORTUNITY_FAILED", "Failed to create opportunity", 500 * time.Millisecond},
	OpUpdateOpportunity: {"UPDATE_OPPORTUNITY_FAILED", "Failed to update opportunity", 400 * time.Millisecond},
	OpDeleteOpportunity: {"DELETE_OPPORTUNITY_FAILED", "Failed to delete opportunity", 300 * time.Millisecond},
}

// CodeFor returns the error code reported when op fails transiently.
func CodeFor(op string) string {
	if info, ok := ops[op]; ok {
		return info.code
	}
	return "SERVER_ERROR"
}

// MessageFor returns the user-facing message for a transient failure of op.
func MessageFor(op string) string {
	if info, ok := ops[op]; ok {
		return info.message
	}
	return "Server temporarily unavailable. Please try again."
}

// Delays maps operation names to artificial latency.
type Delays map[string]time.Duration

// DefaultDelays returns the latency profile of the demo backend.
func DefaultDelays() Delays {
	d := make(Delays, len(ops))
	for op, info := range ops {
		d[op] = info.delay
	}
	return d
}

// Scale returns a copy with every delay multiplied by f. Zero disables delays.
func (d Delays) Scale(f float64) Delays {
	out := make(Delays, len(d))
	for op, v := range d {
		out[op] = time.Duration(float64(v) * max(f, 0))
	}
	return out
}
