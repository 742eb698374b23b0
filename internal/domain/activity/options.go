package activity

// DefaultLimit bounds listings that do not set a limit.
const DefaultLimit = 50

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	EntityID *string
	Type     *Type
	Limit    int
}
