package lead

import (
	"regexp"
	"slices"
	"strings"

	"github.com/rpggio/sellerconsole/internal/domain/validation"
)

const (
	minNameLength = 2
	minScore      = 1
	maxScore      = 100
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateUpdateInput validates the fields present in a lead update.
func ValidateUpdateInput(req UpdateRequest) error {
	if strings.TrimSpace(req.ID) == "" {
		return validation.New(ErrInvalidInput, "id", "id is required")
	}
	if req.Name != nil {
		if err := validateName("name", *req.Name); err != nil {
			return err
		}
	}
	if req.Company != nil {
		if err := validateName("company", *req.Company); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := ValidateEmail(*req.Email); err != nil {
			return err
		}
	}
	if req.Status != nil && !slices.Contains(Statuses, *req.Status) {
		return validation.New(ErrInvalidInput, "status", "unknown status "+string(*req.Status))
	}
	if req.Score != nil && (*req.Score < minScore || *req.Score > maxScore) {
		return validation.New(ErrInvalidInput, "score", "must be between 1 and 100")
	}
	return nil
}

// ValidateEmail checks the address has a local part, a domain and a dot.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return validation.New(ErrInvalidInput, "email", "is required")
	}
	if !emailPattern.MatchString(email) {
		return validation.New(ErrInvalidInput, "email", "invalid email format")
	}
	return nil
}

func validateName(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return validation.New(ErrInvalidInput, field, "is required")
	}
	if len([]rune(value)) < minNameLength {
		return validation.New(ErrInvalidInput, field, "must be at least 2 characters")
	}
	return nil
}
