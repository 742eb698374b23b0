package opportunity

import (
	"math"
	"slices"
	"strings"

	"github.com/rpggio/sellerconsole/internal/domain/validation"
)

const minNameLength = 2

// ValidateCreateInput validates fields required to create an opportunity.
func ValidateCreateInput(req CreateRequest) error {
	if err := validateName("name", req.Name); err != nil {
		return err
	}
	if err := validateName("accountName", req.AccountName); err != nil {
		return err
	}
	if req.Stage != "" {
		if err := validateStage(req.Stage); err != nil {
			return err
		}
	}
	return validateAmount(req.Amount)
}

// ValidateUpdateInput validates the fields present in an update.
func ValidateUpdateInput(req UpdateRequest) error {
	if strings.TrimSpace(req.ID) == "" {
		return validation.New(ErrInvalidInput, "id", "id is required")
	}
	if req.Name != nil {
		if err := validateName("name", *req.Name); err != nil {
			return err
		}
	}
	if req.AccountName != nil {
		if err := validateName("accountName", *req.AccountName); err != nil {
			return err
		}
	}
	if req.Stage != nil {
		if err := validateStage(*req.Stage); err != nil {
			return err
		}
	}
	if req.Amount != nil && req.ClearAmount {
		return validation.New(ErrInvalidInput, "amount", "amount cannot be set and cleared together")
	}
	return validateAmount(req.Amount)
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

func validateStage(stage Stage) error {
	if !slices.Contains(Stages, stage) {
		return validation.New(ErrInvalidInput, "stage", "unknown stage "+string(stage))
	}
	return nil
}

func validateAmount(amount *float64) error {
	if amount == nil {
		return nil
	}
	if math.IsNaN(*amount) || math.IsInf(*amount, 0) || *amount < 0 {
		return validation.New(ErrInvalidInput, "amount", "must be a valid positive number")
	}
	return nil
}
