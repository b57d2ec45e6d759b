package emotion

import (
	"strings"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

const maxTextLength = 10000

// SubmitInput holds the parameters for submitting a text entry.
type SubmitInput struct {
	Text string
}

// Validate checks all fields and collects all errors.
func (i *SubmitInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if len(i.Text) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long (max 10000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
