package dataset

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// ValidationError captures a single field-specific validation issue.
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation problems.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

// Is makes every validation failure match domain.ErrIntegrity.
func (errs ValidationErrors) Is(target error) bool {
	return target == domain.ErrIntegrity
}
