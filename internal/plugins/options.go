package plugins

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// Options is the raw option block of one plugin entry in a table document.
type Options map[string]any

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Decode fills out, a pointer to a struct with yaml tags, from the options
// and validates it.
func (o Options) Decode(out any) error {
	if len(o) > 0 {
		raw, err := yaml.Marshal(map[string]any(o))
		if err != nil {
			return fmt.Errorf("encode options: %w", err)
		}
		if err := yaml.Unmarshal(raw, out); err != nil {
			return tabularerrors.NewValidationError("options", err.Error(), err)
		}
	}

	if err := validatorInstance().Struct(out); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			ve := ves[0]
			field := "options." + strings.ToLower(ve.Field())
			return tabularerrors.NewValidationError(field, fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag()), err)
		}
		return tabularerrors.NewValidationError("options", err.Error(), err)
	}
	return nil
}
