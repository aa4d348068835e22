package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// convertValidationError normalizes validator errors into validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return tabularerrors.NewValidationError(field, msg, err)
	}

	return tabularerrors.NewValidationError("document", err.Error(), err)
}

// yamlishFieldName turns "Document.Columns[0].MinWidth" into
// "columns[0].min_width".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = snakeCase(part)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '[' && (s[i-1] < 'A' || s[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldForPlugin(index int, field string) string {
	return fmt.Sprintf("plugins[%d].%s", index, field)
}
