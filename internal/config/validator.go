package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern       = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	columnIDPattern     = regexp.MustCompile(`^[A-Za-z0-9_.#-]+$`)
	accessorPathPattern = regexp.MustCompile(`^[^.\s]+(?:\.[^.\s]+)*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("column_id", func(fl validator.FieldLevel) bool {
			return columnIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("accessor_path", func(fl validator.FieldLevel) bool {
			return accessorPathPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateDocument performs schema and cross-field validation on the document.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return tabularerrors.NewValidationError("document", "document is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(doc); err != nil {
		return convertValidationError(err)
	}

	if err := validateColumns(doc.Columns, "columns"); err != nil {
		return err
	}

	pluginIndex := make(map[string]int, len(doc.Plugins))
	for i, entry := range doc.Plugins {
		if !entry.Enabled {
			continue
		}
		if _, exists := pluginIndex[entry.Name]; exists {
			return tabularerrors.NewValidationError(fieldForPlugin(i, "name"), fmt.Sprintf("duplicate plugin %q", entry.Name), nil)
		}
		pluginIndex[entry.Name] = i

		for _, dep := range entry.After {
			if dep == entry.Name {
				return tabularerrors.NewValidationError(fieldForPlugin(i, "after"), fmt.Sprintf("plugin %q cannot follow itself", dep), nil)
			}
		}
	}

	if cycle := detectCycle(doc.Plugins); len(cycle) > 0 {
		return tabularerrors.NewValidationError("plugins", fmt.Sprintf("ordering cycle detected: %s", strings.Join(cycle, " -> ")), nil)
	}

	return nil
}

// validateColumns checks that every leaf can be given an id.
func validateColumns(columns []Column, path string) error {
	for i, column := range columns {
		field := fmt.Sprintf("%s[%d]", path, i)
		if len(column.Columns) > 0 {
			if err := validateColumns(column.Columns, field+".columns"); err != nil {
				return err
			}
			continue
		}
		if column.ID == "" && column.Accessor == "" && column.Header == "" {
			return tabularerrors.NewValidationError(field, "column needs an id, accessor or header", nil)
		}
	}
	return nil
}
