package plugin

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// Reasons carried by configuration errors.
const (
	ReasonUnknownPlug       = "unknown plug"
	ReasonSignatureMismatch = "signature mismatch for plug"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Validate checks plugin descriptors against the catalog.
//
// Every contributed key must name a catalog point and every non-nil
// implementation must match the point's signature; violations are reported
// as *errors.ConfigurationError naming the plugin and the plug. Descriptors
// must carry a name, and names must be unique. Nil entries are skipped.
//
// This is a developer-time check. Production builds skip it (see
// DefaultConfig), in which case unknown plugs are never read and mismatched
// implementations are dropped during composition without an error.
func Validate(plugins []*Plugin, catalog *Catalog) error {
	seen := make(map[string]struct{}, len(plugins))
	v := validatorInstance()

	for i, p := range plugins {
		if p == nil {
			continue
		}

		if err := v.Struct(p); err != nil {
			return convertValidationError(i, err)
		}
		if _, dup := seen[p.Name]; dup {
			return ErrDuplicatePlugin{Name: p.Name}
		}
		seen[p.Name] = struct{}{}

		for _, plug := range p.PlugNames() {
			point, ok := catalog.Lookup(plug)
			if !ok {
				return tabularerrors.NewConfigurationError(p.Name, plug, ReasonUnknownPlug)
			}
			impl := p.Plugs[plug]
			if impl == nil {
				continue
			}
			if !point.Accepts(impl) {
				return tabularerrors.NewConfigurationError(p.Name, plug, ReasonSignatureMismatch)
			}
		}
	}

	return nil
}

func convertValidationError(index int, err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fmt.Sprintf("plugins[%d].%s", index, strings.ToLower(ve.Field()))
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return tabularerrors.NewValidationError(field, msg, err)
	}
	return tabularerrors.NewValidationError(fmt.Sprintf("plugins[%d]", index), err.Error(), err)
}
