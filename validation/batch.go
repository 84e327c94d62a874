package validation

import (
	"context"
	"fmt"

	"github.com/reoring/wirekit"
)

// Batch operators iterate models strictly in input order and skip nil
// entries.

// ValidateMany validates each model, keyed by instance identity.
func (v *Validator[T]) ValidateMany(models []*T) map[*T]Result {
	out := make(map[*T]Result, len(models))
	for _, m := range models {
		if m == nil {
			continue
		}
		out[m] = v.mustValidate(m)
	}
	return out
}

// ValidateManyContext is ValidateMany checking ctx between models.
func (v *Validator[T]) ValidateManyContext(ctx context.Context, models []*T) (map[*T]Result, error) {
	out := make(map[*T]Result, len(models))
	for _, m := range models {
		if m == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", wirekit.ErrCanceled, err)
		}
		out[m] = v.mustValidate(m)
	}
	return out, nil
}

// ValidateAll reports whether every model is valid, stopping at the first
// invalid one.
func (v *Validator[T]) ValidateAll(models []*T) bool {
	for _, m := range models {
		if m != nil && !v.mustValidate(m).IsValid {
			return false
		}
	}
	return true
}

// ValidateAllContext is ValidateAll checking ctx between models.
func (v *Validator[T]) ValidateAllContext(ctx context.Context, models []*T) (bool, error) {
	for _, m := range models {
		if m == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, fmt.Errorf("%w: %w", wirekit.ErrCanceled, err)
		}
		if !v.mustValidate(m).IsValid {
			return false, nil
		}
	}
	return true, nil
}

// AllErrors flattens the errors of every model in input order.
func (v *Validator[T]) AllErrors(models []*T) []Error {
	var out []Error
	for _, m := range models {
		if m != nil {
			out = append(out, v.mustValidate(m).Errors...)
		}
	}
	return out
}

// InvalidCount returns the number of invalid models.
func (v *Validator[T]) InvalidCount(models []*T) int {
	return len(v.InvalidModels(models))
}

// ValidModels returns the valid models in input order.
func (v *Validator[T]) ValidModels(models []*T) []*T {
	return v.filter(models, true)
}

// InvalidModels returns the invalid models in input order.
func (v *Validator[T]) InvalidModels(models []*T) []*T {
	return v.filter(models, false)
}

func (v *Validator[T]) filter(models []*T, valid bool) []*T {
	var out []*T
	for _, m := range models {
		if m != nil && v.mustValidate(m).IsValid == valid {
			out = append(out, m)
		}
	}
	return out
}

// mustValidate validates a model already known to be non-nil.
func (v *Validator[T]) mustValidate(m *T) Result {
	res, _ := v.Validate(m)
	return res
}
