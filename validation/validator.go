// Package validation applies declared per-property constraints to payload
// values and aggregates the violations into a Result.
//
// Constraints are declared once per payload type, either by implementing
// Constrained[T] on the type or by passing rules to New. Declarations are
// discovered on every call; nothing is cached between calls.
//
//	func (m Model) Constraints() validation.Set[Model] {
//	    return validation.Set[Model]{
//	        validation.Required("Name", func(m *Model) any { return m.Name }),
//	        validation.Range("Value", func(m *Model) int { return m.Value }, 1, 100),
//	    }
//	}
//
//	res, err := validation.New[Model]().Validate(&m)
package validation

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/i18n"
)

// Error is a single violated constraint.
type Error struct {
	PropertyName string
	Code         string
	Message      string
}

func (e Error) Error() string { return fmt.Sprintf("%s: %s", e.PropertyName, e.Message) }

// Result is the outcome of validating one model.
type Result struct {
	IsValid bool
	Errors  []Error
}

// Err returns the violations combined into one error, or nil when valid.
func (r Result) Err() error {
	var err error
	for _, e := range r.Errors {
		err = multierr.Append(err, e)
	}
	return err
}

// Validator validates values of T. It is stateless and safe for concurrent
// use.
type Validator[T any] struct {
	rules Set[T]
}

// New returns a Validator that applies rules in addition to any constraints
// declared by T itself.
func New[T any](rules ...Rule[T]) *Validator[T] {
	return &Validator[T]{rules: rules}
}

// Validate evaluates every constraint against model. It fails only with
// wirekit.ErrNilInput for a nil model; violations are reported in the Result
// in declaration order. A property that fails Required reports only that
// violation: its other rules are not evaluated.
func (v *Validator[T]) Validate(model *T) (Result, error) {
	if model == nil {
		return Result{}, fmt.Errorf("validate %v: %w", reflect.TypeFor[T](), wirekit.ErrNilInput)
	}
	rules := v.describe(model)

	missing := map[string]bool{}
	failed := make(map[int]*violation)
	for i, r := range rules {
		if !r.required {
			continue
		}
		if viol := r.check(model); viol != nil {
			failed[i] = viol
			missing[r.property] = true
		}
	}

	res := Result{IsValid: true}
	for i, r := range rules {
		var viol *violation
		switch {
		case r.required:
			viol = failed[i]
		case missing[r.property]:
			continue
		default:
			viol = r.check(model)
		}
		if viol == nil {
			continue
		}
		res.IsValid = false
		res.Errors = append(res.Errors, newError(r.property, viol))
	}
	return res, nil
}

// ValidateContext is Validate for callers that carry a context. The work is
// CPU-only; ctx is consulted once before validating.
func (v *Validator[T]) ValidateContext(ctx context.Context, model *T) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", wirekit.ErrCanceled, err)
	}
	return v.Validate(model)
}

// TryValidate validates model, returning false instead of an error when model
// is nil.
func (v *Validator[T]) TryValidate(model *T) (Result, bool) {
	if model == nil {
		return Result{}, false
	}
	res, err := v.Validate(model)
	return res, err == nil
}

func (v *Validator[T]) describe(model *T) Set[T] {
	rules := v.rules
	if c, ok := any(model).(Constrained[T]); ok {
		declared := c.Constraints()
		rules = append(declared[:len(declared):len(declared)], rules...)
	}
	return rules
}

func newError(property string, viol *violation) Error {
	msg := viol.message
	if msg == "" {
		data := map[string]string{"field": property}
		for k, val := range viol.params {
			data[k] = val
		}
		msg = i18n.T(viol.code, data)
	}
	return Error{PropertyName: property, Code: viol.code, Message: msg}
}

// Validate validates model with the constraints declared by T.
func Validate[T any](model *T) (Result, error) { return New[T]().Validate(model) }
