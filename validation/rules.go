package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// Codes carried by Error.Code.
const (
	CodeRequired      = "required"
	CodeOutOfRange    = "out_of_range"
	CodeStringLength  = "string_length"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeInvalid       = "invalid"
)

// Number is the set of types accepted by Range and Between.
type Number interface {
	constraints.Integer | constraints.Float
}

// Rule is one declared constraint on a property of T.
type Rule[T any] struct {
	property string
	check    func(*T) *violation
	required bool
}

// Property returns the name of the property the rule checks.
func (r Rule[T]) Property() string { return r.property }

type violation struct {
	code    string
	params  map[string]string
	message string // overrides the translated message when set
}

// Set is the constraint descriptor of a payload type.
type Set[T any] []Rule[T]

// Constrained is implemented by payload types that declare their own
// constraints. Validators look for it on every call.
type Constrained[T any] interface {
	Constraints() Set[T]
}

// Required rejects nil pointers, slices, maps and interfaces, and strings that
// are empty or whitespace. Empty non-nil collections pass.
func Required[T any](name string, get func(*T) any) Rule[T] {
	return Rule[T]{property: name, required: true, check: func(m *T) *violation {
		if isMissing(get(m)) {
			return &violation{code: CodeRequired}
		}
		return nil
	}}
}

// Range requires min <= value <= max.
func Range[T any, N Number](name string, get func(*T) N, min, max N) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		if v := get(m); v < min || v > max {
			return &violation{code: CodeOutOfRange, params: bounds(min, max)}
		}
		return nil
	}}
}

// Between is a cross-field range: the value must lie within the bounds read
// from other fields of the same model.
func Between[T any, N Number](name string, get, lo, hi func(*T) N) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		l, h := lo(m), hi(m)
		if v := get(m); v < l || v > h {
			return &violation{code: CodeOutOfRange, params: bounds(l, h)}
		}
		return nil
	}}
}

// TimeRange requires min <= value <= max. The zero time fails unless min is
// also zero.
func TimeRange[T any](name string, get func(*T) time.Time, min, max time.Time) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		if v := get(m); v.Before(min) || v.After(max) {
			return &violation{code: CodeOutOfRange, params: map[string]string{
				"min": min.Format(time.DateOnly),
				"max": max.Format(time.DateOnly),
			}}
		}
		return nil
	}}
}

// StringLength bounds the rune count of a string. Empty strings pass; pair
// with Required to reject them.
func StringLength[T any](name string, get func(*T) string, min, max int) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		s := get(m)
		if s == "" {
			return nil
		}
		if n := utf8.RuneCountInString(s); n < min || n > max {
			return &violation{code: CodeStringLength, params: bounds(min, max)}
		}
		return nil
	}}
}

// MinLength requires a non-nil slice to hold at least n elements.
func MinLength[T any, E any](name string, get func(*T) []E, n int) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		if s := get(m); s != nil && len(s) < n {
			return &violation{code: CodeTooShort, params: map[string]string{"min": fmt.Sprint(n)}}
		}
		return nil
	}}
}

// MaxLength requires a slice to hold at most n elements.
func MaxLength[T any, E any](name string, get func(*T) []E, n int) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		if len(get(m)) > n {
			return &violation{code: CodeTooLong, params: map[string]string{"max": fmt.Sprint(n)}}
		}
		return nil
	}}
}

// Pattern requires a non-empty string to match expr in full. It panics if
// expr does not compile, like regexp.MustCompile.
func Pattern[T any](name string, get func(*T) string, expr string) Rule[T] {
	re := regexp.MustCompile(`^(?:` + expr + `)$`)
	return Rule[T]{property: name, check: func(m *T) *violation {
		if s := get(m); s != "" && !re.MatchString(s) {
			return &violation{code: CodePattern, params: map[string]string{"pattern": expr}}
		}
		return nil
	}}
}

// Email requires a non-empty string to contain exactly one '@' that is
// neither first nor last.
func Email[T any](name string, get func(*T) string) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		s := get(m)
		if s == "" {
			return nil
		}
		at := strings.IndexByte(s, '@')
		if at <= 0 || at == len(s)-1 || strings.IndexByte(s[at+1:], '@') >= 0 {
			return &violation{code: CodeInvalidFormat, params: map[string]string{"format": "e-mail address"}}
		}
		return nil
	}}
}

// Func runs an arbitrary check. A non-empty message returned by fn reports a
// violation with that message.
func Func[T any](name string, fn func(*T) string) Rule[T] {
	return Rule[T]{property: name, check: func(m *T) *violation {
		if msg := fn(m); msg != "" {
			return &violation{code: CodeInvalid, message: msg}
		}
		return nil
	}}
}

func bounds[N any](min, max N) map[string]string {
	return map[string]string{"min": fmt.Sprint(min), "max": fmt.Sprint(max)}
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return true
		}
		if e := rv.Elem(); e.Kind() == reflect.String {
			return strings.TrimSpace(e.String()) == ""
		}
	case reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	}
	return false
}
