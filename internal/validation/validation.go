// Package validation checks request payloads and renders per-field messages
// in the wording API clients already rely on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Errors maps a request field to its failure messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("integer", isInteger)
		_ = v.RegisterValidation("intmin", intMin)
		_ = v.RegisterValidation("intmax", intMax)
		_ = v.RegisterValidation("maxbytes", maxBytes)
		validate = v
	})
	return validate
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Struct validates s and returns nil when every rule passes.
func Struct(s any) Errors {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"_": {err.Error()}}
	}

	out := Errors{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), Message(fe.Field(), fe.Tag(), fe.Param(), fe.Kind()))
	}
	return out
}

// Attribute turns a field name into the form used inside messages.
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// Message renders the failure of rule tag (with param) on field.
func Message(field, tag, param string, kind reflect.Kind) string {
	attr := Attribute(field)
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, param)
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, param)
	case "maxbytes":
		return fmt.Sprintf("The %s field must not be greater than %s bytes.", attr, param)
	case "string":
		return fmt.Sprintf("The %s field must be a string.", attr)
	case "boolean":
		return fmt.Sprintf("The %s field must be true or false.", attr)
	case "intmax", "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, param)
	case "intmin", "gte", "min":
		return fmt.Sprintf("The %s field must be at least %s.", attr, param)
	case "integer", "number":
		return fmt.Sprintf("The %s field must be an integer.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s.", attr, Attribute(toSnake(param)))
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL.", attr)
	case "datetime":
		return fmt.Sprintf("The %s field must be a valid date.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// maxBytes bounds the encoded length, which is what bcrypt limits.
func maxBytes(fl validator.FieldLevel) bool {
	bound, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= bound
}

func intMin(fl validator.FieldLevel) bool {
	return compareInt(fl, func(v, bound int) bool { return v >= bound })
}

func intMax(fl validator.FieldLevel) bool {
	return compareInt(fl, func(v, bound int) bool { return v <= bound })
}

// compareInt passes non-integers through; the integer rule reports those.
func compareInt(fl validator.FieldLevel, ok func(v, bound int) bool) bool {
	bound, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	v, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return true
	}
	return ok(v, bound)
}
