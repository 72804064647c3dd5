package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/segyhp/lending-engine/pkg/date"
)

// newValidator returns a validator that understands decimal and date fields.
// Both are validated through their string form, so "required" on a zero
// date fails and decimal_* tags compare exactly.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(date.Date); ok {
			return d.String()
		}
		return nil
	}, date.Date{})

	mustRegister(v, "decimal_gt", compareDecimal(func(c int) bool { return c > 0 }))
	mustRegister(v, "decimal_gte", compareDecimal(func(c int) bool { return c >= 0 }))
	mustRegister(v, "decimal_lte", compareDecimal(func(c int) bool { return c <= 0 }))

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// compareDecimal checks the field against the tag parameter; ok receives
// field.Cmp(param).
func compareDecimal(ok func(int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		param, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(field.Cmp(param))
	}
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
