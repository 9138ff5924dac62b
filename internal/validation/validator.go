// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// ErrorCode is the API error code for every validation failure.
const ErrorCode = "VALIDATION_FAILED"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule. Field is the external name (query, yaml
// or json tag), not the Go field name.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// RequestValidationError collects every failed rule of one struct, in
// field declaration order.
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.Fields))
	for i := range ve.Fields {
		msgs[i] = ve.Fields[i].Message
	}
	return strings.Join(msgs, "; ")
}

// APIError is the error body handed to the API layer, which owns the
// envelope type.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError flattens the failures into one message. A single failure
// keeps its message as is and reports field and tag in Details; several
// failures are prefixed with their field and listed under Details["fields"].
func (ve *RequestValidationError) ToAPIError() *APIError {
	out := &APIError{Code: ErrorCode, Message: "Validation failed"}

	switch len(ve.Fields) {
	case 0:
	case 1:
		fe := ve.Fields[0]
		out.Message = fe.Message
		out.Details = map[string]interface{}{
			"field": fe.Field,
			"tag":   fe.Tag,
			"value": fe.Value,
		}
	default:
		msgs := make([]string, len(ve.Fields))
		for i, fe := range ve.Fields {
			msgs[i] = fe.Field + ": " + fe.Message
		}
		out.Message = strings.Join(msgs, "; ")
		out.Details = map[string]interface{}{"fields": ve.Fields}
	}
	return out
}

// GetValidator returns the shared validator with the custom tags
// registered. Safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(externalName)

		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("behavior_action", isBehaviorAction)
		_ = validate.RegisterValidation("notblank_id", isTrimmedID)
	})
	return validate
}

func externalName(fld reflect.StructField) string {
	for _, key := range []string{"query", "yaml", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		switch name {
		case "":
			continue
		case "-":
			return ""
		default:
			return name
		}
	}
	return fld.Name
}

func isBehaviorAction(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := recommend.ParseAction(fl.Field().String())
	return err == nil
}

// isTrimmedID rejects empty ids and ids with surrounding whitespace.
func isTrimmedID(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	v := fl.Field().String()
	return v != "" && strings.TrimSpace(v) == v
}

// ValidateStruct runs the shared validator over s. It returns nil when
// every rule passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return &RequestValidationError{Fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	out := &RequestValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: describe(fe),
		})
	}
	return out
}

// messages renders a failed tag for field f with parameter p. length is
// true when the rule applied to a string, so min and max mean characters.
var messages = map[string]func(f, p string, length bool) string{
	"required":        func(f, _ string, _ bool) string { return f + " is required" },
	"printascii":      func(f, _ string, _ bool) string { return f + " must contain only printable ASCII characters" },
	"numeric":         func(f, _ string, _ bool) string { return f + " must be a number" },
	"datetime":        func(f, _ string, _ bool) string { return f + " must be a valid date/time in RFC3339 format" },
	"behavior_action": func(f, _ string, _ bool) string { return f + " must be one of: view, like, bookmark, comment, share" },
	"notblank_id":     func(f, _ string, _ bool) string { return f + " must not be blank or padded with whitespace" },
	"oneof":           func(f, p string, _ bool) string { return fmt.Sprintf("%s must be one of: %s", f, p) },
	"gte":             func(f, p string, _ bool) string { return fmt.Sprintf("%s must be greater than or equal to %s", f, p) },
	"lte":             func(f, p string, _ bool) string { return fmt.Sprintf("%s must be less than or equal to %s", f, p) },
	"gt":              func(f, p string, _ bool) string { return fmt.Sprintf("%s must be greater than %s", f, p) },
	"lt":              func(f, p string, _ bool) string { return fmt.Sprintf("%s must be less than %s", f, p) },
	"min":             func(f, p string, length bool) string { return bound(f, "at least", p, length) },
	"max":             func(f, p string, length bool) string { return bound(f, "at most", p, length) },
}

func bound(field, rel, param string, length bool) string {
	if length {
		return fmt.Sprintf("%s must be %s %s characters", field, rel, param)
	}
	return fmt.Sprintf("%s must be %s %s", field, rel, param)
}

func describe(fe validator.FieldError) string {
	render, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
	return render(fe.Field(), fe.Param(), fe.Kind() == reflect.String)
}
