package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/GTDGit/store_api/internal/utils"
)

const nonFieldErrors = "non_field_errors"

var registerOnce sync.Once

// RegisterValidation makes binding errors report JSON field names
// ("items[0].quantity") instead of Go struct field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindingDetails converts a ShouldBindJSON error into per-field messages.
func bindingDetails(err error) utils.FieldErrors {
	details := utils.FieldErrors{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			details.Add(fieldPath(fe.Namespace()), fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = nonFieldErrors
		}
		details.Add(field, fmt.Sprintf("Invalid type: expected %s.", typeErr.Type.Kind()))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		details.Add(nonFieldErrors, "Request body must be valid JSON.")
	default:
		details.Add(nonFieldErrors, err.Error())
	}
	return details
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	isNumber := false
	isList := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		isNumber = true
	case reflect.Slice, reflect.Array, reflect.Map:
		isList = true
	}

	switch fe.Tag() {
	case "required":
		if isList {
			return "This list may not be empty."
		}
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case "min":
		switch {
		case isNumber:
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		case isList:
			return fmt.Sprintf("Ensure this list has at least %s elements.", fe.Param())
		}
		return "This field may not be blank."
	case "max":
		switch {
		case isNumber:
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		case isList:
			return fmt.Sprintf("Ensure this list has no more than %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	}
	return "Invalid value."
}
