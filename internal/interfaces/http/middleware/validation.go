package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/borrowtrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors report JSON (or query) field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// BindingErrorResponse converts an error from ShouldBind* into a status and body.
// Validation failures become per-field messages; malformed JSON becomes a detail.
func BindingErrorResponse(err error) (int, any) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := dto.FieldErrors{}
		for _, e := range validationErrs {
			fields.Add(e.Field(), validationMessage(e))
		}
		return http.StatusBadRequest, fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return http.StatusBadRequest, dto.FieldErrors{typeErr.Field: {typeMessage(typeErr.Type)}}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, dto.NewDetail(dto.DetailTooLarge)
	}

	return http.StatusBadRequest, dto.NewDetail("JSON parse error - " + err.Error())
}

func validationMessage(e validator.FieldError) string {
	isString := e.Kind() == reflect.String
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		if isString {
			return "Ensure this field has no more than " + e.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "min":
		if isString {
			return "Ensure this field has at least " + e.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "gt":
		return "Ensure this value is greater than " + e.Param() + "."
	case "oneof":
		return "\"" + fmtValue(e.Value()) + "\" is not a valid choice."
	default:
		return "Invalid value."
	}
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Invalid value."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Must be a valid boolean."
	default:
		return "Invalid value."
	}
}

func fmtValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// QueryErrorResponse converts an error from ShouldBindQuery into a status and body
func QueryErrorResponse(err error) (int, any) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return BindingErrorResponse(err)
	}
	return http.StatusBadRequest, dto.NewDetail("Invalid query parameter - " + err.Error())
}
