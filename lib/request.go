package lib

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so messages match the wire contract.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError represents a clean validation error for APIs
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a structured validation error
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := e.Messages()
	if len(msgs) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages renders each field error as "<field> <message>".
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field+" "+fe.Message)
	}
	return out
}

// BodyError reports a request body that could not be decoded.
type BodyError struct {
	Reason string
	Err    error
}

func (e *BodyError) Error() string {
	return "invalid request body: " + e.Reason
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

// ExtractAndValidateBody extracts and validates the request body into the provided struct type T
func ExtractAndValidateBody[T any](r *http.Request) (*T, error) {
	defer r.Body.Close()

	var body T

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&body); err != nil {
		return nil, decodeError(err)
	}
	if dec.More() {
		return nil, &BodyError{Reason: "unexpected data after JSON object"}
	}

	if err := validate.Struct(body); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return nil, mapValidationErrors(ve)
		}
		return nil, err
	}

	return &body, nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return &BodyError{Reason: "body is empty", Err: err}
	case errors.As(err, &maxErr):
		return &BodyError{Reason: "body is too large", Err: err}
	case errors.As(err, &syntaxErr):
		return &BodyError{Reason: "malformed JSON", Err: err}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return &BodyError{Reason: "body must be a JSON object", Err: err}
		}
		return &BodyError{Reason: typeErr.Field + " has the wrong type", Err: err}
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return &BodyError{Reason: strings.TrimPrefix(err.Error(), "json: "), Err: err}
	default:
		return &BodyError{Reason: err.Error(), Err: err}
	}
}

func mapValidationErrors(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}

	for _, e := range errs {
		field := e.Field()

		var message string
		switch e.Tag() {
		case "required":
			message = "is required"
		case "min":
			message = "must be at least " + e.Param()
		case "max":
			message = "must be at most " + e.Param()
		case "gte":
			message = "must be greater than or equal to " + e.Param()
		case "lte":
			message = "must be less than or equal to " + e.Param()
		case "dive":
			// dive is a nested validation tag, skip it as the actual error will be reported by the nested field
			continue
		default:
			message = "is invalid"
		}

		out.Errors = append(out.Errors, FieldError{
			Field:   field,
			Message: message,
		})
	}

	return out
}
