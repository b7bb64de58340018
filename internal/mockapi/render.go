package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report on json tag instead of struct field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// errorResponse is the error envelope the platform API uses: an optional
// message plus an optional list of field level messages
type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	messages := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, fieldError.Field()+" is required")
		case "email":
			messages = append(messages, fieldError.Field()+" must be a valid email")
		case "min":
			messages = append(messages, fmt.Sprintf("%s is too short (minimum %s)", fieldError.Field(), fieldError.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of %s", fieldError.Field(), fieldError.Param()))
		default:
			messages = append(messages, fieldError.Field()+" is invalid")
		}
	}

	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Message: "Validation failed",
		Errors:  messages,
	})
}

// bindAndValidate decodes the request body into T and validates it.
// Writes the error response itself, so callers just return on error.
func bindAndValidate[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse JSON: "+err.Error())
		return value, err
	}

	if err := validate.Struct(value); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			writeError(w, http.StatusBadRequest, err.Error())
			return value, err
		}
		writeValidationErrors(w, errs)
		return value, err
	}

	return value, nil
}
