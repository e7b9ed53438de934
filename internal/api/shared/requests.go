package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse across requests.
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct using the validator package.
// Types exposing their own Validate method take precedence over tags.
func ValidateRequest(v interface{}) error {
	if checker, ok := v.(interface{ Validate() error }); ok {
		return checker.Validate()
	}
	return validate.Struct(v)
}
