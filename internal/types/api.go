//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Output formats accepted by the generate endpoint
const (
	FormatText = "text"
	FormatHTML = "html"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	FieldValues   FieldSet `json:"field_values" validate:"min=1"`
	StyleSelected string   `json:"style_selected,omitempty"`
	Format        string   `json:"format,omitempty" validate:"omitempty,oneof=text html"`
}

// GenerateResponse is the envelope returned by POST /api/generate.
type GenerateResponse struct {
	Success          bool              `json:"success"`
	GeneratedContent *GeneratedContent `json:"generated_content,omitempty"`
	Model            string            `json:"model,omitempty"`
	Timestamp        string            `json:"timestamp,omitempty"`
	RequestID        string            `json:"request_id,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Model            string `json:"model"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

// NewValidator returns a validator that reports JSON field names and treats a
// FieldSet as its field count.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if set, ok := field.Interface().(FieldSet); ok {
			return set.Len()
		}
		return nil
	}, FieldSet{})
	return validate
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	return NewValidator().Struct(r)
}
